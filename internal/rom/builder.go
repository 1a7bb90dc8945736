// Package rom builds synthetic bank files and bank indexes for tests:
// a small fixture kit so internal/resource, internal/vm, and
// internal/engine tests can construct loadable resource sets without
// shipping real game data.
package rom

import (
	"os"

	"anotherengine/internal/resource"
)

// BankBuilder accumulates raw bytes per bank number, the way a real
// bank file is just resources concatenated one after another.
type BankBuilder struct {
	banks map[uint8][]byte
}

// NewBankBuilder creates an empty builder.
func NewBankBuilder() *BankBuilder {
	return &BankBuilder{banks: make(map[uint8][]byte)}
}

// Append adds data to the end of bank and returns the offset it was
// written at, ready to drop straight into a Descriptor.
func (b *BankBuilder) Append(bank uint8, data []byte) uint32 {
	offset := uint32(len(b.banks[bank]))
	b.banks[bank] = append(b.banks[bank], data...)
	return offset
}

// Bank returns the accumulated bytes for a bank number.
func (b *BankBuilder) Bank(bank uint8) []byte {
	return b.banks[bank]
}

// WriteBankFile writes one bank's accumulated bytes to path.
func (b *BankBuilder) WriteBankFile(bank uint8, path string) error {
	return os.WriteFile(path, b.banks[bank], 0644)
}

// Loader adapts the builder to resource.BankLoader, letting tests
// feed it straight into a resource.Directory.
func (b *BankBuilder) Loader() resource.BankLoader {
	return bankBuilderLoader{b}
}

type bankBuilderLoader struct {
	b *BankBuilder
}

func (l bankBuilderLoader) LoadBank(bankNumber uint8) ([]byte, error) {
	return l.b.Bank(bankNumber), nil
}

// IndexBuilder accumulates Descriptor records into a bank-index byte
// stream, automatically terminating it with the sentinel record.
type IndexBuilder struct {
	descriptors []resource.Descriptor
}

// NewIndexBuilder creates an empty index builder.
func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

// Add appends one descriptor and returns its assigned ID.
func (ib *IndexBuilder) Add(d resource.Descriptor) resource.ID {
	id := resource.ID(len(ib.descriptors))
	ib.descriptors = append(ib.descriptors, d)
	return id
}

// Descriptors returns the accumulated descriptor list, in the same
// form resource.ParseDescriptors would hand back.
func (ib *IndexBuilder) Descriptors() []resource.Descriptor {
	return ib.descriptors
}

// Bytes serializes the accumulated descriptors into the same 20-byte
// big-endian record format resource.ParseDescriptors reads, followed
// by the terminating sentinel record.
func (ib *IndexBuilder) Bytes() []byte {
	out := make([]byte, 0, 20*(len(ib.descriptors)+1))
	for _, d := range ib.descriptors {
		out = append(out, encodeDescriptor(d)...)
	}
	out = append(out, encodeDescriptor(resource.Descriptor{Kind: resource.KindUnused})...) // sentinel: kind unused, zero sizes
	return out
}

func encodeDescriptor(d resource.Descriptor) []byte {
	b := make([]byte, 20)
	b[0] = byte(d.Kind)
	b[1] = d.BankNumber
	putBE32(b[4:], d.BankOffset)
	putBE32(b[8:], d.PackedSize)
	putBE32(b[12:], d.UnpackedSize)
	return b
}

// PackLiteral encodes payload as an rle.Decode-compatible stream using
// only literal-run instructions (no back-references). It exists so
// tests can build realistic packed resource fixtures instead of only
// verbatim ones.
//
// The encoder works backward from the end of payload in segments of
// up to 256 bytes, since that is the largest run a single literal
// instruction can describe. Within a segment the bytes are emitted in
// reverse: the writer in internal/rle fills a destination buffer from
// its highest address down, so the first byte a literal instruction
// reads ends up at the top of its write window.
func PackLiteral(payload []byte) []byte {
	var bits []int
	idx := len(payload)
	for idx > 0 {
		segLen := 256
		if idx < segLen {
			segLen = idx
		}
		segStart := idx - segLen
		segment := payload[segStart:idx]
		bits = appendBitsMSB(bits, 0, 1) // tag: literal
		bits = appendBitsMSB(bits, 0, 1) // sub: run, not 2-byte copy
		bits = appendBitsMSB(bits, uint32(segLen-1), 8)
		for i := len(segment) - 1; i >= 0; i-- {
			bits = appendBitsMSB(bits, uint32(segment[i]), 8)
		}
		idx = segStart
	}

	word1, chunks, initialCRC := packChunks(bits)

	source := make([]byte, 4*len(chunks)+12)
	pos := 0
	for i := len(chunks) - 1; i >= 0; i-- {
		putBE32(source[pos:], chunks[i])
		pos += 4
	}
	putBE32(source[pos:], word1)
	putBE32(source[pos+4:], initialCRC)
	putBE32(source[pos+8:], uint32(len(payload)))
	return source
}

func appendBitsMSB(bits []int, value uint32, width int) []int {
	for i := width - 1; i >= 0; i-- {
		bits = append(bits, int((value>>uint(i))&1))
	}
	return bits
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// packChunks lays out a flat bitstream into the 32-bit big-endian
// words BitReader expects. The first word (returned separately as
// word1, stored as the trailer's FirstChunk) carries up to 31 real
// bits in its low 31 positions with bit 31 forced to 1: BitReader
// consumes it directly with no transform, and that forced high bit
// guarantees the register never reads as all-zero before the real
// bits are exhausted, so a reload is never triggered early.
//
// Every following word carries a full 32 bits of real payload: its
// bit 0 completes the previous word's handoff (BitReader overwrites
// the bit it would have returned with the newly loaded word's bit 0
// the instant the old word's register reaches zero), and bits 1-31
// are read out over that word's own 31 calls before the artificial
// sentinel BitReader installs at register bit 31 triggers the next
// reload in turn.
func packChunks(bits []int) (word1 uint32, chunks []uint32, initialCRC uint32) {
	n := len(bits)
	chunkCount := 1
	if n > 31 {
		chunkCount = 1 + ceilDiv(n-31, 32)
	}
	slots := 31 + 32*(chunkCount-1)

	padded := make([]int, slots)
	copy(padded, bits)

	word1 = 1 << 31
	for k := 0; k < 31; k++ {
		if padded[k] != 0 {
			word1 |= 1 << uint(k)
		}
	}

	chunks = make([]uint32, 0, chunkCount-1)
	for j := 2; j <= chunkCount; j++ {
		base := 32*(j-1) - 1
		var w uint32
		if padded[base] != 0 {
			w |= 1
		}
		for m := 0; m < 31; m++ {
			if padded[base+1+m] != 0 {
				w |= 1 << uint(1+m)
			}
		}
		chunks = append(chunks, w)
	}

	initialCRC = word1
	for _, w := range chunks {
		initialCRC ^= w
	}
	return word1, chunks, initialCRC
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
