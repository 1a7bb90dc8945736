// Package rle implements the bit-reversed, end-to-start, in-place run
// length decompression used by the game's packed resources.
package rle

import "errors"

// Sentinel errors returned by the decompression pipeline. Decode wraps
// these with fmt.Errorf("%w", ...) where extra context helps, but
// callers should compare with errors.Is against these values.
var (
	ErrSourceExhausted          = errors.New("rle: source exhausted")
	ErrDestinationExhausted     = errors.New("rle: destination exhausted")
	ErrCopyOutOfRange           = errors.New("rle: copy offset out of range")
	ErrChecksumFailed           = errors.New("rle: checksum failed")
	ErrUncompressedSizeMismatch = errors.New("rle: uncompressed size mismatch")
)

// Trailer holds the three big-endian 32-bit words packed at the tail of
// an RLE stream: unpacked size (informational), the CRC seed, and the
// first code chunk.
type Trailer struct {
	UnpackedSize uint32
	InitialCRC   uint32
	FirstChunk   uint32
}

// ParseTrailer reads the last 12 bytes of source as a Trailer.
func ParseTrailer(source []byte) (Trailer, error) {
	if len(source) < 12 {
		return Trailer{}, ErrSourceExhausted
	}
	n := len(source)
	return Trailer{
		UnpackedSize: be32(source[n-4:]),
		InitialCRC:   be32(source[n-8 : n-4]),
		FirstChunk:   be32(source[n-12 : n-8]),
	}, nil
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// BitReader consumes a source buffer backward in 32-bit big-endian
// chunks, popping bits LSB-first out of each chunk and maintaining a
// rolling XOR checksum over every chunk it loads. The first chunk
// carries its own end-of-chunk sentinel (its highest set bit); every
// chunk loaded after that has an artificial sentinel installed at bit
// 31 once its real bit 0 has been consumed, so a chunk boundary is
// detected purely by the shifted value reaching zero — no separate bit
// counter is needed.
type BitReader struct {
	src   []byte
	pos   int // byte offset of the next chunk to load when the current one is spent
	chunk uint32
	crc   uint32
}

// NewBitReader parses source's trailer and returns a reader positioned
// to deliver the stream's bits in original encode order.
func NewBitReader(source []byte) (*BitReader, error) {
	tr, err := ParseTrailer(source)
	if err != nil {
		return nil, err
	}
	return &BitReader{
		src:   source,
		pos:   len(source) - 12,
		chunk: tr.FirstChunk,
		crc:   tr.InitialCRC ^ tr.FirstChunk,
	}, nil
}

func (r *BitReader) loadChunk() (uint32, error) {
	if r.pos < 4 {
		return 0, ErrSourceExhausted
	}
	r.pos -= 4
	return be32(r.src[r.pos : r.pos+4]), nil
}

// ReadBit pops the next bit off the stream, reloading a chunk from
// further back in source when the current one is exhausted.
func (r *BitReader) ReadBit() (uint32, error) {
	bit := r.chunk & 1
	r.chunk >>= 1
	if r.chunk == 0 {
		next, err := r.loadChunk()
		if err != nil {
			return 0, err
		}
		r.crc ^= next
		bit = next & 1
		r.chunk = 0x80000000 | (next >> 1)
	}
	return bit, nil
}

// Finished reports whether the reader has consumed the stream exactly:
// the read cursor is back at position 0 and the rolling checksum has
// canceled out to zero. Both must hold for a clean decode.
func (r *BitReader) Finished() bool {
	return r.pos == 0 && r.crc == 0
}

// CRC returns the current rolling checksum value, mostly useful for
// tests that want to inspect intermediate state.
func (r *BitReader) CRC() uint32 {
	return r.crc
}

// Pos returns the byte offset the reader would load its next chunk
// from; it reaches 0 exactly when the packed stream is fully consumed.
func (r *BitReader) Pos() int {
	return r.pos
}
