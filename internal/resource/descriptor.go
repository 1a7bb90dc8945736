package resource

import "fmt"

// descriptorSize is the fixed size of one bank-index record.
const descriptorSize = 20

// Descriptor is one entry of the bank index: where a resource lives
// and how large it is, packed and unpacked.
type Descriptor struct {
	Kind         Kind
	BankNumber   uint8
	BankOffset   uint32
	PackedSize   uint32
	UnpackedSize uint32
}

// Packed reports whether the resource is RLE-compressed on disk.
// packed_size == unpacked_size means it is stored verbatim.
func (d Descriptor) Packed() bool {
	return d.PackedSize != d.UnpackedSize
}

func (d Descriptor) isSentinel() bool {
	return d.Kind == KindUnused && d.PackedSize == 0 && d.UnpackedSize == 0
}

// ParseDescriptors reads a bank index: a sequence of fixed-size
// records terminated by a sentinel record (kind unused, both sizes
// zero). The sentinel itself is not included in the returned slice.
func ParseDescriptors(raw []byte) ([]Descriptor, error) {
	if len(raw)%descriptorSize != 0 {
		return nil, fmt.Errorf("resource: bank index is %d bytes, not a multiple of the %d-byte record size — "+
			"the index file is either truncated or was not the file this loader expects", len(raw), descriptorSize)
	}

	var descriptors []Descriptor
	for off := 0; off+descriptorSize <= len(raw); off += descriptorSize {
		d := parseOneDescriptor(raw[off : off+descriptorSize])
		if d.isSentinel() {
			return descriptors, nil
		}
		descriptors = append(descriptors, d)
	}

	return nil, fmt.Errorf("resource: bank index ran out of records (%d parsed) before a terminating sentinel entry — "+
		"every bank index must end with a kind=unused record whose packed and unpacked sizes are both zero", len(descriptors))
}

func parseOneDescriptor(b []byte) Descriptor {
	return Descriptor{
		Kind:         Kind(b[0]),
		BankNumber:   b[1],
		BankOffset:   be32(b[4:8]),
		PackedSize:   be32(b[8:12]),
		UnpackedSize: be32(b[12:16]),
	}
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
