package rle

// Decode reconstructs the original payload of source into destination.
// destination must be exactly the stream's recorded unpacked size;
// source and destination may alias the same underlying array (the
// in-place case resource loading relies on), since every read index is
// computed from source and every write index from destination
// independently.
func Decode(source []byte, destination []byte) error {
	tr, err := ParseTrailer(source)
	if err != nil {
		return err
	}
	if tr.UnpackedSize != uint32(len(destination)) {
		return ErrUncompressedSizeMismatch
	}

	bits, err := NewBitReader(source)
	if err != nil {
		return err
	}
	ints := NewIntReader(bits)
	w := newWriter(destination)

	for !w.done() {
		if err := decodeOne(ints, w); err != nil {
			return err
		}
	}

	if !bits.Finished() {
		return ErrChecksumFailed
	}
	return nil
}

func decodeOne(ints *IntReader, w *writer) error {
	tag, err := ints.ReadBit()
	if err != nil {
		return err
	}
	if tag == 0 {
		sub, err := ints.ReadBit()
		if err != nil {
			return err
		}
		if sub == 0 {
			n, err := ints.ReadInt(8)
			if err != nil {
				return err
			}
			for i := uint32(0); i <= n; i++ {
				b, err := ints.ReadInt(8)
				if err != nil {
					return err
				}
				if err := w.writeLiteral(byte(b)); err != nil {
					return err
				}
			}
			return nil
		}
		o, err := ints.ReadInt(8)
		if err != nil {
			return err
		}
		return w.copyRef(2, int(o))
	}

	code, err := ints.ReadInt(2)
	if err != nil {
		return err
	}
	switch code {
	case 0b00:
		o, err := ints.ReadInt(9)
		if err != nil {
			return err
		}
		return w.copyRef(3, int(o))
	case 0b01:
		o, err := ints.ReadInt(10)
		if err != nil {
			return err
		}
		return w.copyRef(4, int(o))
	case 0b10:
		n, err := ints.ReadInt(8)
		if err != nil {
			return err
		}
		o, err := ints.ReadInt(12)
		if err != nil {
			return err
		}
		return w.copyRef(int(n)+1, int(o))
	default:
		// The encoder never emits this prefix; a well-formed stream
		// cannot reach it. Treat it the same as a corrupted checksum.
		return ErrChecksumFailed
	}
}
