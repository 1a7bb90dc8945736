package video

import "fmt"

// Width and Height are the fixed dimensions of every framebuffer.
const (
	Width  = 320
	Height = 200
)

// Buffer is one 320x200 indexed-color framebuffer, packed two 4-bit
// pixels per byte (even x in the high nibble, odd x in the low
// nibble), matching the original engine's planar packed layout.
type Buffer struct {
	pixels [Width * Height / 2]byte
}

// NewBufferFromPacked builds a Buffer from raw bytes already in the
// packed two-pixels-per-byte layout (as a "bitmap" resource stores
// its pixel data), for tools that load a buffer's worth of pixels
// directly from a resource rather than drawing into one.
func NewBufferFromPacked(raw []byte) (*Buffer, error) {
	var b Buffer
	if len(raw) != len(b.pixels) {
		return nil, fmt.Errorf("video: bitmap resource is %d bytes, want exactly %d (%dx%d packed 4bpp)",
			len(raw), len(b.pixels), Width, Height)
	}
	copy(b.pixels[:], raw)
	return &b, nil
}

func pixelOffset(x, y int) (byteIndex int, highNibble bool) {
	linear := y*Width + x
	return linear / 2, linear%2 == 0
}

// GetPixel returns the 4-bit color index at (x, y). Out-of-bounds
// coordinates return 0 rather than panicking, since callers clip
// ranges themselves and a defensive read is cheaper than a bounds
// check at every call site.
func (b *Buffer) GetPixel(x, y int) uint8 {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0
	}
	idx, high := pixelOffset(x, y)
	if high {
		return b.pixels[idx] >> 4
	}
	return b.pixels[idx] & 0x0F
}

// SetPixel writes a 4-bit color index at (x, y), ignoring
// out-of-bounds coordinates.
func (b *Buffer) SetPixel(x, y int, color uint8) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	idx, high := pixelOffset(x, y)
	color &= 0x0F
	if high {
		b.pixels[idx] = (b.pixels[idx] & 0x0F) | (color << 4)
	} else {
		b.pixels[idx] = (b.pixels[idx] & 0xF0) | color
	}
}

// Fill sets every pixel in the buffer to color.
func (b *Buffer) Fill(color uint8) {
	color &= 0x0F
	packed := color | color<<4
	for i := range b.pixels {
		b.pixels[i] = packed
	}
}

// CopyFrom copies src into b shifted vertically by yOffset rows. Rows
// that would land outside [0, Height) are skipped; if |yOffset| >=
// Height no row of src is in range at all, so b is left untouched.
func (b *Buffer) CopyFrom(src *Buffer, yOffset int) {
	if yOffset >= Height || yOffset <= -Height {
		return
	}
	if yOffset >= 0 {
		for y := Height - 1; y >= yOffset; y-- {
			copyRow(b, src, y, y-yOffset)
		}
	} else {
		for y := 0; y < Height+yOffset; y++ {
			copyRow(b, src, y, y-yOffset)
		}
	}
}

func copyRow(dst, src *Buffer, dstY, srcY int) {
	for x := 0; x < Width; x++ {
		dst.SetPixel(x, dstY, src.GetPixel(x, srcY))
	}
}
