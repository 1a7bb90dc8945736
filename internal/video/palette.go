package video

import "fmt"

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette is the 16-color table active at any given time.
type Palette [16]RGB

// PaletteCount is the number of palettes packed into one palette bank
// resource.
const PaletteCount = 32

// Bank holds every palette decoded from a palette resource: 32
// palettes of 16 entries, 3 bytes (R, G, B) each, big-endian order
// within the resource (palette 0 first).
type Bank [PaletteCount]Palette

// DecodeBank parses a palette resource's raw bytes into a Bank.
func DecodeBank(raw []byte) (Bank, error) {
	const bankSize = PaletteCount * 16 * 3
	if len(raw) < bankSize {
		return Bank{}, fmt.Errorf("video: palette resource is %d bytes, need at least %d for %d palettes of 16 colors",
			len(raw), bankSize, PaletteCount)
	}

	var bank Bank
	for p := 0; p < PaletteCount; p++ {
		for c := 0; c < 16; c++ {
			off := p*16*3 + c*3
			bank[p][c] = RGB{R: raw[off], G: raw[off+1], B: raw[off+2]}
		}
	}
	return bank, nil
}

// ApplyPalette renders buf through palette into a little-endian ABGR
// surface of Width*Height*4 bytes, as required by host.PresentSurface.
func ApplyPalette(buf *Buffer, palette Palette) []byte {
	surface := make([]byte, Width*Height*4)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			color := palette[buf.GetPixel(x, y)]
			off := (y*Width + x) * 4
			surface[off+0] = color.R
			surface[off+1] = color.G
			surface[off+2] = color.B
			surface[off+3] = 0xFF
		}
	}
	return surface
}
