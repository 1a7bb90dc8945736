package video

import "testing"

func buildPaletteResourceBytes() []byte {
	raw := make([]byte, PaletteCount*16*3)
	for p := 0; p < PaletteCount; p++ {
		for c := 0; c < 16; c++ {
			off := p*16*3 + c*3
			raw[off] = byte(p)
			raw[off+1] = byte(c)
			raw[off+2] = byte(p + c)
		}
	}
	return raw
}

func TestDecodeBankParsesEveryPaletteEntry(t *testing.T) {
	bank, err := DecodeBank(buildPaletteResourceBytes())
	if err != nil {
		t.Fatalf("DecodeBank: %v", err)
	}
	if got := bank[3][7]; got != (RGB{R: 3, G: 7, B: 10}) {
		t.Fatalf("bank[3][7] = %+v, want {3 7 10}", got)
	}
}

func TestDecodeBankTooShortIsAnError(t *testing.T) {
	_, err := DecodeBank(make([]byte, 10))
	if err == nil {
		t.Fatal("expected an error for a too-short palette resource")
	}
}

func TestApplyPaletteProducesLittleEndianABGR(t *testing.T) {
	var buf Buffer
	buf.SetPixel(0, 0, 2)

	palette := Palette{}
	palette[2] = RGB{R: 0x11, G: 0x22, B: 0x33}

	surface := ApplyPalette(&buf, palette)
	if len(surface) != Width*Height*4 {
		t.Fatalf("surface length = %d, want %d", len(surface), Width*Height*4)
	}
	if surface[0] != 0x11 || surface[1] != 0x22 || surface[2] != 0x33 || surface[3] != 0xFF {
		t.Fatalf("surface[0:4] = % X, want 11 22 33 FF", surface[0:4])
	}
}
