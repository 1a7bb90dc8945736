package video

import "testing"

func TestDrawStringRejectsOutOfRangeByte(t *testing.T) {
	var buf Buffer
	err := DrawString(&buf, "ok\x01bad", 0, 0, 5)
	if err == nil {
		t.Fatal("expected an error for a non-printable byte")
	}
	if !IsInvalidCharacter(err) {
		t.Fatalf("expected ErrInvalidCharacter, got %v", err)
	}
}

func TestDrawStringHandlesNewlines(t *testing.T) {
	var buf Buffer
	if err := DrawString(&buf, "A\nB", 10, 10, 5); err != nil {
		t.Fatalf("DrawString: %v", err)
	}
	// 'A' blits at (10,10); 'B' should blit at (10,18) after the
	// newline resets x to the origin column and advances y by 8.
	drewAtOrigin := false
	drewAfterNewline := false
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if buf.GetPixel(10+col, 10+row) != 0 {
				drewAtOrigin = true
			}
			if buf.GetPixel(10+col, 18+row) != 0 {
				drewAfterNewline = true
			}
		}
	}
	if !drewAtOrigin || !drewAfterNewline {
		t.Fatalf("expected pixels at both origin and post-newline rows, got origin=%v afterNewline=%v", drewAtOrigin, drewAfterNewline)
	}
}

func TestDrawStringSpaceIsBlank(t *testing.T) {
	var buf Buffer
	if err := DrawString(&buf, " ", 0, 0, 5); err != nil {
		t.Fatalf("DrawString: %v", err)
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if buf.GetPixel(col, row) != 0 {
				t.Fatalf("space glyph drew a pixel at (%d,%d)", col, row)
			}
		}
	}
}
