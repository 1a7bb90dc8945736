package video

import "testing"

func TestSetPixelGetPixelRoundTrip(t *testing.T) {
	var b Buffer
	b.SetPixel(0, 0, 0xA)
	b.SetPixel(1, 0, 0x3)
	b.SetPixel(319, 199, 0xF)

	if got := b.GetPixel(0, 0); got != 0xA {
		t.Fatalf("GetPixel(0,0) = %d, want 0xA", got)
	}
	if got := b.GetPixel(1, 0); got != 0x3 {
		t.Fatalf("GetPixel(1,0) = %d, want 0x3", got)
	}
	if got := b.GetPixel(319, 199); got != 0xF {
		t.Fatalf("GetPixel(319,199) = %d, want 0xF", got)
	}
}

func TestSetPixelMasksToFourBits(t *testing.T) {
	var b Buffer
	b.SetPixel(5, 5, 0xFF)
	if got := b.GetPixel(5, 5); got != 0x0F {
		t.Fatalf("GetPixel(5,5) = %d, want 0x0F (masked)", got)
	}
}

func TestGetSetPixelOutOfBoundsIsANoOp(t *testing.T) {
	var b Buffer
	b.SetPixel(-1, 0, 0x5)
	b.SetPixel(320, 0, 0x5)
	b.SetPixel(0, 200, 0x5)
	if got := b.GetPixel(-1, 0); got != 0 {
		t.Fatalf("GetPixel(-1,0) = %d, want 0", got)
	}
	if got := b.GetPixel(320, 0); got != 0 {
		t.Fatalf("GetPixel(320,0) = %d, want 0", got)
	}
}

func TestFillSetsEveryPixel(t *testing.T) {
	var b Buffer
	b.Fill(0x7)
	for y := 0; y < Height; y += 37 {
		for x := 0; x < Width; x += 41 {
			if got := b.GetPixel(x, y); got != 0x7 {
				t.Fatalf("GetPixel(%d,%d) = %d, want 0x7 after Fill", x, y, got)
			}
		}
	}
}

func TestCopyFromShiftsRowsDown(t *testing.T) {
	var src, dst Buffer
	src.SetPixel(10, 0, 0x4)
	dst.CopyFrom(&src, 5)

	if got := dst.GetPixel(10, 5); got != 0x4 {
		t.Fatalf("GetPixel(10,5) = %d, want 0x4 after CopyFrom(yOffset=5)", got)
	}
	if got := dst.GetPixel(10, 0); got != 0 {
		t.Fatalf("GetPixel(10,0) = %d, want 0 (row not written by this shift)", got)
	}
}

func TestCopyFromLargeOffsetLeavesBufferUnchanged(t *testing.T) {
	var src, dst Buffer
	src.Fill(0x9)
	dst.Fill(0x2)

	dst.CopyFrom(&src, Height)
	for y := 0; y < Height; y += 50 {
		if got := dst.GetPixel(0, y); got != 0x2 {
			t.Fatalf("CopyFrom(yOffset=Height) modified row %d: got %d, want unchanged 0x2", y, got)
		}
	}

	dst.CopyFrom(&src, -Height)
	for y := 0; y < Height; y += 50 {
		if got := dst.GetPixel(0, y); got != 0x2 {
			t.Fatalf("CopyFrom(yOffset=-Height) modified row %d: got %d, want unchanged 0x2", y, got)
		}
	}
}

func TestNewBufferFromPackedRejectsWrongSize(t *testing.T) {
	if _, err := NewBufferFromPacked(make([]byte, 10)); err == nil {
		t.Fatal("expected an error for a wrong-sized bitmap resource")
	}
}

func TestNewBufferFromPackedRoundTripsPixels(t *testing.T) {
	var src Buffer
	src.SetPixel(3, 3, 0xA)
	src.SetPixel(4, 3, 0x2)

	buf, err := NewBufferFromPacked(src.pixels[:])
	if err != nil {
		t.Fatalf("NewBufferFromPacked: %v", err)
	}
	if got := buf.GetPixel(3, 3); got != 0xA {
		t.Fatalf("GetPixel(3,3) = %d, want 0xA", got)
	}
	if got := buf.GetPixel(4, 3); got != 0x2 {
		t.Fatalf("GetPixel(4,3) = %d, want 0x2", got)
	}
}

func TestCopyFromNegativeOffsetShiftsRowsUp(t *testing.T) {
	var src, dst Buffer
	src.SetPixel(0, 10, 0x6)
	dst.CopyFrom(&src, -5)

	if got := dst.GetPixel(0, 5); got != 0x6 {
		t.Fatalf("GetPixel(0,5) = %d, want 0x6 after CopyFrom(yOffset=-5)", got)
	}
}
