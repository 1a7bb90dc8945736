package video

import "testing"

// buildLeafBytes lays out one leaf polygon: tag, width, height,
// vertexCount, then vertexCount bytes of (left,right) row pairs.
func buildLeafBytes(colorCode, width, height uint8, rows [][2]uint8) []byte {
	out := []byte{leafTagMask | colorCode, width, height, uint8(len(rows) * 2)}
	for _, r := range rows {
		out = append(out, r[0], r[1])
	}
	return out
}

func TestDecodePolygonLeaf(t *testing.T) {
	bank := buildLeafBytes(0x05, 10, 4, [][2]uint8{{0, 9}, {1, 8}})
	p, err := DecodePolygon(bank, 0)
	if err != nil {
		t.Fatalf("DecodePolygon: %v", err)
	}
	if !p.Leaf {
		t.Fatal("expected a leaf polygon")
	}
	if p.ColorCode != 0x05 {
		t.Fatalf("ColorCode = %d, want 5", p.ColorCode)
	}
	if p.Width != 10 || p.Height != 4 {
		t.Fatalf("Width/Height = %d/%d, want 10/4", p.Width, p.Height)
	}
	if len(p.Rows) != 2 || p.Rows[0] != (Row{0, 9}) || p.Rows[1] != (Row{1, 8}) {
		t.Fatalf("Rows = %+v, want [{0 9} {1 8}]", p.Rows)
	}
}

func TestDecodePolygonOddVertexCountIsAnError(t *testing.T) {
	bank := []byte{leafTagMask, 10, 4, 3, 0, 0, 0}
	if _, err := DecodePolygon(bank, 0); err == nil {
		t.Fatal("expected an error for an odd vertex count")
	}
}

func TestDecodePolygonGroupRecursesIntoChildren(t *testing.T) {
	// Child leaf placed at offset 10.
	leaf := buildLeafBytes(0x02, 4, 2, [][2]uint8{{0, 3}})

	group := []byte{0x00, 1, 5, 6, 0, 10} // tag(not leaf), childCount=1, offsetX=5,offsetY=6, childAddr=10(big-endian)
	bank := make([]byte, 10)
	copy(bank, group)
	bank = append(bank, leaf...)

	p, err := DecodePolygon(bank, 0)
	if err != nil {
		t.Fatalf("DecodePolygon: %v", err)
	}
	if p.Leaf {
		t.Fatal("expected a group polygon")
	}
	if len(p.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(p.Children))
	}
	child := p.Children[0]
	if child.OffsetX != 5 || child.OffsetY != 6 {
		t.Fatalf("child offset = (%d,%d), want (5,6)", child.OffsetX, child.OffsetY)
	}
	if !child.Polygon.Leaf || child.Polygon.ColorCode != 0x02 {
		t.Fatalf("child polygon = %+v, want a leaf with color code 2", child.Polygon)
	}
}

func TestDecodePolygonOutOfRangeAddressIsAnError(t *testing.T) {
	if _, err := DecodePolygon([]byte{0x01}, 50); err == nil {
		t.Fatal("expected an error for an out-of-range polygon offset")
	}
}

func TestDecodePolygonGroupDepthLimitIsEnforced(t *testing.T) {
	// A group whose only child points back at itself must fail rather
	// than loop forever.
	bank := []byte{0x00, 1, 0, 0, 0, 0}
	if _, err := DecodePolygon(bank, 0); err == nil {
		t.Fatal("expected a depth-limit error for a self-referential group")
	}
}
