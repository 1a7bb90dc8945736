package video

// Fixed1616 is a 16.16 fixed-point value: the high 16 bits are the
// whole part, the low 16 the fraction. Arithmetic wraps on overflow
// exactly like signed 32-bit addition, since that's all it is.
type Fixed1616 int32

// FixedFromInt builds a Fixed1616 with a zero fraction.
func FixedFromInt(whole int) Fixed1616 {
	return Fixed1616(whole << 16)
}

// Add returns f+other, wrapping on overflow like any int32 addition.
func (f Fixed1616) Add(other Fixed1616) Fixed1616 {
	return f + other
}

// Whole returns the truncated integer part.
func (f Fixed1616) Whole() int {
	return int(f >> 16)
}

// WithFraction returns a copy of f with its fractional bits replaced.
func (f Fixed1616) WithFraction(frac uint16) Fixed1616 {
	return Fixed1616(f&^0xFFFF) | Fixed1616(frac)
}

// FillMode selects how DrawSpan combines a span's color code with
// whatever is already on the buffer.
type FillMode uint8

const (
	// FillSolid writes ColorCode to every pixel in the span.
	FillSolid FillMode = iota
	// FillHighlight brightens each existing pixel rather than
	// replacing it (color code 0x10).
	FillHighlight
	// FillMask draws through a second buffer used as a translucency
	// mask: only pixels where the mask buffer holds a nonzero value are
	// written (color code 0x11).
	FillMask
)

// highlightColorCode and maskColorCode are the two color codes that
// select a non-solid fill mode instead of naming a palette index.
const (
	highlightColorCode = 0x10
	maskColorCode      = 0x11
)

// FillModeForColorCode maps a polygon's stored color code to the fill
// mode DrawSpan should use, and the literal color (if any) it applies.
func FillModeForColorCode(code uint8) (mode FillMode, color uint8) {
	switch code {
	case highlightColorCode:
		return FillHighlight, 0
	case maskColorCode:
		return FillMask, 0
	default:
		return FillSolid, code
	}
}

// DrawSpan draws one horizontal run [xLeft, xRight] on row y of dst,
// clipping to the buffer's bounds. mask is consulted only in
// FillMask mode and may be nil otherwise. Rows outside [0, Height) and
// spans entirely outside [0, Width) are silently skipped, matching the
// rasterizer's out-of-bounds-is-a-no-op contract.
func DrawSpan(dst *Buffer, y int, xLeft, xRight int, mode FillMode, color uint8, mask *Buffer) {
	if y < 0 || y >= Height {
		return
	}
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	if xLeft < 0 {
		xLeft = 0
	}
	if xRight >= Width {
		xRight = Width - 1
	}
	if xLeft > xRight {
		return
	}

	for x := xLeft; x <= xRight; x++ {
		switch mode {
		case FillSolid:
			dst.SetPixel(x, y, color)
		case FillHighlight:
			current := dst.GetPixel(x, y)
			dst.SetPixel(x, y, highlight(current))
		case FillMask:
			if mask == nil {
				continue
			}
			if m := mask.GetPixel(x, y); m != 0 {
				dst.SetPixel(x, y, m)
			}
		}
	}
}

// highlight brightens a 4-bit color index by setting its top bit,
// the indexed-palette equivalent of the original engine's "lighter
// shade" color code.
func highlight(color uint8) uint8 {
	return (color & 0x07) | 0x08
}

// DrawPolygon rasterizes p (and, recursively, any children) into dst.
// origin is the screen-space position of p's center; scale is in
// sixty-fourths (64 == 1.0), matching RegPolygonScale's unit.
func DrawPolygon(dst *Buffer, mask *Buffer, p *Polygon, originX, originY int, scale uint16) {
	if p == nil {
		return
	}
	if !p.Leaf {
		for _, child := range p.Children {
			childX := originX + scalePoint(int(child.OffsetX), scale)
			childY := originY + scalePoint(int(child.OffsetY), scale)
			DrawPolygon(dst, mask, child.Polygon, childX, childY, scale)
		}
		return
	}

	rows := len(p.Rows)
	if rows == 0 {
		return
	}
	height := scalePoint(int(p.Height), scale)
	if height <= 0 {
		height = 1
	}
	topY := originY - height/2

	mode, color := FillModeForColorCode(p.ColorCode)

	// Step through the destination rows with a 16.16 accumulator
	// selecting which stored row to sample, so a polygon scaled taller
	// than its row table repeats rows rather than leaving gaps.
	step := FixedFromInt(rows) / Fixed1616(height)
	acc := Fixed1616(0)
	for y := 0; y < height; y++ {
		srcRow := acc.Whole()
		if srcRow >= rows {
			srcRow = rows - 1
		}
		row := p.Rows[srcRow]
		left := originX + scalePoint(int(row.Left), scale) - scalePoint(int(p.Width), scale)/2
		right := originX + scalePoint(int(row.Right), scale) - scalePoint(int(p.Width), scale)/2
		DrawSpan(dst, topY+y, left, right, mode, color, mask)
		acc = acc.Add(step)
	}
}

// scalePoint applies a RegPolygonScale-style scale (64 == 1.0) to a
// single coordinate.
func scalePoint(v int, scale uint16) int {
	return v * int(scale) / 64
}
