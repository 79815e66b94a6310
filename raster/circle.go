package raster

import "github.com/gopanel/epd/surface"

// midpointCircleOctant returns the integer midpoint-circle points of the
// first octant (0 <= y <= x <= r).
func midpointCircleOctant(r int) [][2]int {
	if r <= 0 {
		return [][2]int{{0, 0}}
	}
	var points [][2]int
	x, y := r, 0
	d := 1 - r
	for y <= x {
		points = append(points, [2]int{x, y})
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
	return points
}

// circleExtents returns, for each row offset dy in [0,r], the maximum
// horizontal offset dx such that (dx,dy) lies on or inside the circle of
// radius r — the per-scanline half-width used by fill and annulus draws.
func circleExtents(r int) []int {
	extent := make([]int, r+1)
	for _, p := range midpointCircleOctant(r) {
		x, y := p[0], p[1]
		if x > extent[y] {
			extent[y] = x
		}
		if y > extent[x] {
			extent[x] = y
		}
	}
	return extent
}

func plotCircleOutline(s surface.Surface, cx, cy, r int, v any) {
	for _, p := range midpointCircleOctant(r) {
		x, y := p[0], p[1]
		plot8(s, cx, cy, x, y, v)
	}
}

func plot8(s surface.Surface, cx, cy, x, y int, v any) {
	s.SetPixel(cx+x, cy+y, v)
	s.SetPixel(cx-x, cy+y, v)
	s.SetPixel(cx+x, cy-y, v)
	s.SetPixel(cx-x, cy-y, v)
	s.SetPixel(cx+y, cy+x, v)
	s.SetPixel(cx-y, cy+x, v)
	s.SetPixel(cx+y, cy-x, v)
	s.SetPixel(cx-y, cy-x, v)
}

// DrawCircle draws a circle of radius r centered at (cx,cy). strokeWidth
// of 1 draws the plain midpoint-algorithm outline; greater than 1 draws a
// filled annulus by computing outer and inner extents per scanline. fill
// paints the interior disc first, so a stroked-and-filled circle shows
// the fill under the ring. At least one of stroke/fill must be present.
func DrawCircle(s surface.Surface, cx, cy, r int, stroke, fill Paint, strokeWidth int) (surface.Surface, error) {
	if err := requirePaint("raster.DrawCircle", stroke, fill); err != nil {
		return s, err
	}
	if fill.Present {
		fillDisc(s, cx, cy, r, fill.Value)
	}
	if stroke.Present {
		drawCircleOutline(s, cx, cy, r, strokeWidth, stroke.Value)
	}
	return s, nil
}

func drawCircleOutline(s surface.Surface, cx, cy, r, strokeWidth int, v any) {
	if strokeWidth < 1 {
		strokeWidth = 1
	}
	if strokeWidth == 1 {
		plotCircleOutline(s, cx, cy, r, v)
		return
	}
	half := ceilDiv(strokeWidth-1, 2)
	outerR := r + half
	innerR := max(r-half, 0)
	outer := circleExtents(outerR)
	var inner []int
	if innerR > 0 {
		inner = circleExtents(innerR)
	}
	for dy := 0; dy <= outerR; dy++ {
		oe := outer[dy]
		ie := -1
		if dy <= innerR && inner != nil {
			ie = inner[dy]
		}
		drawAnnulusRow(s, cx, cy+dy, oe, ie, v)
		if dy != 0 {
			drawAnnulusRow(s, cx, cy-dy, oe, ie, v)
		}
	}
}

// drawAnnulusRow paints [cx-oe, cx+oe] minus the hole [cx-ie, cx+ie] (no
// hole when ie < 0).
func drawAnnulusRow(s surface.Surface, cx, y, oe, ie int, v any) {
	if ie < 0 {
		setRow(s, y, cx-oe, cx+oe, v)
		return
	}
	if ie >= oe {
		return
	}
	setRow(s, y, cx-oe, cx-ie-1, v)
	setRow(s, y, cx+ie+1, cx+oe, v)
}
