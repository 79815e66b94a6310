package raster

import "github.com/gopanel/epd/surface"

// midpointEllipseQuadrant returns the first-quadrant points of the
// midpoint ellipse algorithm for semi-axes (rx,ry), traced from (0,ry)
// to (rx,0).
func midpointEllipseQuadrant(rx, ry int) [][2]int {
	if rx <= 0 || ry <= 0 {
		return [][2]int{{0, 0}}
	}
	rxf, ryf := float64(rx), float64(ry)
	rx2, ry2 := rxf*rxf, ryf*ryf

	var points [][2]int
	x, y := 0, ry

	// Region 1: slope magnitude < 1.
	p1 := ry2 - rx2*ryf + 0.25*rx2
	for 2*ry2*float64(x) < 2*rx2*float64(y) {
		points = append(points, [2]int{x, y})
		x++
		if p1 < 0 {
			p1 += 2*ry2*float64(x) + ry2
		} else {
			y--
			p1 += 2*ry2*float64(x) - 2*rx2*float64(y) + ry2
		}
	}

	// Region 2: slope magnitude >= 1.
	p2 := ry2*(float64(x)+0.5)*(float64(x)+0.5) + rx2*float64(y-1)*float64(y-1) - rx2*ry2
	for y >= 0 {
		points = append(points, [2]int{x, y})
		y--
		if p2 > 0 {
			p2 += rx2 - 2*rx2*float64(y)
		} else {
			x++
			p2 += 2*ry2*float64(x) - 2*rx2*float64(y) + rx2
		}
	}
	return points
}

// ellipseExtents returns, for each row offset dy in [0,ry], the maximum
// horizontal offset dx of a boundary point at that row.
func ellipseExtents(rx, ry int) []int {
	extent := make([]int, ry+1)
	for _, p := range midpointEllipseQuadrant(rx, ry) {
		x, y := p[0], p[1]
		if y >= 0 && y <= ry && x > extent[y] {
			extent[y] = x
		}
	}
	return extent
}

func plotEllipseOutline(s surface.Surface, cx, cy, rx, ry int, v any) {
	for _, p := range midpointEllipseQuadrant(rx, ry) {
		x, y := p[0], p[1]
		s.SetPixel(cx+x, cy+y, v)
		s.SetPixel(cx-x, cy+y, v)
		s.SetPixel(cx+x, cy-y, v)
		s.SetPixel(cx-x, cy-y, v)
	}
}

func fillEllipseDisc(s surface.Surface, cx, cy, rx, ry int, v any) {
	extent := ellipseExtents(rx, ry)
	for dy := 0; dy <= ry; dy++ {
		e := extent[dy]
		setRow(s, cy+dy, cx-e, cx+e, v)
		if dy != 0 {
			setRow(s, cy-dy, cx-e, cx+e, v)
		}
	}
}

// DrawEllipse draws an ellipse with semi-axes (rx,ry) centered at
// (cx,cy), with the same fill-then-stroke and annulus-for-thick-strokes
// behavior as DrawCircle. At least one of stroke/fill must be present.
func DrawEllipse(s surface.Surface, cx, cy, rx, ry int, stroke, fill Paint, strokeWidth int) (surface.Surface, error) {
	if err := requirePaint("raster.DrawEllipse", stroke, fill); err != nil {
		return s, err
	}
	if fill.Present {
		fillEllipseDisc(s, cx, cy, rx, ry, fill.Value)
	}
	if stroke.Present {
		drawEllipseOutline(s, cx, cy, rx, ry, strokeWidth, stroke.Value)
	}
	return s, nil
}

func drawEllipseOutline(s surface.Surface, cx, cy, rx, ry, strokeWidth int, v any) {
	if strokeWidth < 1 {
		strokeWidth = 1
	}
	if strokeWidth == 1 {
		plotEllipseOutline(s, cx, cy, rx, ry, v)
		return
	}
	half := ceilDiv(strokeWidth-1, 2)
	outerRx, outerRy := rx+half, ry+half
	innerRx, innerRy := max(rx-half, 0), max(ry-half, 0)
	outer := ellipseExtents(outerRx, outerRy)
	var inner []int
	if innerRx > 0 && innerRy > 0 {
		inner = ellipseExtents(innerRx, innerRy)
	}
	for dy := 0; dy <= outerRy; dy++ {
		oe := outer[dy]
		ie := -1
		if inner != nil && dy <= innerRy {
			ie = inner[dy]
		}
		drawAnnulusRow(s, cx, cy+dy, oe, ie, v)
		if dy != 0 {
			drawAnnulusRow(s, cx, cy-dy, oe, ie, v)
		}
	}
}
