package raster

import "github.com/gopanel/epd/surface"

// DrawLine draws a Bresenham line from (x0,y0) to (x1,y1) in v. Thickness
// greater than 1 bundles perpendicularly-offset copies of the line over
// [-half, +half] where half = ceil((strokeWidth-1)/2); a zero-length
// input draws a filled disc of that same half-width instead.
func DrawLine(s surface.Surface, x0, y0, x1, y1 int, v any, strokeWidth int) surface.Surface {
	if strokeWidth < 1 {
		strokeWidth = 1
	}
	half := ceilDiv(strokeWidth-1, 2)

	if x0 == x1 && y0 == y1 {
		fillDisc(s, x0, y0, half, v)
		return s
	}

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	horizontal := dx >= dy

	for off := -half; off <= half; off++ {
		if horizontal {
			bresenham(s, x0, y0+off, x1, y1+off, v)
		} else {
			bresenham(s, x0+off, y0, x1+off, y1, v)
		}
	}
	return s
}

func bresenham(s surface.Surface, x0, y0, x1, y1 int, v any) {
	dx := abs(x1 - x0)
	sx := sign(x1 - x0)
	dy := -abs(y1 - y0)
	sy := sign(y1 - y0)
	err := dx + dy
	x, y := x0, y0
	for {
		s.SetPixel(x, y, v)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func fillDisc(s surface.Surface, cx, cy, r int, v any) {
	if r == 0 {
		s.SetPixel(cx, cy, v)
		return
	}
	extent := circleExtents(r)
	for dy := 0; dy <= r; dy++ {
		e := extent[dy]
		setRow(s, cy+dy, cx-e, cx+e, v)
		if dy != 0 {
			setRow(s, cy-dy, cx-e, cx+e, v)
		}
	}
}

// DrawPolyline draws consecutive line segments through points; closed
// additionally connects the last point back to the first.
func DrawPolyline(s surface.Surface, points []Point, closed bool, v any, strokeWidth int) surface.Surface {
	if len(points) == 0 {
		return s
	}
	if len(points) == 1 {
		DrawLine(s, points[0].X, points[0].Y, points[0].X, points[0].Y, v, strokeWidth)
		return s
	}
	for i := 0; i < len(points)-1; i++ {
		DrawLine(s, points[i].X, points[i].Y, points[i+1].X, points[i+1].Y, v, strokeWidth)
	}
	if closed {
		last := points[len(points)-1]
		first := points[0]
		DrawLine(s, last.X, last.Y, first.X, first.Y, v, strokeWidth)
	}
	return s
}
