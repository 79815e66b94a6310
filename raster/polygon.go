package raster

import (
	"math"
	"sort"

	"github.com/gopanel/epd/surface"
)

// DrawPolygon fills the polygon described by points via scanline
// edge-intersection (each edge contributes an intersection for a
// scanline that is strictly below the edge's top vertex and at or above
// its bottom vertex, i.e. open at the top and closed at the bottom, so a
// shared vertex between two edges is never double-counted), then strokes
// the closed outline.
func DrawPolygon(s surface.Surface, points []Point, stroke, fill Paint) (surface.Surface, error) {
	if err := requirePaint("raster.DrawPolygon", stroke, fill); err != nil {
		return s, err
	}
	if fill.Present && len(points) >= 3 {
		fillPolygon(s, points, fill.Value)
	}
	if stroke.Present {
		DrawPolyline(s, points, true, stroke.Value, 1)
	}
	return s, nil
}

func fillPolygon(s surface.Surface, points []Point, v any) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	n := len(points)
	for y := minY; y <= maxY; y++ {
		var xs []int
		for i := 0; i < n; i++ {
			p0 := points[i]
			p1 := points[(i+1)%n]
			ya, xa, yb, xb := p0.Y, p0.X, p1.Y, p1.X
			if ya > yb {
				ya, xa, yb, xb = yb, xb, ya, xa
			}
			if ya == yb {
				continue // horizontal edge contributes no intersection
			}
			if y > ya && y <= yb {
				t := float64(y-ya) / float64(yb-ya)
				x := xa + int(math.Round(t*float64(xb-xa)))
				xs = append(xs, x)
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			setRow(s, y, xs[i], xs[i+1], v)
		}
	}
}
