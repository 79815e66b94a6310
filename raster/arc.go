package raster

import (
	"math"

	"github.com/gopanel/epd/surface"
)

const twoPi = 2 * math.Pi

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

func inArcRange(angle, start, end float64) bool {
	if start <= end {
		return angle >= start && angle <= end
	}
	// wrap-around: the valid range straddles 0.
	return angle >= start || angle <= end
}

// circlePointsFull returns every boundary point of a circle of radius r,
// as (dx,dy) offsets from its own center, reflected from the first
// octant through all eight symmetric positions.
func circlePointsFull(r int) []Point {
	var pts []Point
	for _, p := range midpointCircleOctant(r) {
		x, y := p[0], p[1]
		pts = append(pts,
			Point{x, y}, Point{-x, y}, Point{x, -y}, Point{-x, -y},
			Point{y, x}, Point{-y, x}, Point{y, -x}, Point{-y, -x},
		)
	}
	return pts
}

// DrawArc walks the midpoint circle of radius r centered at (cx,cy) and
// plots a point only when atan2(-dy, dx) mod 2pi falls within
// [start mod 2pi, end mod 2pi] (wrap-around handled). strokeWidth widens
// the radius range symmetrically, the same way DrawCircle's annulus does.
func DrawArc(s surface.Surface, cx, cy, r int, start, end float64, v any, strokeWidth int) surface.Surface {
	if strokeWidth < 1 {
		strokeWidth = 1
	}
	half := ceilDiv(strokeWidth-1, 2)
	startN := normalizeAngle(start)
	endN := normalizeAngle(end)

	for radius := max(r-half, 0); radius <= r+half; radius++ {
		for _, p := range circlePointsFull(radius) {
			angle := normalizeAngle(math.Atan2(float64(-p.Y), float64(p.X)))
			if inArcRange(angle, startN, endN) {
				s.SetPixel(cx+p.X, cy+p.Y, v)
			}
		}
	}
	return s
}
