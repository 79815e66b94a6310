// Package raster implements the drawing-primitive mixin shared by every
// Surface: lines, rectangles, circles, ellipses, arcs, polygons, flood
// fill, and polylines. Every primitive reaches the surface only through
// SetPixel/GetPixel and returns the surface it drew on, so calls chain.
package raster

import (
	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/surface"
)

// Paint is an optional drawing value: a present Paint carries the pixel
// value a primitive should write (a color.Color for a Canvas, a
// color.Name for a Framebuffer); an absent Paint means "skip this pass".
type Paint struct {
	Value   any
	Present bool
}

// With wraps v as a present Paint.
func With(v any) Paint { return Paint{Value: v, Present: true} }

// None is the absent Paint; its zero value already satisfies this, the
// named constructor just documents intent at call sites.
func None() Paint { return Paint{} }

// Point is an integer pixel coordinate, used by draw_polyline and
// draw_polygon.
type Point struct{ X, Y int }

func requirePaint(op string, strokeW, fillW Paint) error {
	if !strokeW.Present && !fillW.Present {
		return &epderr.InvalidArgumentError{
			Operation: op,
			Details:   "at least one of stroke or fill must be present",
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func setRow(s surface.Surface, y, x0, x1 int, v any) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		s.SetPixel(x, y, v)
	}
}
