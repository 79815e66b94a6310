// Package dither implements the strategies that quantize a Canvas's RGBA
// buffer into a palette-indexed Framebuffer.
package dither

import (
	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/framebuf"
	"github.com/gopanel/epd/palette"
	"github.com/gopanel/epd/surface"
)

// Strategy is a tagged enum of the three supported quantization passes.
type Strategy int

const (
	Threshold Strategy = iota
	Ordered
	FloydSteinberg
)

func (s Strategy) String() string {
	switch s {
	case Threshold:
		return "threshold"
	case Ordered:
		return "ordered"
	case FloydSteinberg:
		return "floyd_steinberg"
	default:
		return "unknown"
	}
}

// Apply quantizes canvas's RGBA buffer into fb using strategy, writing a
// palette-entry name to every pixel. canvas and fb must share dimensions.
func Apply(strategy Strategy, canvas *surface.Canvas, fb *framebuf.Framebuffer) error {
	if canvas.Width() != fb.Width() || canvas.Height() != fb.Height() {
		return &epderr.InvalidArgumentError{
			Operation: "dither.Apply",
			Details:   "canvas and framebuffer dimensions must match",
		}
	}
	switch strategy {
	case Threshold:
		applyThreshold(canvas, fb)
	case Ordered:
		applyOrdered(canvas, fb)
	case FloydSteinberg:
		applyFloydSteinberg(canvas, fb)
	default:
		return &epderr.InvalidArgumentError{
			Operation: "dither.Apply",
			Details:   "unknown strategy",
		}
	}
	return nil
}

func paintNearest(fb *framebuf.Framebuffer, pal *palette.Palette, x, y int, r, g, b uint8) {
	idx := pal.NearestIndex(r, g, b)
	fb.SetIndex(x, y, idx)
}

func applyThreshold(canvas *surface.Canvas, fb *framebuf.Framebuffer) {
	pal := fb.Format().Palette
	for y := 0; y < canvas.Height(); y++ {
		for x := 0; x < canvas.Width(); x++ {
			col, _ := canvas.ColorAt(x, y)
			paintNearest(fb, pal, x, y, col.R, col.G, col.B)
		}
	}
}
