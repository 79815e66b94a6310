package dither

import (
	"github.com/gopanel/epd/framebuf"
	"github.com/gopanel/epd/surface"
)

// bayer4x4 is the 4x4 ordered-dither threshold matrix (values 0..15);
// applyOrdered normalizes each entry by dividing it by 16.
var bayer4x4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

func clamp255(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

func applyOrdered(canvas *surface.Canvas, fb *framebuf.Framebuffer) {
	pal := fb.Format().Palette
	span := 256.0 / float64(pal.Size())
	for y := 0; y < canvas.Height(); y++ {
		for x := 0; x < canvas.Width(); x++ {
			col, _ := canvas.ColorAt(x, y)
			offset := (bayer4x4[y%4][x%4]/16.0 - 0.5) * span
			r := clamp255(float64(col.R) + offset)
			g := clamp255(float64(col.G) + offset)
			b := clamp255(float64(col.B) + offset)
			paintNearest(fb, pal, x, y, r, g, b)
		}
	}
}
