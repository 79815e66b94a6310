package dither

import (
	"github.com/gopanel/epd/framebuf"
	"github.com/gopanel/epd/surface"
)

type rgbError struct{ r, g, b float64 }

// applyFloydSteinberg scans left-to-right, top-to-bottom, distributing
// each pixel's quantization error across two alternating row-error
// buffers (current row, and the row below being accumulated).
func applyFloydSteinberg(canvas *surface.Canvas, fb *framebuf.Framebuffer) {
	pal := fb.Format().Palette
	w, h := canvas.Width(), canvas.Height()

	entries := pal.Entries()
	paletteRGB := make([][3]float64, len(entries))
	for i, e := range entries {
		paletteRGB[i] = [3]float64{float64(e.Color.R), float64(e.Color.G), float64(e.Color.B)}
	}

	cur := make([]rgbError, w)
	next := make([]rgbError, w)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col, _ := canvas.ColorAt(x, y)
			r := clamp255(float64(col.R) + cur[x].r)
			g := clamp255(float64(col.G) + cur[x].g)
			b := clamp255(float64(col.B) + cur[x].b)

			idx := pal.NearestIndex(r, g, b)
			fb.SetIndex(x, y, idx)

			nr, ng, nb := paletteRGB[idx][0], paletteRGB[idx][1], paletteRGB[idx][2]
			er := float64(r) - nr
			eg := float64(g) - ng
			eb := float64(b) - nb

			if x+1 < w {
				cur[x+1].r += er * 7.0 / 16.0
				cur[x+1].g += eg * 7.0 / 16.0
				cur[x+1].b += eb * 7.0 / 16.0
			}
			if x-1 >= 0 {
				next[x-1].r += er * 3.0 / 16.0
				next[x-1].g += eg * 3.0 / 16.0
				next[x-1].b += eb * 3.0 / 16.0
			}
			next[x].r += er * 5.0 / 16.0
			next[x].g += eg * 5.0 / 16.0
			next[x].b += eb * 5.0 / 16.0
			if x+1 < w {
				next[x+1].r += er * 1.0 / 16.0
				next[x+1].g += eg * 1.0 / 16.0
				next[x+1].b += eb * 1.0 / 16.0
			}
		}
		cur, next = next, cur
		for i := range next {
			next[i] = rgbError{}
		}
	}
}
