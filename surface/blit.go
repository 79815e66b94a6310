package surface

// Blit composites src onto dst at (x,y). When src is itself a *Canvas this
// uses a fast per-pixel alpha-composite path clipped to both surfaces:
// fully transparent source pixels are skipped, opaque pixels overwrite,
// semi-transparent pixels blend with the destination via Color.Over; the
// result alpha is always 255. When src is some other Surface, pixel values
// are copied through SetPixel/GetPixel verbatim (no compositing assumed,
// since a non-Canvas source's value type may not even be a Color).
func Blit(dst Surface, src Surface, x, y int) {
	if dstCanvas, ok := dst.(*Canvas); ok {
		if srcCanvas, ok := src.(*Canvas); ok {
			blitCanvasOntoCanvas(dstCanvas, srcCanvas, x, y)
			return
		}
	}
	blitGeneric(dst, src, x, y)
}

func blitCanvasOntoCanvas(dst, src *Canvas, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= dst.width {
				continue
			}
			srcCol, _ := src.ColorAt(sx, sy)
			if srcCol.A == 0 {
				continue
			}
			if srcCol.A == 255 {
				dst.SetColor(dx, dy, srcCol)
				continue
			}
			bg, _ := dst.ColorAt(dx, dy)
			dst.SetColor(dx, dy, srcCol.Over(bg))
		}
	}
}

func blitGeneric(dst Surface, src Surface, x, y int) {
	w, h := src.Width(), src.Height()
	for sy := 0; sy < h; sy++ {
		dy := y + sy
		for sx := 0; sx < w; sx++ {
			dx := x + sx
			v, ok := src.GetPixel(sx, sy)
			if !ok {
				continue
			}
			dst.SetPixel(dx, dy, v)
		}
	}
}
