package raster

import "github.com/gopanel/epd/surface"

// FloodFill paints the 4-connected region around (x,y) that matches the
// seed pixel's current value, using the scanline-span algorithm: each
// stack entry's span is extended left/right over pixels still matching
// the original target value, painted, and then the contiguous matching
// runs directly above and below the span are pushed as new seeds.
func FloodFill(s surface.Surface, x, y int, v any) surface.Surface {
	target, ok := s.GetPixel(x, y)
	if !ok || target == v {
		return s
	}

	type seed struct{ x, y int }
	stack := []seed{{x, y}}

	matches := func(px, py int) bool {
		val, ok := s.GetPixel(px, py)
		return ok && val == target
	}

	for len(stack) > 0 {
		pt := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !matches(pt.x, pt.y) {
			continue
		}

		xl, xr := pt.x, pt.x
		for matches(xl-1, pt.y) {
			xl--
		}
		for matches(xr+1, pt.y) {
			xr++
		}
		setRow(s, pt.y, xl, xr, v)

		for _, ny := range [2]int{pt.y - 1, pt.y + 1} {
			inSpan := false
			for nx := xl; nx <= xr; nx++ {
				if matches(nx, ny) {
					if !inSpan {
						stack = append(stack, seed{nx, ny})
						inSpan = true
					}
				} else {
					inSpan = false
				}
			}
		}
	}
	return s
}
