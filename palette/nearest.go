package palette

import "github.com/gopanel/epd/color"

// packRGB keys the memoization cache by the 24-bit packed RGB of a queried
// color; alpha is ignored, matching spec's "ignores alpha" rule.
func packRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// NearestIndex returns the palette index whose color is nearest to (r,g,b)
// under redmean distance, memoized by the packed RGB key. Ties are broken
// by palette order — the first entry encountered during the linear scan
// wins, so the result depends only on palette contents and order, never on
// prior cache state.
func (p *Palette) NearestIndex(r, g, b uint8) int {
	key := packRGB(r, g, b)

	p.mu.Lock()
	if idx, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return idx
	}
	p.mu.Unlock()

	idx := p.nearestIndexUncached(r, g, b)

	p.mu.Lock()
	p.cache[key] = idx
	p.mu.Unlock()

	return idx
}

func (p *Palette) nearestIndexUncached(r, g, b uint8) int {
	best := 0
	bestDist := redmean(p.entries[0].Color, r, g, b)
	for i := 1; i < len(p.entries); i++ {
		d := redmean(p.entries[i].Color, r, g, b)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// redmean computes the redmean perceptual distance between a palette
// color c1 and a queried (r,g,b):
//
//	rMean = (c1.r + r) / 2
//	d = (2 + rMean/256)*dr^2 + 4*dg^2 + (2 + (255-rMean)/256)*db^2
func redmean(c1 color.Color, r, g, b uint8) int64 {
	rMean := (int64(c1.R) + int64(r)) / 2
	dr := int64(c1.R) - int64(r)
	dg := int64(c1.G) - int64(g)
	db := int64(c1.B) - int64(b)
	return (2+rMean/256)*dr*dr + 4*dg*dg + (2+(255-rMean)/256)*db*db
}
