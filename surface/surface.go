// Package surface defines the common drawable contract shared by Canvas,
// Layer, and (via the framebuf package) Framebuffer, plus the handful of
// surface-agnostic operations (Clear, Blit) that only need that contract.
//
// The pixel value type is surface-dependent — a Canvas trades in
// color.Color, a Framebuffer in a palette entry name — so SetPixel/GetPixel
// carry the value as `any`; concrete surfaces type-assert to their own
// value type internally and expose strongly-typed convenience methods for
// callers who already know which concrete surface they're holding.
package surface

// Surface is the minimal contract every drawable implements.
type Surface interface {
	Width() int
	Height() int
	InBounds(x, y int) bool

	// SetPixel silently clips out-of-bounds writes.
	SetPixel(x, y int, v any)

	// GetPixel returns (value, true) in bounds, (nil, false) otherwise —
	// the explicit absence value the spec requires for out-of-bounds reads.
	GetPixel(x, y int) (any, bool)
}

// Clear overwrites every pixel of s with v via the generic Surface
// contract. Concrete surfaces with a whole-buffer fast path (Canvas,
// Framebuffer) provide their own Clear method that callers should prefer;
// this one exists so Clear is available uniformly, including over Layers
// and other third-party Surface implementations.
func Clear(s Surface, v any) {
	w, h := s.Width(), s.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.SetPixel(x, y, v)
		}
	}
}
