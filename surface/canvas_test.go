package surface

import (
	"testing"

	"github.com/gopanel/epd/color"
)

func TestCanvasSetGetPixelRoundTrip(t *testing.T) {
	c, err := NewCanvas(4, 4, color.Opaque(0, 0, 0))
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	want := color.Opaque(10, 20, 30)
	c.SetColor(1, 2, want)
	got, ok := c.ColorAt(1, 2)
	if !ok || got != want {
		t.Fatalf("ColorAt(1,2) = %+v, %v, want %+v, true", got, ok, want)
	}
}

func TestCanvasOutOfBoundsIsSilent(t *testing.T) {
	c, err := NewCanvas(2, 2, color.Opaque(0, 0, 0))
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	// Out-of-bounds write must not panic and must not affect in-bounds pixels.
	c.SetColor(-1, -1, color.Opaque(255, 255, 255))
	c.SetColor(100, 100, color.Opaque(255, 255, 255))
	if _, ok := c.ColorAt(100, 100); ok {
		t.Fatalf("expected absence for out-of-bounds read")
	}
	if got, ok := c.ColorAt(0, 0); !ok || got != color.Opaque(0, 0, 0) {
		t.Fatalf("in-bounds pixel disturbed by out-of-bounds write: %+v", got)
	}
}

func TestCanvasCloneIsDeepCopy(t *testing.T) {
	c, err := NewCanvas(2, 2, color.Opaque(0, 0, 0))
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	clone := c.Clone()
	clone.SetColor(0, 0, color.Opaque(255, 0, 0))
	if got, _ := c.ColorAt(0, 0); got != color.Opaque(0, 0, 0) {
		t.Fatalf("original mutated by clone mutation: %+v", got)
	}
}

func TestNewCanvasRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := NewCanvas(0, 4, color.Opaque(0, 0, 0)); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if _, err := NewCanvas(4, -1, color.Opaque(0, 0, 0)); err == nil {
		t.Fatalf("expected error for negative height")
	}
}

func TestBlitAlphaCompositing(t *testing.T) {
	dst, err := NewCanvas(2, 2, color.Opaque(255, 255, 255))
	if err != nil {
		t.Fatalf("NewCanvas dst: %v", err)
	}
	src, err := NewCanvas(2, 2, color.Opaque(0, 0, 0))
	if err != nil {
		t.Fatalf("NewCanvas src: %v", err)
	}
	src.SetColor(0, 0, color.New(255, 0, 0, 128))
	src.SetColor(1, 0, color.New(0, 0, 0, 0))
	src.SetColor(0, 1, color.New(0, 0, 0, 255))
	src.SetColor(1, 1, color.New(255, 255, 255, 128))

	Blit(dst, src, 0, 0)

	want := []color.Color{
		color.New(255, 127, 127, 255),
		color.Opaque(255, 255, 255),
		color.Opaque(0, 0, 0),
		color.Opaque(255, 255, 255),
	}
	coords := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, xy := range coords {
		got, _ := dst.ColorAt(xy[0], xy[1])
		if got != want[i] {
			t.Errorf("pixel (%d,%d) = %+v, want %+v", xy[0], xy[1], got, want[i])
		}
	}
}

func TestBlitFullyOutsideIsNoOp(t *testing.T) {
	dst, err := NewCanvas(2, 2, color.Opaque(1, 2, 3))
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	src, err := NewCanvas(2, 2, color.Opaque(255, 255, 255))
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	Blit(dst, src, 100, 100)
	got, _ := dst.ColorAt(0, 0)
	if got != color.Opaque(1, 2, 3) {
		t.Fatalf("blit fully outside destination mutated it: %+v", got)
	}
}

func TestLayerTranslatesAndClips(t *testing.T) {
	parent, err := NewCanvas(10, 10, color.Opaque(0, 0, 0))
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	layer := NewLayer(parent, 3, 3, 4, 4)
	layer.SetPixel(0, 0, color.Opaque(255, 0, 0))
	if got, _ := parent.ColorAt(3, 3); got != color.Opaque(255, 0, 0) {
		t.Fatalf("layer write not translated: got %+v at (3,3)", got)
	}

	// Outside the layer's own bounds must not reach the parent even though
	// the parent would happily accept the write.
	layer.SetPixel(5, 5, color.Opaque(0, 255, 0))
	if got, _ := parent.ColorAt(8, 8); got != color.Opaque(0, 0, 0) {
		t.Fatalf("layer write leaked past its own bounds: got %+v at (8,8)", got)
	}
}

func TestZeroSizeLayerIsAlwaysAbsent(t *testing.T) {
	parent, err := NewCanvas(4, 4, color.Opaque(0, 0, 0))
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	layer := NewLayer(parent, 0, 0, 0, 0)
	layer.SetPixel(0, 0, color.Opaque(255, 255, 255))
	if _, ok := layer.GetPixel(0, 0); ok {
		t.Fatalf("zero-size layer must report absence for all reads")
	}
}

func TestNestedLayersComposeOffsets(t *testing.T) {
	parent, err := NewCanvas(10, 10, color.Opaque(0, 0, 0))
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	outer := NewLayer(parent, 2, 2, 8, 8)
	inner := NewLayer(outer, 3, 3, 4, 4)
	inner.SetPixel(0, 0, color.Opaque(1, 2, 3))
	if got, _ := parent.ColorAt(5, 5); got != color.Opaque(1, 2, 3) {
		t.Fatalf("nested layer offsets did not compose additively: got %+v at (5,5)", got)
	}
}
