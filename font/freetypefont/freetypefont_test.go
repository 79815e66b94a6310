package freetypefont

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestNewAndGlyphMetrics(t *testing.T) {
	f, err := New(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.Ascent() <= 0 {
		t.Fatalf("Ascent() = %d, want > 0", f.Ascent())
	}
	if f.LineHeight() <= 0 {
		t.Fatalf("LineHeight() = %d, want > 0", f.LineHeight())
	}
	g, err := f.Glyph('A')
	if err != nil {
		t.Fatalf("Glyph('A'): %v", err)
	}
	if g.Width <= 0 || g.Height <= 0 {
		t.Fatalf("Glyph('A') dimensions = %dx%d, want positive", g.Width, g.Height)
	}
	if g.AdvanceX <= 0 {
		t.Fatalf("Glyph('A').AdvanceX = %d, want > 0", g.AdvanceX)
	}
	if len(g.Bitmap) != g.Width*g.Height {
		t.Fatalf("len(Bitmap) = %d, want %d", len(g.Bitmap), g.Width*g.Height)
	}
}

func TestNewRejectsInvalidTrueType(t *testing.T) {
	if _, err := New([]byte("not a font"), 16); err == nil {
		t.Fatalf("expected error parsing garbage TrueType data")
	}
}
