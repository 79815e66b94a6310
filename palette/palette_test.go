package palette

import "testing"

import "github.com/gopanel/epd/color"

func color4(t *testing.T) *Palette {
	t.Helper()
	p, err := New(color.Black, color.White, color.Yellow, color.Red)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestIndexColorAtIdentity(t *testing.T) {
	p := color4(t)
	for i := 0; i < p.Size(); i++ {
		e, err := p.ColorAt(i)
		if err != nil {
			t.Fatalf("ColorAt(%d): %v", i, err)
		}
		got, err := p.IndexOf(e.Name)
		if err != nil {
			t.Fatalf("IndexOf(%v): %v", e.Name, err)
		}
		if got != i {
			t.Fatalf("IndexOf(ColorAt(%d)) = %d, want %d", i, got, i)
		}
	}
}

func TestIndexOfUnknown(t *testing.T) {
	p := color4(t)
	if _, err := p.IndexOf(color.Green); err == nil {
		t.Fatalf("expected NotFoundError for entry absent from palette")
	}
}

func TestColorAtOutOfRange(t *testing.T) {
	p := color4(t)
	if _, err := p.ColorAt(-1); err == nil {
		t.Fatalf("expected error for negative index")
	}
	if _, err := p.ColorAt(p.Size()); err == nil {
		t.Fatalf("expected error for index == size")
	}
}

func TestNewRejectsDuplicatesAndEmpty(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error for empty palette")
	}
	if _, err := New(color.Black, color.Black); err == nil {
		t.Fatalf("expected error for duplicate entry")
	}
}

func TestNearestColorColor4(t *testing.T) {
	p := color4(t)
	tests := []struct {
		r, g, b uint8
		want    color.Name
	}{
		{128, 0, 0, color.Red},
		{32, 32, 32, color.Black},
		{220, 220, 220, color.White},
		{200, 200, 0, color.Yellow},
	}
	for _, tt := range tests {
		idx := p.NearestIndex(tt.r, tt.g, tt.b)
		e, err := p.ColorAt(idx)
		if err != nil {
			t.Fatalf("ColorAt(%d): %v", idx, err)
		}
		if e.Name != tt.want {
			t.Errorf("NearestIndex(%d,%d,%d) -> %v, want %v", tt.r, tt.g, tt.b, e.Name, tt.want)
		}
	}
}

func TestNearestIndexCacheConsistency(t *testing.T) {
	p := color4(t)
	first := p.NearestIndex(10, 10, 10)
	second := p.NearestIndex(10, 10, 10)
	if first != second {
		t.Fatalf("NearestIndex not stable across repeated calls: %d != %d", first, second)
	}

	// A fresh palette with the same contents and order must return the
	// same answer regardless of prior cache state.
	fresh := color4(t)
	if got := fresh.NearestIndex(10, 10, 10); got != first {
		t.Fatalf("NearestIndex depends on cache state: got %d, want %d", got, first)
	}
}
