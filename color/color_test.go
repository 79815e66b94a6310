package color

import "testing"

func TestRGBABytesRoundTrip(t *testing.T) {
	cases := []Color{
		Opaque(0, 0, 0),
		Opaque(255, 255, 255),
		New(12, 200, 7, 128),
		New(0, 0, 0, 0),
	}
	for _, c := range cases {
		got := FromRGBABytes(c.ToRGBABytes())
		if got != c {
			t.Fatalf("round trip mismatch: %+v -> %+v", c, got)
		}
	}
}

func TestNewCheckedRange(t *testing.T) {
	if _, err := NewChecked(0, 0, 0, 0); err != nil {
		t.Fatalf("unexpected error for in-range channels: %v", err)
	}
	if _, err := NewChecked(256, 0, 0, 0); err == nil {
		t.Fatalf("expected error for out-of-range channel")
	}
	if _, err := NewChecked(-1, 0, 0, 0); err == nil {
		t.Fatalf("expected error for negative channel")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#000000", Opaque(0, 0, 0), false},
		{"#ffffff", Opaque(255, 255, 255), false},
		{"#fff", Opaque(255, 255, 255), false},
		{"#f00", Opaque(255, 0, 0), false},
		{"ff0000", Opaque(255, 0, 0), false},
		{"#ggg", Color{}, true},
		{"#12345", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error, got none", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestOverOpaqueIdempotent(t *testing.T) {
	opaque := Opaque(10, 20, 30)
	bg := Opaque(200, 200, 200)
	if got := opaque.Over(bg); got != opaque {
		t.Fatalf("opaque.Over(bg) = %+v, want %+v", got, opaque)
	}
}

func TestOverTransparentReturnsBackground(t *testing.T) {
	transparent := New(10, 20, 30, 0)
	bg := Opaque(200, 200, 200)
	if got := transparent.Over(bg); got != bg {
		t.Fatalf("transparent.Over(bg) = %+v, want %+v", got, bg)
	}
}

func TestOverBlend(t *testing.T) {
	// (255,0,0,128) over (255,255,255,255): the R channel blends 255 with
	// itself and stays 255; G and B blend 0 with 255 at alpha 128/255.
	src := New(255, 0, 0, 128)
	bg := Opaque(255, 255, 255)
	got := src.Over(bg)
	want := New(255, 127, 127, 255)
	if got != want {
		t.Fatalf("src.Over(bg) = %+v, want %+v", got, want)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	for n := Black; n <= Transparent; n++ {
		c, err := Lookup(n)
		if err != nil {
			t.Fatalf("Lookup(%v): %v", n, err)
		}
		got, err := LookupString(n.String())
		if err != nil {
			t.Fatalf("LookupString(%q): %v", n.String(), err)
		}
		if got != c {
			t.Fatalf("LookupString(%q) = %+v, want %+v", n.String(), got, c)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := LookupString("not-a-color"); err == nil {
		t.Fatalf("expected NotFoundError for unknown color name")
	}
}
