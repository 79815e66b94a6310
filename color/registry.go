package color

import "github.com/gopanel/epd/epderr"

// Name identifies a registered color by a fixed, enumerated tag rather than
// a free-form string — string names are only used at the external boundary
// (hex parsing, palette construction from config).
type Name int

const (
	Black Name = iota
	White
	Red
	Yellow
	Green
	Blue
	Orange
	DarkGray
	LightGray
	Transparent
)

var names = map[Name]string{
	Black:       "black",
	White:       "white",
	Red:         "red",
	Yellow:      "yellow",
	Green:       "green",
	Blue:        "blue",
	Orange:      "orange",
	DarkGray:    "dark_gray",
	LightGray:   "light_gray",
	Transparent: "transparent",
}

var byString = func() map[string]Name {
	m := make(map[string]Name, len(names))
	for n, s := range names {
		m[s] = n
	}
	return m
}()

// String returns the registered name's canonical string form.
func (n Name) String() string {
	if s, ok := names[n]; ok {
		return s
	}
	return "unknown"
}

// registry holds the fixed RGBA value for every registered name.
var registry = map[Name]Color{
	Black:       Opaque(0, 0, 0),
	White:       Opaque(255, 255, 255),
	Red:         Opaque(255, 0, 0),
	Yellow:      Opaque(255, 255, 0),
	Green:       Opaque(0, 255, 0),
	Blue:        Opaque(0, 0, 255),
	Orange:      Opaque(255, 165, 0),
	DarkGray:    Opaque(85, 85, 85),
	LightGray:   Opaque(170, 170, 170),
	Transparent: New(0, 0, 0, 0),
}

// Lookup resolves a registered color by its enumerated Name.
func Lookup(n Name) (Color, error) {
	c, ok := registry[n]
	if !ok {
		return Color{}, &epderr.NotFoundError{Kind: "color", Name: n.String()}
	}
	return c, nil
}

// LookupString resolves a registered color by its canonical string name —
// only meant for the external config/CLI boundary, never for internal
// dispatch (internal code should carry the Name tag, not the string).
func LookupString(s string) (Color, error) {
	n, ok := byString[s]
	if !ok {
		return Color{}, &epderr.NotFoundError{Kind: "color", Name: s}
	}
	return Lookup(n)
}
