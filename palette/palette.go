// Package palette implements an ordered, immutable set of named color
// entries with a stable index mapping and a memoized redmean nearest-color
// lookup.
package palette

import (
	"fmt"
	"sync"

	"github.com/gopanel/epd/color"
	"github.com/gopanel/epd/epderr"
)

// Entry is one named color slot in a Palette, at a fixed hardware index.
type Entry struct {
	Name  color.Name
	Color color.Color
}

// Palette is an ordered, frozen sequence of unique named color entries.
// Index 0..size-1 is the stable integer a Framebuffer bit-packs into a
// pixel position. The nearest-color memoization table is owned per
// instance, not shared globally, so distinct Palettes never cross-pollute
// their caches.
type Palette struct {
	entries []Entry
	index   map[color.Name]int

	mu    sync.Mutex
	cache map[uint32]int // packed 24-bit RGB -> nearest entry index
}

// New builds a Palette from an ordered list of color names, resolving each
// through the color registry. Fails if the list is empty, contains a
// duplicate, or names an unregistered color.
func New(names ...color.Name) (*Palette, error) {
	if len(names) == 0 {
		return nil, &epderr.InvalidArgumentError{
			Operation: "palette.New",
			Details:   "palette must have at least one entry",
		}
	}
	p := &Palette{
		index: make(map[color.Name]int, len(names)),
		cache: make(map[uint32]int),
	}
	for i, n := range names {
		if _, dup := p.index[n]; dup {
			return nil, &epderr.InvalidArgumentError{
				Operation: "palette.New",
				Details:   fmt.Sprintf("duplicate entry %q", n),
			}
		}
		c, err := color.Lookup(n)
		if err != nil {
			return nil, err
		}
		p.entries = append(p.entries, Entry{Name: n, Color: c})
		p.index[n] = i
	}
	return p, nil
}

// Size returns the number of entries in the palette.
func (p *Palette) Size() int { return len(p.entries) }

// IndexOf returns the hardware index of a named entry.
func (p *Palette) IndexOf(n color.Name) (int, error) {
	i, ok := p.index[n]
	if !ok {
		return 0, &epderr.NotFoundError{Kind: "palette entry", Name: n.String()}
	}
	return i, nil
}

// ColorAt returns the entry at a hardware index.
func (p *Palette) ColorAt(i int) (Entry, error) {
	if i < 0 || i >= len(p.entries) {
		return Entry{}, &epderr.NotFoundError{Kind: "palette index", Name: fmt.Sprintf("%d", i)}
	}
	return p.entries[i], nil
}

// Entries returns the palette's entries in index order. The returned slice
// is a copy; callers may not mutate the palette through it.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}
