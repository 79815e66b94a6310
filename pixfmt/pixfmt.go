// Package pixfmt defines PixelFormat, the binding of a format name to its
// bit depth and palette, and the four canonical formats the driver table
// targets.
package pixfmt

import (
	"fmt"

	"github.com/gopanel/epd/color"
	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/palette"
)

// Name is a tagged enum for the canonical pixel formats — kept as a sum
// type rather than a free-form string so dispatch never round-trips
// through string comparisons internally ("dynamic dispatch by
// symbol -> tagged enums").
type Name int

const (
	Mono Name = iota
	Gray4
	Color4
	Color7
)

func (n Name) String() string {
	switch n {
	case Mono:
		return "mono"
	case Gray4:
		return "gray4"
	case Color4:
		return "color4"
	case Color7:
		return "color7"
	default:
		return "unknown"
	}
}

// Format binds a canonical name to its bit depth and palette.
type Format struct {
	Name        Name
	BitsPerPixel int
	Palette     *palette.Palette
}

// New validates and constructs a Format. bpp must be 1, 2, or 4 and must
// divide 8 evenly; the palette must fit within 2^bpp entries.
func New(name Name, bpp int, pal *palette.Palette) (*Format, error) {
	switch bpp {
	case 1, 2, 4:
	default:
		return nil, &epderr.InvalidArgumentError{
			Operation: "pixfmt.New",
			Details:   fmt.Sprintf("bits_per_pixel %d must be one of {1,2,4}", bpp),
		}
	}
	if 8%bpp != 0 {
		return nil, &epderr.InvalidArgumentError{
			Operation: "pixfmt.New",
			Details:   fmt.Sprintf("8 mod %d must be 0", bpp),
		}
	}
	if pal.Size() > (1 << uint(bpp)) {
		return nil, &epderr.InvalidArgumentError{
			Operation: "pixfmt.New",
			Details:   fmt.Sprintf("palette size %d exceeds 2^%d", pal.Size(), bpp),
		}
	}
	return &Format{Name: name, BitsPerPixel: bpp, Palette: pal}, nil
}

// RowStride returns ceil(width * bpp / 8).
func (f *Format) RowStride(width int) int {
	return (width*f.BitsPerPixel + 7) / 8
}

// BufferSize returns the total framebuffer byte count for width x height.
func (f *Format) BufferSize(width, height int) int {
	return f.RowStride(width) * height
}

// Canonical returns one of the four fixed canonical formats by name.
func Canonical(n Name) (*Format, error) {
	switch n {
	case Mono:
		return monoFormat()
	case Gray4:
		return gray4Format()
	case Color4:
		return color4Format()
	case Color7:
		return color7Format()
	default:
		return nil, &epderr.NotFoundError{Kind: "pixel format", Name: n.String()}
	}
}

func monoFormat() (*Format, error) {
	pal, err := palette.New(color.Black, color.White)
	if err != nil {
		return nil, err
	}
	return New(Mono, 1, pal)
}

func gray4Format() (*Format, error) {
	pal, err := palette.New(color.Black, color.DarkGray, color.LightGray, color.White)
	if err != nil {
		return nil, err
	}
	return New(Gray4, 2, pal)
}

func color4Format() (*Format, error) {
	pal, err := palette.New(color.Black, color.White, color.Yellow, color.Red)
	if err != nil {
		return nil, err
	}
	return New(Color4, 4, pal)
}

func color7Format() (*Format, error) {
	pal, err := palette.New(color.Black, color.White, color.Green, color.Blue, color.Red, color.Yellow, color.Orange)
	if err != nil {
		return nil, err
	}
	return New(Color7, 4, pal)
}
