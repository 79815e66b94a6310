// Package color implements the immutable RGBA color value used throughout
// the rendering pipeline, its named registry, and source-over compositing.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gopanel/epd/epderr"
)

// ------------------------------------------------------------------------
// Byte layout constants
// ------------------------------------------------------------------------
const (
	bytesPerColor = 4
	channelMin    = 0
	channelMax    = 255

	idxR = 0
	idxG = 1
	idxB = 2
	idxA = 3
)

// Color is an immutable four-channel 0..255 RGBA value. Equality is
// structural: two Colors with equal channels compare equal with ==.
type Color struct {
	R, G, B, A uint8
}

// New constructs a Color, rejecting nothing since uint8 is already
// range-limited; it exists for symmetry with NewChecked and readability at
// call sites.
func New(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NewChecked constructs a Color from possibly out-of-range ints, returning
// an InvalidArgumentError when any channel falls outside 0..255.
func NewChecked(r, g, b, a int) (Color, error) {
	for _, ch := range []int{r, g, b, a} {
		if ch < channelMin || ch > channelMax {
			return Color{}, &epderr.InvalidArgumentError{
				Operation: "color.NewChecked",
				Details:   fmt.Sprintf("channel %d out of range [0,255]", ch),
			}
		}
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// Opaque constructs a fully opaque Color from RGB channels.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: channelMax}
}

// ToRGBABytes packs the color into its 4-byte binary stamp, R,G,B,A order.
func (c Color) ToRGBABytes() [4]byte {
	return [4]byte{c.R, c.G, c.B, c.A}
}

// FromRGBABytes unpacks a 4-byte binary stamp into a Color.
func FromRGBABytes(b [4]byte) Color {
	return Color{R: b[idxR], G: b[idxG], B: b[idxB], A: b[idxA]}
}

// PutRGBA writes the color's 4-byte stamp into dst[off:off+4].
func (c Color) PutRGBA(dst []byte, off int) {
	dst[off+idxR] = c.R
	dst[off+idxG] = c.G
	dst[off+idxB] = c.B
	dst[off+idxA] = c.A
}

// AtRGBA reads a Color from src[off:off+4].
func AtRGBA(src []byte, off int) Color {
	return Color{R: src[off+idxR], G: src[off+idxG], B: src[off+idxB], A: src[off+idxA]}
}

// ParseHex accepts "#RRGGBB" or "#RGB" (each nibble expanded ×17), returning
// an opaque Color or an InvalidArgumentError.
func ParseHex(s string) (Color, error) {
	orig := s
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		r, err1 := strconv.ParseUint(s[0:1], 16, 8)
		g, err2 := strconv.ParseUint(s[1:2], 16, 8)
		b, err3 := strconv.ParseUint(s[2:3], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, hexErr(orig)
		}
		return Opaque(uint8(r*17), uint8(g*17), uint8(b*17)), nil
	case 6:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return Color{}, hexErr(orig)
		}
		return Opaque(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	default:
		return Color{}, hexErr(orig)
	}
}

func hexErr(s string) error {
	return &epderr.InvalidArgumentError{
		Operation: "color.ParseHex",
		Details:   fmt.Sprintf("%q is not a valid #RGB or #RRGGBB hex color", s),
	}
}
