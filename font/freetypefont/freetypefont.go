// Package freetypefont adapts github.com/golang/freetype (TrueType
// parsing and rasterization) to the font.Font contract.
package freetypefont

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	epdfont "github.com/gopanel/epd/font"
	"github.com/gopanel/epd/epderr"
)

// Font rasterizes a parsed TrueType font at a fixed point size via
// golang.org/x/image/font.Face.
type Font struct {
	face font.Face
}

// New parses raw TrueType bytes and builds a Font at the given point size.
func New(ttf []byte, size float64) (*Font, error) {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, &epderr.InitError{
			Operation: "freetypefont.New",
			Details:   "parsing TrueType data",
			Err:       err,
		}
	}
	face := truetype.NewFace(parsed, &truetype.Options{Size: size})
	return &Font{face: face}, nil
}

func fixedToInt(v fixed.Int26_6) int { return int(v >> 6) }

func (f *Font) Ascent() int     { return fixedToInt(f.face.Metrics().Ascent) }
func (f *Font) Descent() int    { return fixedToInt(f.face.Metrics().Descent) }
func (f *Font) LineHeight() int { return fixedToInt(f.face.Metrics().Height) }

// Glyph rasterizes r into an alpha-stamp bitmap, reading the mask image
// golang.org/x/image/font.Face.Glyph produces channel-by-channel.
func (f *Font) Glyph(r rune) (epdfont.Glyph, error) {
	dr, mask, _, advance, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return epdfont.Glyph{}, &epderr.NotFoundError{
			Kind: "glyph",
			Name: fmt.Sprintf("%q", r),
		}
	}
	w, h := dr.Dx(), dr.Dy()
	bitmap := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := mask.At(dr.Min.X+x, dr.Min.Y+y).RGBA()
			bitmap[y*w+x] = byte(a >> 8)
		}
	}
	return epdfont.Glyph{
		Bitmap:   bitmap,
		Width:    w,
		Height:   h,
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
		AdvanceX: fixedToInt(advance),
	}, nil
}
