// Package stdimg adapts the host's image-decoding stack (the standard
// library's format registry plus golang.org/x/image/draw and
// github.com/nfnt/resize) to the imgsrc.Source contract.
package stdimg

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
	ximagedraw "golang.org/x/image/draw"

	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/imgsrc"
)

// Source loads images via image.Decode (registered gif/jpeg/png
// decoders), resizes via nfnt/resize, and crops/normalizes via
// golang.org/x/image/draw.
type Source struct{}

func New() *Source { return &Source{} }

func (s *Source) Load(path string) (imgsrc.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return imgsrc.Image{}, &epderr.InitError{
			Operation: "stdimg.Load",
			Details:   path,
			Err:       err,
		}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return imgsrc.Image{}, &epderr.InitError{
			Operation: "stdimg.Load",
			Details:   fmt.Sprintf("decoding %s", path),
			Err:       err,
		}
	}
	return normalize(img), nil
}

// Resize scales img to width x height with a Lanczos3 kernel.
func (s *Source) Resize(img imgsrc.Image, width, height int) (imgsrc.Image, error) {
	if width <= 0 || height <= 0 {
		return imgsrc.Image{}, &epderr.InvalidArgumentError{
			Operation: "stdimg.Resize",
			Details:   fmt.Sprintf("target dimensions must be positive, got %dx%d", width, height),
		}
	}
	resized := resize.Resize(uint(width), uint(height), toRGBAImage(img), resize.Lanczos3)
	return normalize(resized), nil
}

// Crop extracts the width x height rectangle at (x,y), clipped to img's
// bounds.
func (s *Source) Crop(img imgsrc.Image, x, y, width, height int) (imgsrc.Image, error) {
	src := toRGBAImage(img)
	rect := image.Rect(x, y, x+width, y+height).Intersect(src.Bounds())
	if rect.Empty() {
		return imgsrc.Image{}, &epderr.InvalidArgumentError{
			Operation: "stdimg.Crop",
			Details:   "crop rectangle does not intersect the source image",
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	ximagedraw.Draw(out, out.Bounds(), src, rect.Min, ximagedraw.Src)
	return normalize(out), nil
}

// normalize expands any image.Image (1/2/3/4-band, paletted, or CMYK) to
// a packed RGBA buffer via golang.org/x/image/draw, which routes CMYK
// sources through color.CMYKToRGB on the way in.
func normalize(img image.Image) imgsrc.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	ximagedraw.Draw(out, out.Bounds(), img, bounds.Min, ximagedraw.Src)
	return imgsrc.Image{Pixels: out.Pix, Width: w, Height: h}
}

func toRGBAImage(img imgsrc.Image) *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pixels,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}
