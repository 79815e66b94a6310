// Package render turns a Canvas into one or two Framebuffers using a
// configured dither strategy.
package render

import (
	"github.com/gopanel/epd/color"
	"github.com/gopanel/epd/dither"
	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/framebuf"
	"github.com/gopanel/epd/pixfmt"
	"github.com/gopanel/epd/surface"
)

// Renderer renders Canvases into Framebuffers of a fixed pixel format
// using a fixed dither strategy.
type Renderer struct {
	format   *pixfmt.Format
	strategy dither.Strategy
}

// New builds a Renderer targeting format, quantizing with strategy.
func New(format *pixfmt.Format, strategy dither.Strategy) *Renderer {
	return &Renderer{format: format, strategy: strategy}
}

// Render quantizes canvas into into (allocating a fresh Framebuffer in
// the Renderer's format when into is nil). A supplied into must already
// match canvas's dimensions and the Renderer's format.
func (r *Renderer) Render(canvas *surface.Canvas, into *framebuf.Framebuffer) (*framebuf.Framebuffer, error) {
	if canvas == nil {
		return nil, &epderr.InvalidArgumentError{Operation: "render.Render", Details: "canvas must not be nil"}
	}
	if into == nil {
		fb, err := framebuf.New(canvas.Width(), canvas.Height(), r.format)
		if err != nil {
			return nil, err
		}
		into = fb
	} else if into.Width() != canvas.Width() || into.Height() != canvas.Height() {
		return nil, &epderr.InvalidArgumentError{
			Operation: "render.Render",
			Details:   "supplied framebuffer dimensions do not match the canvas",
		}
	} else if into.Format().Name != r.format.Name {
		return nil, &epderr.FormatMismatchError{Expected: r.format.Name.String(), Got: into.Format().Name.String()}
	}

	if err := dither.Apply(r.strategy, canvas, into); err != nil {
		return nil, err
	}
	return into, nil
}

// dualRoute maps a color4 palette entry to its (black, red) mono planes.
var dualRoute = map[color.Name][2]color.Name{
	color.Black:  {color.Black, color.White},
	color.White:  {color.White, color.White},
	color.Yellow: {color.White, color.Black},
	color.Red:    {color.White, color.Black},
}

// RenderDual quantizes canvas to a color4 framebuffer with the
// Renderer's strategy, then splits it into independent black and red
// mono-format planes via dualRoute. Only valid for a color4 Renderer.
func (r *Renderer) RenderDual(canvas *surface.Canvas) (black, red *framebuf.Framebuffer, err error) {
	if r.format.Name != pixfmt.Color4 {
		return nil, nil, &epderr.InvalidArgumentError{
			Operation: "render.RenderDual",
			Details:   "only valid for a color4 renderer",
		}
	}
	quantized, err := r.Render(canvas, nil)
	if err != nil {
		return nil, nil, err
	}

	monoFormat, err := pixfmt.Canonical(pixfmt.Mono)
	if err != nil {
		return nil, nil, err
	}
	black, err = framebuf.New(canvas.Width(), canvas.Height(), monoFormat)
	if err != nil {
		return nil, nil, err
	}
	red, err = framebuf.New(canvas.Width(), canvas.Height(), monoFormat)
	if err != nil {
		return nil, nil, err
	}

	for y := 0; y < canvas.Height(); y++ {
		for x := 0; x < canvas.Width(); x++ {
			name, _ := quantized.NameAt(x, y)
			route, ok := dualRoute[name]
			if !ok {
				continue
			}
			black.SetName(x, y, route[0])
			red.SetName(x, y, route[1])
		}
	}
	return black, red, nil
}
