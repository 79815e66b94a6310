package surface

import (
	"fmt"

	"github.com/gopanel/epd/color"
	"github.com/gopanel/epd/epderr"
)

// ------------------------------------------------------------------------
// Canvas layout constants
// ------------------------------------------------------------------------
const bytesPerPixel = 4

// Canvas is a packed, row-major RGBA pixel store: width*height*4 bytes,
// 4-byte groups of {r,g,b,a}. A Canvas exclusively owns its buffer; Clone
// deep-copies it.
type Canvas struct {
	width, height int
	buf           []byte
}

// NewCanvas allocates a width x height Canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, &epderr.InvalidArgumentError{
			Operation: "surface.NewCanvas",
			Details:   fmt.Sprintf("dimensions must be positive, got %dx%d", width, height),
		}
	}
	c := &Canvas{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*bytesPerPixel),
	}
	c.Clear(bg)
	return c, nil
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *Canvas) offset(x, y int) int {
	return (y*c.width + x) * bytesPerPixel
}

// SetColor writes a Color at (x,y), silently clipping out-of-bounds.
func (c *Canvas) SetColor(x, y int, col color.Color) {
	if !c.InBounds(x, y) {
		return
	}
	col.PutRGBA(c.buf, c.offset(x, y))
}

// ColorAt reads the Color at (x,y); ok is false out of bounds.
func (c *Canvas) ColorAt(x, y int) (col color.Color, ok bool) {
	if !c.InBounds(x, y) {
		return color.Color{}, false
	}
	return color.AtRGBA(c.buf, c.offset(x, y)), true
}

// SetPixel implements Surface by asserting v to color.Color.
func (c *Canvas) SetPixel(x, y int, v any) {
	c.SetColor(x, y, v.(color.Color))
}

// GetPixel implements Surface.
func (c *Canvas) GetPixel(x, y int) (any, bool) {
	col, ok := c.ColorAt(x, y)
	if !ok {
		return nil, false
	}
	return col, true
}

// Clear overwrites the entire buffer with color's 4-byte stamp — a
// whole-buffer fast path in preference to the generic surface.Clear loop.
func (c *Canvas) Clear(col color.Color) {
	stamp := col.ToRGBABytes()
	for i := 0; i < len(c.buf); i += bytesPerPixel {
		copy(c.buf[i:i+bytesPerPixel], stamp[:])
	}
}

// Clone deep-copies the Canvas, including its buffer.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{width: c.width, height: c.height, buf: make([]byte, len(c.buf))}
	copy(out.buf, c.buf)
	return out
}

// LoadRGBABytes performs a clipped row-by-row copy of raw RGBA bytes (w x h,
// 4 bytes/pixel) into the rectangular destination region starting at (x,y).
func (c *Canvas) LoadRGBABytes(data []byte, w, h, x, y int) {
	for row := 0; row < h; row++ {
		dy := y + row
		if dy < 0 || dy >= c.height {
			continue
		}
		for col := 0; col < w; col++ {
			dx := x + col
			if dx < 0 || dx >= c.width {
				continue
			}
			srcOff := (row*w + col) * bytesPerPixel
			if srcOff+bytesPerPixel > len(data) {
				continue
			}
			dstOff := c.offset(dx, dy)
			copy(c.buf[dstOff:dstOff+bytesPerPixel], data[srcOff:srcOff+bytesPerPixel])
		}
	}
}

// RGBABytes returns the Canvas's packed buffer. The returned slice aliases
// the Canvas's storage; callers must not retain it across further mutation.
func (c *Canvas) RGBABytes() []byte {
	return c.buf
}
