// Package framebuf implements the format-aware, bit-packed pixel buffer
// that Waveshare controllers expect: 1/2/4 bits per pixel, most-significant
// pixel first within each byte, row stride rounded up to a whole byte.
package framebuf

import (
	"fmt"

	"github.com/gopanel/epd/color"
	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/pixfmt"
)

// defaultFill is the palette entry every canonical format is initialized
// to: mono starts all-white (all-ones), every other format starts
// all-black (all-zeros).
var defaultFill = map[pixfmt.Name]color.Name{
	pixfmt.Mono:   color.White,
	pixfmt.Gray4:  color.Black,
	pixfmt.Color4: color.Black,
	pixfmt.Color7: color.Black,
}

// Framebuffer is a bit-packed pixel buffer in a PixelFormat's native
// layout. It owns its buffer; Dup deep-copies it.
type Framebuffer struct {
	format        *pixfmt.Format
	width, height int
	rowBytes      int
	buf           []byte
}

// New allocates a width x height Framebuffer in the given format,
// initialized to the format's default fill entry.
func New(width, height int, format *pixfmt.Format) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &epderr.InvalidArgumentError{
			Operation: "framebuf.New",
			Details:   fmt.Sprintf("dimensions must be positive, got %dx%d", width, height),
		}
	}
	rowBytes := format.RowStride(width)
	fb := &Framebuffer{
		format:   format,
		width:    width,
		height:   height,
		rowBytes: rowBytes,
		buf:      make([]byte, rowBytes*height),
	}
	name, ok := defaultFill[format.Name]
	if !ok {
		name = color.Black
	}
	if err := fb.Clear(name); err != nil {
		return nil, err
	}
	return fb, nil
}

func (f *Framebuffer) Width() int           { return f.width }
func (f *Framebuffer) Height() int          { return f.height }
func (f *Framebuffer) RowBytes() int        { return f.rowBytes }
func (f *Framebuffer) Format() *pixfmt.Format { return f.format }
func (f *Framebuffer) Bytes() []byte        { return f.buf }

func (f *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// SetPixel implements surface.Surface; v must be a color.Name registered
// in the framebuffer's palette.
func (f *Framebuffer) SetPixel(x, y int, v any) {
	_ = f.SetName(x, y, v.(color.Name))
}

// GetPixel implements surface.Surface, returning a color.Name.
func (f *Framebuffer) GetPixel(x, y int) (any, bool) {
	n, ok := f.NameAt(x, y)
	if !ok {
		return nil, false
	}
	return n, true
}

// SetName writes the palette entry named n at (x,y), silently clipping
// out-of-bounds writes. Fails if n is not in this framebuffer's palette.
func (f *Framebuffer) SetName(x, y int, n color.Name) error {
	idx, err := f.format.Palette.IndexOf(n)
	if err != nil {
		return err
	}
	f.SetIndex(x, y, idx)
	return nil
}

// NameAt reads the palette entry name at (x,y); ok is false out of bounds.
func (f *Framebuffer) NameAt(x, y int) (name color.Name, ok bool) {
	idx, inBounds := f.IndexAt(x, y)
	if !inBounds {
		return 0, false
	}
	entry, err := f.format.Palette.ColorAt(idx)
	if err != nil {
		return 0, false
	}
	return entry.Name, true
}

// SetIndex writes a raw palette index at (x,y), silently clipping
// out-of-bounds writes and preserving every other pixel and padding bit.
func (f *Framebuffer) SetIndex(x, y, idx int) {
	if !f.InBounds(x, y) {
		return
	}
	bpp := f.format.BitsPerPixel
	perByte := 8 / bpp
	byteOff := y*f.rowBytes + x/perByte
	shift := uint(8 - bpp*(x%perByte+1))
	mask := byte((1<<uint(bpp))-1) << shift
	f.buf[byteOff] = f.buf[byteOff]&^mask | (byte(idx)<<shift)&mask
}

// IndexAt reads the raw palette index at (x,y); ok is false out of bounds.
func (f *Framebuffer) IndexAt(x, y int) (idx int, ok bool) {
	if !f.InBounds(x, y) {
		return 0, false
	}
	bpp := f.format.BitsPerPixel
	perByte := 8 / bpp
	byteOff := y*f.rowBytes + x/perByte
	shift := uint(8 - bpp*(x%perByte+1))
	mask := byte((1 << uint(bpp)) - 1)
	return int((f.buf[byteOff] >> shift) & mask), true
}

// Clear overwrites the whole buffer with the whole-byte fill pattern that
// encodes n at every pixel position, then re-zeroes the trailing padding
// bits of every row's last byte (those bits are never valid pixel
// positions and must stay zero regardless of the fill pattern).
func (f *Framebuffer) Clear(n color.Name) error {
	idx, err := f.format.Palette.IndexOf(n)
	if err != nil {
		return err
	}
	fill := replicate(idx, f.format.BitsPerPixel)
	for i := range f.buf {
		f.buf[i] = fill
	}
	f.zeroTrailingBits()
	return nil
}

func replicate(idx, bpp int) byte {
	v := byte(idx) & byte((1<<uint(bpp))-1)
	var out byte
	slots := 8 / bpp
	for i := 0; i < slots; i++ {
		out |= v << uint(i*bpp)
	}
	return out
}

func (f *Framebuffer) zeroTrailingBits() {
	bpp := f.format.BitsPerPixel
	validBits := f.width * bpp
	lastByteValidBits := validBits - (f.rowBytes-1)*8
	if lastByteValidBits >= 8 {
		return
	}
	mask := byte(0xFF << uint(8-lastByteValidBits))
	for row := 0; row < f.height; row++ {
		idx := row*f.rowBytes + f.rowBytes - 1
		f.buf[idx] &= mask
	}
}

// Dup deep-copies the Framebuffer, including its buffer.
func (f *Framebuffer) Dup() *Framebuffer {
	out := &Framebuffer{
		format:   f.format,
		width:    f.width,
		height:   f.height,
		rowBytes: f.rowBytes,
		buf:      make([]byte, len(f.buf)),
	}
	copy(out.buf, f.buf)
	return out
}
