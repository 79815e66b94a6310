package raster

import (
	"math"

	"github.com/gopanel/epd/surface"
)

// DrawRect fills the rectangle [x,x+w-1] x [y,y+h-1] first (if fill is
// present), then strokes its border (if stroke is present). At least one
// of stroke/fill must be present.
func DrawRect(s surface.Surface, x, y, w, h int, stroke, fill Paint, strokeWidth int) (surface.Surface, error) {
	if err := requirePaint("raster.DrawRect", stroke, fill); err != nil {
		return s, err
	}
	if fill.Present {
		for row := y; row < y+h; row++ {
			setRow(s, row, x, x+w-1, fill.Value)
		}
	}
	if stroke.Present {
		corners := []Point{
			{x, y}, {x + w - 1, y}, {x + w - 1, y + h - 1}, {x, y + h - 1},
		}
		DrawPolyline(s, corners, true, stroke.Value, strokeWidth)
	}
	return s, nil
}

// DrawRoundedRect draws a rectangle whose corners are replaced by quarter
// circles of radius r (clamped to min(w,h)/2). Fill is the union of the
// two full-span interior strips plus four quarter-discs; stroke is four
// straight edges plus four quarter arcs. At least one of stroke/fill must
// be present.
func DrawRoundedRect(s surface.Surface, x, y, w, h, r int, stroke, fill Paint, strokeWidth int) (surface.Surface, error) {
	if err := requirePaint("raster.DrawRoundedRect", stroke, fill); err != nil {
		return s, err
	}
	if r > min(w, h)/2 {
		r = min(w, h) / 2
	}
	if r < 0 {
		r = 0
	}

	if fill.Present {
		fillRoundedRect(s, x, y, w, h, r, fill.Value)
	}
	if stroke.Present {
		strokeRoundedRect(s, x, y, w, h, r, stroke.Value, strokeWidth)
	}
	return s, nil
}

func fillRoundedRect(s surface.Surface, x, y, w, h, r int, v any) {
	if r == 0 {
		for row := y; row < y+h; row++ {
			setRow(s, row, x, x+w-1, v)
		}
		return
	}
	// Vertical strip spanning the full height, narrowed by r on each side.
	for row := y; row < y+h; row++ {
		setRow(s, row, x+r, x+w-1-r, v)
	}
	// Horizontal strip spanning the full width, narrowed by r top/bottom.
	for row := y + r; row < y+h-r; row++ {
		setRow(s, row, x, x+w-1, v)
	}
	fillDisc(s, x+r, y+r, r, v)
	fillDisc(s, x+w-1-r, y+r, r, v)
	fillDisc(s, x+r, y+h-1-r, r, v)
	fillDisc(s, x+w-1-r, y+h-1-r, r, v)
}

func strokeRoundedRect(s surface.Surface, x, y, w, h, r int, v any, strokeWidth int) {
	if r == 0 {
		_, _ = DrawRect(s, x, y, w, h, With(v), None(), strokeWidth)
		return
	}
	bresenhamBundle := func(x0, y0, x1, y1 int) {
		DrawLine(s, x0, y0, x1, y1, v, strokeWidth)
	}
	bresenhamBundle(x+r, y, x+w-1-r, y)             // top edge
	bresenhamBundle(x+r, y+h-1, x+w-1-r, y+h-1)     // bottom edge
	bresenhamBundle(x, y+r, x, y+h-1-r)             // left edge
	bresenhamBundle(x+w-1, y+r, x+w-1, y+h-1-r)     // right edge

	DrawArc(s, x+r, y+r, r, math.Pi/2, math.Pi, v, strokeWidth)
	DrawArc(s, x+w-1-r, y+r, r, 0, math.Pi/2, v, strokeWidth)
	DrawArc(s, x+w-1-r, y+h-1-r, r, 3*math.Pi/2, twoPi, v, strokeWidth)
	DrawArc(s, x+r, y+h-1-r, r, math.Pi, 3*math.Pi/2, v, strokeWidth)
}
