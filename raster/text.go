package raster

import (
	"strings"

	"github.com/gopanel/epd/color"
	"github.com/gopanel/epd/font"
	"github.com/gopanel/epd/surface"
)

// Align selects how a wrapped line is positioned within an optional
// max-width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextOptions configures DrawText.
type TextOptions struct {
	Font        font.Font
	Fg          color.Color
	MaxWidth    int // 0 disables wrapping
	Align       Align
	LineSpacing float64 // multiplies ascent+descent; 0 means 1.0
}

// MeasureLine returns the summed advance width of s with no wrapping.
func MeasureLine(f font.Font, s string) (int, error) {
	width := 0
	for _, r := range s {
		g, err := f.Glyph(r)
		if err != nil {
			return 0, err
		}
		width += g.AdvanceX
	}
	return width, nil
}

// WrapText greedily breaks s into lines whose measured advance-sum width
// does not exceed maxWidth (a single overlong word still gets its own
// line). maxWidth <= 0 disables wrapping and returns a single line.
func WrapText(f font.Font, s string, maxWidth int) ([]string, error) {
	if maxWidth <= 0 {
		return []string{s}, nil
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}, nil
	}

	var lines []string
	line := words[0]
	lineWidth, err := MeasureLine(f, line)
	if err != nil {
		return nil, err
	}
	spaceWidth, err := MeasureLine(f, " ")
	if err != nil {
		return nil, err
	}

	for _, w := range words[1:] {
		wWidth, err := MeasureLine(f, w)
		if err != nil {
			return nil, err
		}
		candidate := lineWidth + spaceWidth + wWidth
		if candidate <= maxWidth {
			line += " " + w
			lineWidth = candidate
			continue
		}
		lines = append(lines, line)
		line = w
		lineWidth = wWidth
	}
	lines = append(lines, line)
	return lines, nil
}

func lineSpacingFactor(opts TextOptions) float64 {
	if opts.LineSpacing == 0 {
		return 1.0
	}
	return opts.LineSpacing
}

// DrawText word-wraps s (when opts.MaxWidth > 0), aligns each line, and
// composites it onto s at (x,y) — x,y is the top-left of the text block,
// not a baseline.
func DrawText(s surface.Surface, x, y int, text string, opts TextOptions) (surface.Surface, error) {
	lines, err := WrapText(opts.Font, text, opts.MaxWidth)
	if err != nil {
		return s, err
	}
	lineHeight := int(float64(opts.Font.Ascent()+opts.Font.Descent()) * lineSpacingFactor(opts))

	cursorY := y
	for _, line := range lines {
		lineWidth, err := MeasureLine(opts.Font, line)
		if err != nil {
			return s, err
		}
		originX := x
		if opts.MaxWidth > 0 {
			switch opts.Align {
			case AlignCenter:
				originX = x + (opts.MaxWidth-lineWidth)/2
			case AlignRight:
				originX = x + opts.MaxWidth - lineWidth
			}
		}
		if err := drawGlyphRun(s, originX, cursorY+opts.Font.Ascent(), line, opts.Font, opts.Fg); err != nil {
			return s, err
		}
		cursorY += lineHeight
	}
	return s, nil
}

// drawGlyphRun composites a single already-measured, already-aligned
// line of glyphs with its baseline at (x,baselineY).
func drawGlyphRun(s surface.Surface, x, baselineY int, line string, f font.Font, fg color.Color) error {
	cursor := x
	for _, r := range line {
		g, err := f.Glyph(r)
		if err != nil {
			return err
		}
		compositeGlyph(s, cursor+g.BearingX, baselineY-g.BearingY, g, fg)
		cursor += g.AdvanceX
	}
	return nil
}

func compositeGlyph(s surface.Surface, originX, originY int, g font.Glyph, fg color.Color) {
	for gy := 0; gy < g.Height; gy++ {
		for gx := 0; gx < g.Width; gx++ {
			alpha := g.Bitmap[gy*g.Width+gx]
			if alpha == 0 {
				continue
			}
			px, py := originX+gx, originY+gy
			if alpha == 255 {
				s.SetPixel(px, py, fg)
				continue
			}
			bgVal, ok := s.GetPixel(px, py)
			if !ok {
				continue
			}
			bg, ok := bgVal.(color.Color)
			if !ok {
				continue
			}
			blended := color.New(fg.R, fg.G, fg.B, alpha).Over(bg)
			s.SetPixel(px, py, blended)
		}
	}
}
