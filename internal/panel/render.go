package panel

import (
	"image"

	"github.com/rileyhilliard/envpanel/internal/display"
	"github.com/rileyhilliard/envpanel/internal/errors"
)

// Line is one row of text on the main screen, anchored at its top-left.
type Line struct {
	Text string
	X, Y int
}

// CenterOffset returns the x position that centers n glyphs of width glyph
// on a surface width pixels wide, clamped to zero.
func CenterOffset(width, glyph, n int) int {
	return max(0, (width-glyph*n)/2)
}

// DrawLines clears s, draws every line and flushes once. The first failing
// call aborts the frame before anything is flushed.
func DrawLines(s display.Surface, lines []Line) error {
	if err := s.Clear(); err != nil {
		return errors.FromDisplay(err)
	}
	for _, l := range lines {
		if err := s.DrawText(l.Text, image.Pt(l.X, l.Y), display.BaselineTop); err != nil {
			return errors.FromDisplay(err)
		}
	}
	if err := s.Flush(); err != nil {
		return errors.FromDisplay(err)
	}
	return nil
}

// DrawBanner shows text centered inside a border around the whole surface.
func DrawBanner(s display.Surface, text string) error {
	size := s.Size()
	if err := s.Clear(); err != nil {
		return errors.FromDisplay(err)
	}
	if err := s.DrawRect(image.Rect(0, 0, size.X, size.Y), 1); err != nil {
		return errors.FromDisplay(err)
	}
	at := image.Pt(CenterOffset(size.X, s.GlyphWidth(), len([]rune(text))), size.Y/2)
	if err := s.DrawText(text, at, display.BaselineMiddle); err != nil {
		return errors.FromDisplay(err)
	}
	if err := s.Flush(); err != nil {
		return errors.FromDisplay(err)
	}
	return nil
}

// Blank clears the surface and commits the empty frame.
func Blank(s display.Surface) error {
	if err := s.Clear(); err != nil {
		return errors.FromDisplay(err)
	}
	if err := s.Flush(); err != nil {
		return errors.FromDisplay(err)
	}
	return nil
}
