package display

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// FontSize is the pixel size of the panel font. Go Mono at 10px gives a
// 6px advance, so a 128px line fits 21 characters.
const FontSize = 10

var (
	monoOnce sync.Once
	monoFace font.Face
	monoErr  error
)

// MonoFace returns the shared monospace face used for all panel text.
func MonoFace() (font.Face, error) {
	monoOnce.Do(func() {
		f, err := opentype.Parse(gomono.TTF)
		if err != nil {
			monoErr = NewBusError(DataFormatNotImplemented, "load font", err)
			return
		}
		monoFace, monoErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    FontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if monoErr != nil {
			monoErr = NewBusError(DataFormatNotImplemented, "load font", monoErr)
		}
	})
	return monoFace, monoErr
}

// Framebuffer is a 1-bit in-memory image laid out the way SSD1306 controllers
// expect it (vertical bytes, LSB on top).
type Framebuffer struct {
	img   *image1bit.VerticalLSB
	face  font.Face
	glyph int
	capH  int
}

// NewFramebuffer allocates a blank framebuffer of the given size.
func NewFramebuffer(size image.Point, face font.Face) *Framebuffer {
	glyph := 0
	if adv, ok := face.GlyphAdvance('M'); ok {
		glyph = adv.Round()
	}
	// Top and middle anchors use the cap box rather than the ascent.
	capH := face.Metrics().CapHeight.Ceil()
	if b, _, ok := face.GlyphBounds('M'); ok {
		capH = (-b.Min.Y).Ceil()
	}
	return &Framebuffer{
		img:   image1bit.NewVerticalLSB(image.Rect(0, 0, size.X, size.Y)),
		face:  face,
		glyph: glyph,
		capH:  capH,
	}
}

// Size returns the framebuffer dimensions.
func (f *Framebuffer) Size() image.Point {
	return f.img.Bounds().Size()
}

// CapHeight returns how many rows a capital letter covers above the baseline.
func (f *Framebuffer) CapHeight() int {
	return f.capH
}

// GlyphWidth returns the advance of one character.
func (f *Framebuffer) GlyphWidth() int {
	return f.glyph
}

// Image exposes the framebuffer for flushing.
func (f *Framebuffer) Image() *image1bit.VerticalLSB {
	return f.img
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	clear(f.img.Pix)
}

// DrawText renders text anchored at the given point. Glyphs that run past
// the edge are clipped; an anchor outside the surface is an error.
func (f *Framebuffer) DrawText(text string, at image.Point, baseline Baseline) error {
	bounds := f.img.Bounds()
	if !at.In(bounds) {
		return NewBusError(OutOfBounds, "draw text", fmt.Errorf("anchor %v outside %v", at, bounds))
	}

	y := at.Y
	switch baseline {
	case BaselineTop:
		y += f.capH
	case BaselineMiddle:
		y += f.capH / 2
	case BaselineBottom:
		y -= f.face.Metrics().Descent.Ceil()
	case BaselineAlphabetic:
	default:
		return NewBusError(InvalidFormat, "draw text", fmt.Errorf("unknown baseline %d", baseline))
	}

	d := font.Drawer{
		Dst:  f.img,
		Src:  image.NewUniform(image1bit.On),
		Face: f.face,
		Dot:  fixed.P(at.X, y),
	}
	d.DrawString(text)
	return nil
}

// DrawRect draws the outline of r, stroke pixels wide, inside r.
func (f *Framebuffer) DrawRect(r image.Rectangle, stroke int) error {
	if r.Empty() || stroke < 1 {
		return NewBusError(InvalidFormat, "draw rect", fmt.Errorf("rect %v stroke %d", r, stroke))
	}
	bounds := f.img.Bounds()
	if !r.In(bounds) {
		return NewBusError(OutOfBounds, "draw rect", fmt.Errorf("rect %v outside %v", r, bounds))
	}

	inner := r.Inset(stroke)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !image.Pt(x, y).In(inner) {
				f.img.SetBit(x, y, image1bit.On)
			}
		}
	}
	return nil
}
