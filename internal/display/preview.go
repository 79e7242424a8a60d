package display

import (
	"image"
	"strings"
	"sync"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Preview is a Surface that draws into memory instead of a device. Each
// Flush publishes the frame as terminal text, two pixel rows per line.
type Preview struct {
	mu    sync.Mutex
	fb    *Framebuffer
	frame string
}

// NewPreview returns an in-memory surface of the given size.
func NewPreview(size image.Point) (*Preview, error) {
	face, err := MonoFace()
	if err != nil {
		return nil, err
	}
	return &Preview{fb: NewFramebuffer(size, face)}, nil
}

func (p *Preview) Init() error {
	return nil
}

func (p *Preview) Size() image.Point {
	return p.fb.Size()
}

func (p *Preview) GlyphWidth() int {
	return p.fb.GlyphWidth()
}

func (p *Preview) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fb.Clear()
	return nil
}

func (p *Preview) DrawText(text string, at image.Point, baseline Baseline) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fb.DrawText(text, at, baseline)
}

func (p *Preview) DrawRect(r image.Rectangle, stroke int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fb.DrawRect(r, stroke)
}

func (p *Preview) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame = HalfBlocks(p.fb.Image())
	return nil
}

// Frame returns the last flushed frame, empty before the first Flush.
func (p *Preview) Frame() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// HalfBlocks renders img with one character per pixel column and two pixel
// rows per line.
func HalfBlocks(img *image1bit.VerticalLSB) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.BitAt(x, y) == image1bit.On
			bottom := y+1 < b.Max.Y && img.BitAt(x, y+1) == image1bit.On
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
