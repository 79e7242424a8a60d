package display

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func newTestFramebuffer(t *testing.T) *Framebuffer {
	t.Helper()
	face, err := MonoFace()
	require.NoError(t, err)
	return NewFramebuffer(image.Pt(128, 64), face)
}

func litPixels(fb *Framebuffer) int {
	n := 0
	b := fb.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if fb.Image().BitAt(x, y) == image1bit.On {
				n++
			}
		}
	}
	return n
}

func TestFramebuffer_Geometry(t *testing.T) {
	fb := newTestFramebuffer(t)

	assert.Equal(t, image.Pt(128, 64), fb.Size())
	assert.Equal(t, 6, fb.GlyphWidth())
}

func TestFramebuffer_DrawTextAndClear(t *testing.T) {
	fb := newTestFramebuffer(t)

	require.NoError(t, fb.DrawText("Hello", image.Pt(1, 1), BaselineTop))
	assert.Positive(t, litPixels(fb))

	fb.Clear()
	assert.Zero(t, litPixels(fb))
}

// litRows returns the first and last rows holding a lit pixel, or -1, -1.
func litRows(fb *Framebuffer) (first, last int) {
	first, last = -1, -1
	b := fb.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if fb.Image().BitAt(x, y) == image1bit.On {
				if first < 0 {
					first = y
				}
				last = y
				break
			}
		}
	}
	return first, last
}

func TestFramebuffer_BaselineTopAnchorsCapitals(t *testing.T) {
	face, err := MonoFace()
	require.NoError(t, err)
	fb := NewFramebuffer(image.Pt(128, 80), face)

	assert.GreaterOrEqual(t, fb.CapHeight(), 5)
	assert.Less(t, fb.CapHeight(), FontSize)

	require.NoError(t, fb.DrawText("HLM", image.Pt(1, 20), BaselineTop))

	first, last := litRows(fb)
	assert.GreaterOrEqual(t, first, 20, "glyphs start at the anchor")
	assert.Less(t, last, 20+fb.CapHeight(), "capitals end on the baseline")
}

func TestFramebuffer_BaselineMiddleCentersCapitals(t *testing.T) {
	fb := newTestFramebuffer(t)

	require.NoError(t, fb.DrawText("HLM", image.Pt(1, 32), BaselineMiddle))

	first, last := litRows(fb)
	assert.InDelta(t, 32, float64(first+last+1)/2, 1)
}

func TestFramebuffer_DrawTextErrors(t *testing.T) {
	fb := newTestFramebuffer(t)

	tests := []struct {
		name     string
		at       image.Point
		baseline Baseline
		kind     BusErrorKind
	}{
		{"anchor right of surface", image.Pt(128, 0), BaselineTop, OutOfBounds},
		{"anchor below surface", image.Pt(0, 64), BaselineTop, OutOfBounds},
		{"negative anchor", image.Pt(-1, 10), BaselineTop, OutOfBounds},
		{"unknown baseline", image.Pt(0, 0), Baseline(42), InvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fb.DrawText("x", tt.at, tt.baseline)
			var be *BusError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.kind, be.Kind)
		})
	}
}

func TestFramebuffer_DrawRectOutline(t *testing.T) {
	fb := newTestFramebuffer(t)

	require.NoError(t, fb.DrawRect(image.Rect(0, 0, 128, 64), 1))

	img := fb.Image()
	assert.Equal(t, image1bit.On, img.BitAt(0, 0))
	assert.Equal(t, image1bit.On, img.BitAt(127, 63))
	assert.Equal(t, image1bit.On, img.BitAt(64, 0))
	assert.Equal(t, image1bit.On, img.BitAt(0, 32))
	assert.Equal(t, image1bit.Off, img.BitAt(64, 32))
	assert.Equal(t, 2*128+2*62, litPixels(fb))
}

func TestFramebuffer_DrawRectErrors(t *testing.T) {
	fb := newTestFramebuffer(t)

	tests := []struct {
		name   string
		rect   image.Rectangle
		stroke int
		kind   BusErrorKind
	}{
		{"empty rect", image.Rect(5, 5, 5, 10), 1, InvalidFormat},
		{"zero stroke", image.Rect(0, 0, 10, 10), 0, InvalidFormat},
		{"exceeds surface", image.Rect(0, 0, 129, 64), 1, OutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fb.DrawRect(tt.rect, tt.stroke)
			var be *BusError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.kind, be.Kind)
		})
	}
}

func TestBusError(t *testing.T) {
	cause := errors.New("i2c: nack")
	err := NewBusError(BusWrite, "flush", cause)

	assert.Equal(t, "display flush: bus write: i2c: nack", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "display clear: out of bounds", NewBusError(OutOfBounds, "clear", nil).Error())
	assert.Equal(t, "unknown", BusErrorKind(99).String())
}

func TestSSD1306_FlushBeforeInit(t *testing.T) {
	d, err := NewSSD1306("1", image.Pt(128, 64))
	require.NoError(t, err)

	err = d.Flush()
	var be *BusError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, BusWrite, be.Kind)
	assert.NoError(t, d.Close())
}
