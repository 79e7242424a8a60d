package display

import (
	"errors"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

var errNotInitialized = errors.New("device not initialized")

// SSD1306 is a Surface backed by an SSD1306 OLED controller on I2C.
type SSD1306 struct {
	bus  string
	opts ssd1306.Opts
	fb   *Framebuffer

	closer i2c.BusCloser
	dev    *ssd1306.Dev
}

// NewSSD1306 prepares a display on the named I2C bus (e.g. "1").
// The bus is not opened until Init.
func NewSSD1306(bus string, size image.Point) (*SSD1306, error) {
	face, err := MonoFace()
	if err != nil {
		return nil, err
	}
	opts := ssd1306.DefaultOpts
	opts.W = size.X
	opts.H = size.Y
	return &SSD1306{
		bus:  bus,
		opts: opts,
		fb:   NewFramebuffer(size, face),
	}, nil
}

// Init loads the host drivers, opens the bus and configures the controller.
func (d *SSD1306) Init() error {
	if _, err := host.Init(); err != nil {
		return NewBusError(BusWrite, "init", err)
	}
	b, err := i2creg.Open(d.bus)
	if err != nil {
		return NewBusError(BusWrite, "open bus", err)
	}
	dev, err := ssd1306.NewI2C(b, &d.opts)
	if err != nil {
		_ = b.Close()
		return NewBusError(BusWrite, "init", err)
	}
	d.closer = b
	d.dev = dev
	return nil
}

func (d *SSD1306) Size() image.Point {
	return d.fb.Size()
}

func (d *SSD1306) GlyphWidth() int {
	return d.fb.GlyphWidth()
}

func (d *SSD1306) Clear() error {
	d.fb.Clear()
	return nil
}

func (d *SSD1306) DrawText(text string, at image.Point, baseline Baseline) error {
	return d.fb.DrawText(text, at, baseline)
}

func (d *SSD1306) DrawRect(r image.Rectangle, stroke int) error {
	return d.fb.DrawRect(r, stroke)
}

// Flush sends the whole framebuffer to the controller.
func (d *SSD1306) Flush() error {
	if d.dev == nil {
		return NewBusError(BusWrite, "flush", errNotInitialized)
	}
	img := d.fb.Image()
	if err := d.dev.Draw(img.Bounds(), img, image.Point{}); err != nil {
		return NewBusError(BusWrite, "flush", err)
	}
	return nil
}

// Close releases the I2C bus. The screen keeps its last frame.
func (d *SSD1306) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	d.dev = nil
	return err
}
