// Package display drives the panel's monochrome bitmap screen.
//
// Callers draw into an in-memory framebuffer (Clear, DrawText, DrawRect)
// and commit it to the device with Flush. Nothing reaches the glass until
// Flush succeeds, so a failed draw sequence never shows a partial frame.
package display

import (
	"fmt"
	"image"
)

// Baseline selects which part of a text line the anchor point refers to.
type Baseline int

const (
	// BaselineTop anchors the top of capital letters.
	BaselineTop Baseline = iota
	// BaselineMiddle anchors the vertical middle of capital letters.
	BaselineMiddle
	// BaselineBottom anchors the bottom of the glyph cell, descenders included.
	BaselineBottom
	// BaselineAlphabetic anchors the font baseline.
	BaselineAlphabetic
)

// Surface is a framebuffer-backed bitmap display.
type Surface interface {
	// Init prepares the device. It must succeed before any other call.
	Init() error
	// Size returns the surface dimensions in pixels.
	Size() image.Point
	// GlyphWidth returns the advance of one character of the monospace font.
	GlyphWidth() int
	// Clear blanks the framebuffer.
	Clear() error
	// DrawText renders text with the given point as the left edge of the chosen baseline.
	DrawText(text string, at image.Point, baseline Baseline) error
	// DrawRect draws a rectangle outline with the given stroke width.
	DrawRect(r image.Rectangle, stroke int) error
	// Flush commits the framebuffer to the device.
	Flush() error
}

// BusErrorKind classifies a display failure.
type BusErrorKind int

const (
	// BusWrite means a transfer on the display bus failed.
	BusWrite BusErrorKind = iota + 1
	// ChipSelect means the chip-select line could not be driven.
	ChipSelect
	// DataCommand means the data/command line could not be driven.
	DataCommand
	// DataFormatNotImplemented means the device does not support the pixel format.
	DataFormatNotImplemented
	// InvalidFormat means the supplied data did not match the expected format.
	InvalidFormat
	// OutOfBounds means a draw call addressed pixels outside the surface.
	OutOfBounds
	// RegisterSelect means the register-select line could not be driven.
	RegisterSelect
)

func (k BusErrorKind) String() string {
	switch k {
	case BusWrite:
		return "bus write"
	case ChipSelect:
		return "chip select"
	case DataCommand:
		return "data/command"
	case DataFormatNotImplemented:
		return "data format not implemented"
	case InvalidFormat:
		return "invalid format"
	case OutOfBounds:
		return "out of bounds"
	case RegisterSelect:
		return "register select"
	default:
		return "unknown"
	}
}

// BusError is returned by every Surface implementation in this package.
type BusError struct {
	Kind BusErrorKind
	Op   string
	Err  error
}

// NewBusError builds a BusError for the given operation.
func NewBusError(kind BusErrorKind, op string, err error) *BusError {
	return &BusError{Kind: kind, Op: op, Err: err}
}

func (e *BusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("display %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("display %s: %s", e.Op, e.Kind)
}

// Unwrap returns the underlying driver error.
func (e *BusError) Unwrap() error {
	return e.Err
}
