package errors

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/rileyhilliard/envpanel/internal/display"
	"github.com/rileyhilliard/envpanel/internal/sysload"
)

// FromError converts any error into an *Error. Structured errors pass
// through untouched; everything else becomes ErrGeneric with the error text
// as the message.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var panelErr *Error
	if errors.As(err, &panelErr) {
		return panelErr
	}
	return &Error{
		Code:    ErrGeneric,
		Message: err.Error(),
		Cause:   err,
	}
}

// FromDisplay converts a display failure. Errors that are not a
// *display.BusError are labeled unknown.
func FromDisplay(err error) *Error {
	if err == nil {
		return nil
	}
	label := "unknown"
	var busErr *display.BusError
	if errors.As(err, &busErr) {
		label = displayLabel(busErr.Kind)
	}
	return &Error{
		Code:       ErrDisplay,
		Message:    "DisplayError: " + label,
		Suggestion: "Check the display wiring and that the I2C bus is enabled",
		Cause:      err,
	}
}

func displayLabel(kind display.BusErrorKind) string {
	switch kind {
	case display.BusWrite:
		return "BusWriteError"
	case display.ChipSelect:
		return "CSError"
	case display.DataCommand:
		return "DCError"
	case display.DataFormatNotImplemented:
		return "DataFormatNotImplemented"
	case display.InvalidFormat:
		return "InvalidFormatError"
	case display.OutOfBounds:
		return "OutOfBoundsError"
	case display.RegisterSelect:
		return "RSError"
	default:
		return "unknown"
	}
}

// FromProc converts a process-metrics failure. Errors that are not a
// *sysload.Error are labeled Other with their own text.
func FromProc(err error) *Error {
	if err == nil {
		return nil
	}
	var label string
	var procErr *sysload.Error
	if errors.As(err, &procErr) {
		label = procLabel(procErr)
	} else {
		label = fmt.Sprintf("Other: %v", err)
	}
	return &Error{
		Code:    ErrProc,
		Message: "ProcError: " + label,
		Cause:   err,
	}
}

func procLabel(e *sysload.Error) string {
	switch e.Kind {
	case sysload.KindIncomplete:
		return fmt.Sprintf("Incomplete: at %s", displayPath(e.Path))
	case sysload.KindInternal:
		return fmt.Sprintf("InternalError: %v", e.Err)
	case sysload.KindIO:
		return fmt.Sprintf("IO: %v at %s", e.Err, displayPath(e.Path))
	case sysload.KindNotFound:
		return fmt.Sprintf("NotFound: at %s", displayPath(e.Path))
	case sysload.KindOther:
		return fmt.Sprintf("Other: %v", e.Err)
	default:
		return "unknown"
	}
}

// displayPath renders "---" for a missing path and "???" for one that is
// not valid UTF-8.
func displayPath(p string) string {
	if p == "" {
		return "---"
	}
	if !utf8.ValidString(p) {
		return "???"
	}
	return p
}
