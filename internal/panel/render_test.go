package panel

import (
	"image"
	"testing"

	"github.com/rileyhilliard/envpanel/internal/display"
	displaytest "github.com/rileyhilliard/envpanel/internal/display/testing"
	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		name  string
		width int
		glyph int
		n     int
		want  int
	}{
		{"welcome banner", 128, 6, 7, 43},
		{"goodbye banner", 128, 6, 7, 43},
		{"exact fit", 128, 8, 16, 0},
		{"longer than surface", 128, 6, 30, 0},
		{"empty text", 128, 6, 0, 64},
		{"odd remainder rounds down", 11, 2, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CenterOffset(tt.width, tt.glyph, tt.n))
		})
	}
}

func TestDrawLines(t *testing.T) {
	rec := displaytest.NewRecorder()
	lines := []Line{
		{Text: "first", X: 1, Y: 1},
		{Text: "second", X: 1, Y: 12},
	}

	require.NoError(t, DrawLines(rec, lines))

	calls := rec.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, displaytest.OpClear, calls[0].Op)
	assert.Equal(t, displaytest.Call{Op: displaytest.OpText, Text: "first", At: image.Pt(1, 1), Baseline: display.BaselineTop}, calls[1])
	assert.Equal(t, displaytest.Call{Op: displaytest.OpText, Text: "second", At: image.Pt(1, 12), Baseline: display.BaselineTop}, calls[2])
	assert.Equal(t, displaytest.OpFlush, calls[3].Op)
}

func TestDrawLines_FailureStopsFrame(t *testing.T) {
	tests := []struct {
		name      string
		op        displaytest.Op
		nth       int
		kind      display.BusErrorKind
		label     string
		wantTexts int
	}{
		{"clear fails", displaytest.OpClear, 1, display.BusWrite, "DisplayError: BusWriteError", 0},
		{"second text fails", displaytest.OpText, 2, display.OutOfBounds, "DisplayError: OutOfBoundsError", 2},
		{"flush fails", displaytest.OpFlush, 1, display.DataCommand, "DisplayError: DCError", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := displaytest.NewRecorder()
			rec.FailOnNth(tt.op, tt.nth, tt.kind)

			err := DrawLines(rec, []Line{{Text: "a"}, {Text: "b"}, {Text: "c"}})

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrDisplay))
			assert.Equal(t, tt.label, errors.FromError(err).Message)
			assert.Equal(t, tt.wantTexts, rec.Attempts(displaytest.OpText))
			assert.Zero(t, rec.Count(displaytest.OpFlush))
		})
	}
}

func TestDrawBanner(t *testing.T) {
	rec := displaytest.NewRecorder()

	require.NoError(t, DrawBanner(rec, "Welcome"))

	calls := rec.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, displaytest.OpClear, calls[0].Op)
	assert.Equal(t, displaytest.Call{Op: displaytest.OpRect, Rect: image.Rect(0, 0, 128, 64), Stroke: 1}, calls[1])
	assert.Equal(t, displaytest.Call{Op: displaytest.OpText, Text: "Welcome", At: image.Pt(43, 32), Baseline: display.BaselineMiddle}, calls[2])
	assert.Equal(t, displaytest.OpFlush, calls[3].Op)
}

func TestDrawBanner_RectFailure(t *testing.T) {
	rec := displaytest.NewRecorder()
	rec.FailOn(displaytest.OpRect, display.InvalidFormat)

	err := DrawBanner(rec, "Goodbye")

	require.Error(t, err)
	assert.Equal(t, "DisplayError: InvalidFormatError", errors.FromError(err).Message)
	assert.Zero(t, rec.Attempts(displaytest.OpText))
	assert.Zero(t, rec.Attempts(displaytest.OpFlush))
}

func TestBlank(t *testing.T) {
	rec := displaytest.NewRecorder()

	require.NoError(t, Blank(rec))

	assert.Equal(t, 1, rec.Count(displaytest.OpClear))
	assert.Equal(t, 1, rec.Count(displaytest.OpFlush))
	assert.Empty(t, rec.Texts())
}
