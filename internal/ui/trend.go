package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultTrendSize is how many temperature samples watch keeps.
const DefaultTrendSize = 60

// Sparkline block characters representing 8 vertical levels (lowest to highest).
var sparklineBlocks = []rune("▁▂▃▄▅▆▇█")

// Trend is a fixed-size circular buffer of recent readings.
type Trend struct {
	data  []float64
	head  int
	count int
}

// NewTrend creates a trend holding at most size values.
func NewTrend(size int) *Trend {
	if size <= 0 {
		size = DefaultTrendSize
	}
	return &Trend{data: make([]float64, size)}
}

// Push adds a value, overwriting the oldest once full.
func (t *Trend) Push(v float64) {
	t.data[t.head] = v
	t.head = (t.head + 1) % len(t.data)
	if t.count < len(t.data) {
		t.count++
	}
}

// Len returns how many values are stored.
func (t *Trend) Len() int {
	return t.count
}

// Last returns up to n values in chronological order (oldest first).
func (t *Trend) Last(n int) []float64 {
	if n <= 0 || t.count == 0 {
		return nil
	}
	if n > t.count {
		n = t.count
	}

	size := len(t.data)
	start := (t.head - n + size) % size
	out := make([]float64, n)
	for i := range out {
		out[i] = t.data[(start+i)%size]
	}
	return out
}

// RenderSparkline draws the most recent width values scaled between their
// own min and max. Rising series are yellow, falling ones cyan, flat green.
func RenderSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}

	var sb strings.Builder
	sb.Grow(len(data) * 3)

	levels := len(sparklineBlocks)
	span := maxVal - minVal
	for _, v := range data {
		level := levels / 2
		if span > 0 {
			level = int((v - minVal) / span * float64(levels-1))
			level = max(0, min(level, levels-1))
		}
		sb.WriteRune(sparklineBlocks[level])
	}

	return lipgloss.NewStyle().Foreground(directionColor(data)).Render(sb.String())
}

func directionColor(data []float64) lipgloss.Color {
	first, last := data[0], data[len(data)-1]
	switch {
	case last > first:
		return ColorWarning
	case last < first:
		return ColorInfo
	default:
		return ColorSuccess
	}
}
