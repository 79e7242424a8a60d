// Package testing provides test doubles for the display package.
package testing

import (
	"fmt"
	"image"
	"sync"

	"github.com/rileyhilliard/envpanel/internal/display"
)

// Op names a Surface method.
type Op string

const (
	OpInit  Op = "init"
	OpClear Op = "clear"
	OpText  Op = "text"
	OpRect  Op = "rect"
	OpFlush Op = "flush"
)

// Call is one recorded Surface invocation.
type Call struct {
	Op       Op
	Text     string
	At       image.Point
	Baseline display.Baseline
	Rect     image.Rectangle
	Stroke   int
}

type failure struct {
	nth  int // 1-based call number of Op that fails; 0 means every call
	kind display.BusErrorKind
}

// Recorder is a display.Surface that records every call instead of drawing.
// It allows tests to make specific calls fail with a given bus error kind.
type Recorder struct {
	mu       sync.Mutex
	size     image.Point
	glyph    int
	calls    []Call
	counts   map[Op]int
	failures map[Op]failure
}

// NewRecorder returns a 128x64 recorder with a 6px glyph.
func NewRecorder() *Recorder {
	return NewRecorderSize(image.Pt(128, 64), 6)
}

// NewRecorderSize returns a recorder with the given geometry.
func NewRecorderSize(size image.Point, glyph int) *Recorder {
	return &Recorder{
		size:     size,
		glyph:    glyph,
		counts:   make(map[Op]int),
		failures: make(map[Op]failure),
	}
}

// FailOn makes every call of op fail with kind.
func (r *Recorder) FailOn(op Op, kind display.BusErrorKind) {
	r.FailOnNth(op, 0, kind)
}

// FailOnNth makes only the nth (1-based) call of op fail with kind.
func (r *Recorder) FailOnNth(op Op, nth int, kind display.BusErrorKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = failure{nth: nth, kind: kind}
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[c.Op]++
	if f, ok := r.failures[c.Op]; ok && (f.nth == 0 || f.nth == r.counts[c.Op]) {
		return display.NewBusError(f.kind, string(c.Op), fmt.Errorf("injected %s failure", c.Op))
	}
	r.calls = append(r.calls, c)
	return nil
}

func (r *Recorder) Init() error {
	return r.record(Call{Op: OpInit})
}

func (r *Recorder) Size() image.Point {
	return r.size
}

func (r *Recorder) GlyphWidth() int {
	return r.glyph
}

func (r *Recorder) Clear() error {
	return r.record(Call{Op: OpClear})
}

func (r *Recorder) DrawText(text string, at image.Point, baseline display.Baseline) error {
	return r.record(Call{Op: OpText, Text: text, At: at, Baseline: baseline})
}

func (r *Recorder) DrawRect(rect image.Rectangle, stroke int) error {
	return r.record(Call{Op: OpRect, Rect: rect, Stroke: stroke})
}

func (r *Recorder) Flush() error {
	return r.record(Call{Op: OpFlush})
}

// Calls returns a copy of the successful calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Attempts returns how many times op was invoked, failed calls included.
func (r *Recorder) Attempts(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[op]
}

// Count returns how many calls of op succeeded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the text of every successful DrawText call in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls() {
		if c.Op == OpText {
			out = append(out, c.Text)
		}
	}
	return out
}
