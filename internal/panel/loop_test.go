package panel

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/envpanel/internal/display"
	displaytest "github.com/rileyhilliard/envpanel/internal/display/testing"
	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/rileyhilliard/envpanel/internal/logger"
	"github.com/rileyhilliard/envpanel/internal/sensor"
	"github.com/rileyhilliard/envpanel/internal/sysload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSensor struct {
	reading sensor.Reading
	err     error
	calls   int
}

func (s *stubSensor) Temperature() (float32, error) {
	s.calls++
	return s.reading.TemperatureC, s.err
}

func (s *stubSensor) Humidity() (float32, error) {
	s.calls++
	return s.reading.HumidityPct, s.err
}

func (s *stubSensor) Pressure() (float32, error) {
	s.calls++
	return s.reading.PressureHPa, s.err
}

type stubLoad struct {
	load sysload.LoadAverage
	err  error
}

func (s *stubLoad) LoadAverage() (sysload.LoadAverage, error) {
	return s.load, s.err
}

type recordingObserver struct {
	mu      sync.Mutex
	samples []sensor.Reading
	renders int
}

func (o *recordingObserver) ObserveSample(r sensor.Reading, _ sysload.LoadAverage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.samples = append(o.samples, r)
}

func (o *recordingObserver) ObserveRender(time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.renders++
}

var fixedNow = time.Date(2024, 3, 9, 7, 5, 2, 0, time.Local)

type fixture struct {
	rec      *displaytest.Recorder
	sensor   *stubSensor
	load     *stubLoad
	observer *recordingObserver
	log      *logger.BufferLogger
	slept    []time.Duration
}

func newFixture() *fixture {
	return &fixture{
		rec:      displaytest.NewRecorder(),
		sensor:   &stubSensor{reading: sensor.Reading{TemperatureC: 21.5, HumidityPct: 47.2, PressureHPa: 1013.0}},
		load:     &stubLoad{load: sysload.LoadAverage{One: 0.10, Five: 0.20, Fifteen: 0.30}},
		observer: &recordingObserver{},
		log:      logger.NewBufferLogger(),
	}
}

// loop builds a Loop with a frozen clock and a shutdown that is already
// pending, so Running performs exactly one render.
func (f *fixture) loop(opts ...Option) *Loop {
	base := []Option{
		WithLogger(f.log),
		WithObserver(f.observer),
		WithAddressLookup(func() (string, error) { return "192.168.1.20", nil }),
		WithClock(
			func() time.Time { return fixedNow },
			func(d time.Duration) { f.slept = append(f.slept, d) },
		),
		WithShutdown(func() <-chan struct{} {
			ch := make(chan struct{}, 1)
			ch <- struct{}{}
			return ch
		}),
	}
	return New(f.rec, f.sensor, f.load, append(base, opts...)...)
}

func TestRenderOnce(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.loop().RenderOnce())

	assert.Equal(t, []string{
		"2024/03/09 07:05:02",
		"IP: 192.168.1.20",
		"Temperature: 21.50C",
		"Humidity: 47.20%RH",
		"Pressure: 1013.00hPa",
		"Load: 0.10 0.20 0.30",
	}, f.rec.Texts())
	assert.Equal(t, 1, f.rec.Count(displaytest.OpClear))
	assert.Equal(t, 1, f.rec.Count(displaytest.OpFlush))
	assert.Equal(t, 1, f.observer.renders)
	assert.Equal(t, []sensor.Reading{f.sensor.reading}, f.observer.samples)
}

func TestRenderOnce_AddressFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	l := f.loop(WithAddressLookup(func() (string, error) {
		return "", fmt.Errorf("network unreachable")
	}))

	require.NoError(t, l.RenderOnce())

	texts := f.rec.Texts()
	require.Len(t, texts, 6)
	assert.Equal(t, "IP: ???", texts[1])
	assert.True(t, f.log.Contains("debug", "network unreachable"))
}

func TestRenderOnce_SensorFailure(t *testing.T) {
	f := newFixture()
	f.sensor.err = errors.New(errors.ErrIO, "cannot read in_temp_input", "")

	err := f.loop().RenderOnce()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrIO))
	assert.Equal(t, 1, f.sensor.calls, "sampling stops at the first failure")
	assert.Zero(t, f.rec.Attempts(displaytest.OpClear), "nothing is drawn")
	assert.Zero(t, f.observer.renders)
}

func TestRenderOnce_LoadFailure(t *testing.T) {
	f := newFixture()
	f.load.err = &sysload.Error{Kind: sysload.KindNotFound, Path: "/proc/loadavg"}

	err := f.loop().RenderOnce()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrProc))
	assert.Equal(t, "ProcError: NotFound: at /proc/loadavg", errors.FromError(err).Message)
	assert.Zero(t, f.rec.Attempts(displaytest.OpClear))
}

func TestRenderOnce_DisplayFailure(t *testing.T) {
	f := newFixture()
	f.rec.FailOnNth(displaytest.OpText, 3, display.BusWrite)

	err := f.loop().RenderOnce()

	require.Error(t, err)
	assert.Equal(t, "DisplayError: BusWriteError", errors.FromError(err).Message)
	assert.Equal(t, 3, f.rec.Attempts(displaytest.OpText))
	assert.Zero(t, f.rec.Attempts(displaytest.OpFlush))
	assert.Zero(t, f.observer.renders)
}

func TestRun_Lifecycle(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.loop().Run())

	calls := f.rec.Calls()
	ops := make([]displaytest.Op, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	assert.Equal(t, []displaytest.Op{
		displaytest.OpInit,
		// welcome
		displaytest.OpClear, displaytest.OpRect, displaytest.OpText, displaytest.OpFlush,
		// one render
		displaytest.OpClear,
		displaytest.OpText, displaytest.OpText, displaytest.OpText,
		displaytest.OpText, displaytest.OpText, displaytest.OpText,
		displaytest.OpFlush,
		// goodbye
		displaytest.OpClear, displaytest.OpRect, displaytest.OpText, displaytest.OpFlush,
		// blank
		displaytest.OpClear, displaytest.OpFlush,
	}, ops)

	texts := f.rec.Texts()
	assert.Equal(t, "Welcome", texts[0])
	assert.Equal(t, "Goodbye", texts[len(texts)-1])
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, f.slept)
	assert.True(t, f.log.Contains("info", "shutdown requested"))
}

func TestRun_CustomBannersAndTiming(t *testing.T) {
	f := newFixture()
	l := f.loop(
		WithBanners(Banners{Welcome: "Hi", Goodbye: "Bye"}),
		WithTiming(Timing{Tick: time.Millisecond, RenderInterval: time.Second, BannerDwell: 2 * time.Second}),
	)

	require.NoError(t, l.Run())

	texts := f.rec.Texts()
	assert.Equal(t, "Hi", texts[0])
	assert.Equal(t, "Bye", texts[len(texts)-1])
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, f.slept)
}

func TestRun_ClosedShutdownChannel(t *testing.T) {
	f := newFixture()
	l := f.loop(WithShutdown(func() <-chan struct{} {
		ch := make(chan struct{})
		close(ch)
		return ch
	}))

	require.NoError(t, l.Run())

	texts := f.rec.Texts()
	assert.Equal(t, "Goodbye", texts[len(texts)-1])
	assert.Equal(t, 1, f.observer.renders)
}

func TestRun_InitFailureIsFatal(t *testing.T) {
	f := newFixture()
	f.rec.FailOn(displaytest.OpInit, display.BusWrite)

	err := f.loop().Run()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrDisplay))
	assert.Empty(t, f.rec.Calls())
	assert.Empty(t, f.slept)
}

func TestRun_RenderFailureSkipsGoodbye(t *testing.T) {
	f := newFixture()
	f.load.err = &sysload.Error{Kind: sysload.KindIO, Path: "/proc/loadavg", Err: fmt.Errorf("read error")}

	err := f.loop().Run()

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrProc))
	assert.Equal(t, []string{"Welcome"}, f.rec.Texts())
	assert.Len(t, f.slept, 1)
	assert.True(t, f.log.Contains("debug", "render cycle failed"))
	assert.False(t, f.log.HasLevel("error"), "the caller reports the failure")
}

func TestRun_ShutdownWhileRunning(t *testing.T) {
	f := newFixture()
	shutdown := make(chan struct{}, 1)
	l := New(f.rec, f.sensor, f.load,
		WithLogger(logger.Noop()),
		WithObserver(f.observer),
		WithAddressLookup(func() (string, error) { return "10.0.0.2", nil }),
		WithTiming(Timing{Tick: time.Millisecond, RenderInterval: 5 * time.Millisecond}),
		WithShutdown(func() <-chan struct{} { return shutdown }),
	)

	done := make(chan error, 1)
	go func() { done <- l.Run() }()

	time.Sleep(100 * time.Millisecond)
	shutdown <- struct{}{}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after shutdown")
	}

	f.observer.mu.Lock()
	renders := f.observer.renders
	f.observer.mu.Unlock()
	assert.GreaterOrEqual(t, renders, 2, "renders repeat on the render interval")
	assert.Less(t, renders, 100, "renders are throttled to the render interval, not the tick")

	texts := f.rec.Texts()
	assert.Equal(t, "Goodbye", texts[len(texts)-1])
	assert.Equal(t, 2, f.rec.Count(displaytest.OpRect), "one welcome and one goodbye banner")
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, Timing{Tick: time.Millisecond, RenderInterval: 200 * time.Millisecond, BannerDwell: 5 * time.Second}, DefaultTiming())
	assert.Equal(t, Banners{Welcome: "Welcome", Goodbye: "Goodbye"}, DefaultBanners())
}
