package panel

import (
	"os"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/envpanel/internal/display"
	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/rileyhilliard/envpanel/internal/logger"
	"github.com/rileyhilliard/envpanel/internal/sensor"
	"github.com/rileyhilliard/envpanel/internal/sysload"
)

// Timing holds the loop's fixed periods.
type Timing struct {
	// Tick is how often the shutdown channel is polled.
	Tick time.Duration
	// RenderInterval is the minimum time between two render cycles.
	RenderInterval time.Duration
	// BannerDwell is how long the welcome and goodbye banners stay up.
	BannerDwell time.Duration
}

// DefaultTiming returns the standard panel timing.
func DefaultTiming() Timing {
	return Timing{
		Tick:           time.Millisecond,
		RenderInterval: 200 * time.Millisecond,
		BannerDwell:    5 * time.Second,
	}
}

// Banners holds the startup and shutdown messages.
type Banners struct {
	Welcome string
	Goodbye string
}

// DefaultBanners returns the standard banner texts.
func DefaultBanners() Banners {
	return Banners{Welcome: "Welcome", Goodbye: "Goodbye"}
}

// LoadReader provides host load averages.
type LoadReader interface {
	LoadAverage() (sysload.LoadAverage, error)
}

// Observer is notified of every sample and completed render.
type Observer interface {
	ObserveSample(sensor.Reading, sysload.LoadAverage)
	ObserveRender(time.Time)
}

type noopObserver struct{}

func (noopObserver) ObserveSample(sensor.Reading, sysload.LoadAverage) {}
func (noopObserver) ObserveRender(time.Time)                         {}

// Loop owns the display for the lifetime of the process.
type Loop struct {
	surface  display.Surface
	sensor   sensor.Reader
	load     LoadReader
	address  func() (string, error)
	timing   Timing
	banners  Banners
	observer Observer
	log      logger.Logger
	now      func() time.Time
	sleep    func(time.Duration)
	shutdown func() <-chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithTiming overrides the tick, render interval and banner dwell.
func WithTiming(t Timing) Option {
	return func(l *Loop) { l.timing = t }
}

// WithBanners overrides the banner texts.
func WithBanners(b Banners) Option {
	return func(l *Loop) { l.banners = b }
}

// WithAddressLookup overrides how the local address is found.
func WithAddressLookup(fn func() (string, error)) Option {
	return func(l *Loop) { l.address = fn }
}

// WithObserver registers an observer for samples and renders.
func WithObserver(o Observer) Option {
	return func(l *Loop) { l.observer = o }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// WithClock overrides the wall clock and the banner sleep.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(l *Loop) {
		l.now = now
		l.sleep = sleep
	}
}

// WithShutdown overrides how the shutdown channel is obtained when Running
// begins. The default listens for SIGINT and SIGTERM.
func WithShutdown(fn func() <-chan struct{}) Option {
	return func(l *Loop) { l.shutdown = fn }
}

// New creates a Loop drawing to surface.
func New(surface display.Surface, reader sensor.Reader, load LoadReader, opts ...Option) *Loop {
	l := &Loop{
		surface:  surface,
		sensor:   reader,
		load:     load,
		address:  sysload.LocalAddress,
		timing:   DefaultTiming(),
		banners:  DefaultBanners(),
		observer: noopObserver{},
		log:      logger.Default(),
		now:      time.Now,
		sleep:    time.Sleep,
		shutdown: func() <-chan struct{} {
			return ListenForShutdown(os.Interrupt, syscall.SIGTERM)
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes Startup, Running and Draining. It returns nil after a
// signal-driven shutdown and the first error otherwise.
func (l *Loop) Run() error {
	if err := l.surface.Init(); err != nil {
		return errors.FromDisplay(err)
	}
	started := l.now()
	l.log.Info("display ready")

	if err := l.showBanner(l.banners.Welcome); err != nil {
		return err
	}

	if err := l.running(l.shutdown()); err != nil {
		l.log.Debug("render cycle failed: %s", errors.FromError(err).Message)
		return err
	}
	l.log.Info("shutdown requested, started %s", humanize.RelTime(started, l.now(), "ago", "from now"))

	if err := l.showBanner(l.banners.Goodbye); err != nil {
		return err
	}
	return Blank(l.surface)
}

func (l *Loop) showBanner(text string) error {
	if err := DrawBanner(l.surface, text); err != nil {
		return err
	}
	l.sleep(l.timing.BannerDwell)
	return nil
}

// running renders whenever RenderInterval has passed since the last render
// and otherwise waits for the rest of the tick on the shutdown channel.
func (l *Loop) running(shutdown <-chan struct{}) error {
	var (
		lastRender time.Time
		rendered   bool
	)
	for {
		tickStart := l.now()
		if !rendered || tickStart.Sub(lastRender) >= l.timing.RenderInterval {
			if err := l.RenderOnce(); err != nil {
				return err
			}
			lastRender = tickStart
			rendered = true
		}

		wait := l.timing.Tick - l.now().Sub(tickStart)
		if wait < 0 {
			wait = 0
		}
		if shutdownRequested(shutdown, wait) {
			return nil
		}
	}
}

// shutdownRequested waits up to d for a notification. A closed channel
// counts as a notification.
func shutdownRequested(shutdown <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-shutdown:
		return true
	case <-timer.C:
		return false
	}
}

// RenderOnce samples everything and draws the main screen.
func (l *Loop) RenderOnce() error {
	snap, err := l.Snapshot()
	if err != nil {
		return err
	}
	if err := DrawLines(l.surface, snap.Lines()); err != nil {
		return err
	}
	l.observer.ObserveRender(snap.Time)
	l.log.Debug("rendered %.2fC %.2f%%RH %.2fhPa", snap.Reading.TemperatureC, snap.Reading.HumidityPct, snap.Reading.PressureHPa)
	return nil
}

// Snapshot samples once and reports the result to the observer.
func (l *Loop) Snapshot() (Snapshot, error) {
	snap, err := l.sampler().Snapshot()
	if err != nil {
		return Snapshot{}, err
	}
	l.observer.ObserveSample(snap.Reading, snap.Load)
	return snap, nil
}

func (l *Loop) sampler() Sampler {
	return Sampler{
		Sensor:  l.sensor,
		Load:    l.load,
		Address: l.address,
		Now:     l.now,
		Log:     l.log,
	}
}
