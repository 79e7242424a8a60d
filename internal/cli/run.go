package cli

import (
	"context"
	"image"
	"os"
	"time"

	"github.com/rileyhilliard/envpanel/internal/config"
	"github.com/rileyhilliard/envpanel/internal/display"
	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/rileyhilliard/envpanel/internal/lock"
	"github.com/rileyhilliard/envpanel/internal/logger"
	"github.com/rileyhilliard/envpanel/internal/panel"
	"github.com/rileyhilliard/envpanel/internal/sensor"
	"github.com/rileyhilliard/envpanel/internal/sysload"
	"github.com/rileyhilliard/envpanel/internal/telemetry"
	"github.com/spf13/afero"
)

// metricsShutdownTimeout bounds how long the exporter may take to stop.
const metricsShutdownTimeout = 2 * time.Second

// loadConfig finds, loads and validates the config, falling back to defaults.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(Config())
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if path != "" {
		logger.Default().Debug("loaded config from %s", path)
	} else {
		logger.Default().Debug("no config file found, using defaults")
	}
	return cfg, nil
}

// newSampler wires the sensor, load and address collaborators from cfg.
func newSampler(cfg *config.Config, log logger.Logger) panel.Sampler {
	return panel.Sampler{
		Sensor:  newSensor(cfg),
		Load:    sysload.New(""),
		Address: sysload.LocalAddress,
		Log:     log,
	}
}

func newSensor(cfg *config.Config) *sensor.BME280 {
	return sensor.New(afero.NewOsFs(), cfg.Sensor.Bus, cfg.Sensor.Address, sensor.WithRoot(cfg.Sensor.Root))
}

func displaySize(cfg *config.Config) image.Point {
	return image.Pt(cfg.Display.Width, cfg.Display.Height)
}

// runPanel drives the display until a shutdown signal arrives.
func runPanel() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewEnvLogger("[envpanel]")
	logger.SetDefault(log)

	held, err := lock.TryAcquire(afero.NewOsFs(), os.TempDir(), lock.DisplayName(cfg.Display.Bus), 0)
	if err != nil {
		return err
	}
	defer func() {
		if err := held.Release(); err != nil {
			log.Warn("releasing display lock: %v", err)
		}
	}()
	log.Debug("holding display lock %s", held.Dir)

	dev, err := display.NewSSD1306(cfg.Display.Bus, displaySize(cfg))
	if err != nil {
		return errors.FromDisplay(err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Warn("closing display bus: %v", err)
		}
	}()

	collector := telemetry.New()
	if cfg.Metrics.Listen != "" {
		srv, err := telemetry.Serve(cfg.Metrics.Listen, collector)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't start the metrics exporter on "+cfg.Metrics.Listen,
				"Pick a free address for metrics.listen, or leave it empty to disable the exporter.")
		}
		log.Info("serving metrics on http://%s/metrics", srv.Addr())
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Warn("stopping metrics exporter: %v", err)
			}
		}()
	}

	loop := panel.New(dev, newSensor(cfg), sysload.New(""),
		panel.WithTiming(panel.Timing{
			Tick:           cfg.Loop.Tick,
			RenderInterval: cfg.Loop.RenderInterval,
			BannerDwell:    cfg.Loop.BannerDwell,
		}),
		panel.WithBanners(panel.Banners{
			Welcome: cfg.Banner.Welcome,
			Goodbye: cfg.Banner.Goodbye,
		}),
		panel.WithLogger(log),
		panel.WithObserver(collector),
	)
	return loop.Run()
}
