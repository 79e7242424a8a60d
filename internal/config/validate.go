package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/envpanel/internal/errors"
)

// maxI2CAddress is the largest 7-bit I2C address.
const maxI2CAddress = 0x7f

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but envpanel only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade envpanel or lower the version in your config.")
	}

	if err := validateSensor(cfg.Sensor); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'sensor' section in your envpanel.yaml.")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'display' section in your envpanel.yaml.")
	}

	if err := validateLoop(cfg.Loop); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'loop' section in your envpanel.yaml.")
	}

	if err := validateBanner(cfg.Banner); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'banner' section in your envpanel.yaml.")
	}

	return nil
}

func validateSensor(s SensorConfig) error {
	if s.Address > maxI2CAddress {
		return fmt.Errorf("sensor address 0x%x is not a 7-bit I2C address", s.Address)
	}
	if strings.TrimSpace(s.Root) == "" {
		return fmt.Errorf("sensor root can't be empty")
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	if strings.TrimSpace(d.Bus) == "" {
		return fmt.Errorf("display bus can't be empty")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("display size %dx%d must be positive", d.Width, d.Height)
	}
	return nil
}

func validateLoop(l LoopConfig) error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"tick", l.Tick},
		{"render_interval", l.RenderInterval},
		{"banner_dwell", l.BannerDwell},
	}
	for _, f := range durations {
		if f.d <= 0 {
			return fmt.Errorf("loop %s must be positive, got %s", f.name, f.d)
		}
	}
	if l.RenderInterval < l.Tick {
		return fmt.Errorf("loop render_interval (%s) can't be shorter than tick (%s)", l.RenderInterval, l.Tick)
	}
	return nil
}

func validateBanner(b BannerConfig) error {
	if strings.TrimSpace(b.Welcome) == "" {
		return fmt.Errorf("welcome banner can't be empty")
	}
	if strings.TrimSpace(b.Goodbye) == "" {
		return fmt.Errorf("goodbye banner can't be empty")
	}
	return nil
}
