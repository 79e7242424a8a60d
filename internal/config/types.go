package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete envpanel.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Sensor  SensorConfig  `yaml:"sensor" mapstructure:"sensor"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Loop    LoopConfig    `yaml:"loop" mapstructure:"loop"`
	Banner  BannerConfig  `yaml:"banner" mapstructure:"banner"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// SensorConfig locates the BME280 in sysfs.
type SensorConfig struct {
	// Bus is the I2C bus number the sensor is attached to.
	Bus uint8 `yaml:"bus" mapstructure:"bus"`

	// Address is the sensor's 7-bit I2C address (0x76 or 0x77).
	Address uint16 `yaml:"address" mapstructure:"address"`

	// Root is the sysfs directory holding I2C devices.
	Root string `yaml:"root" mapstructure:"root"`
}

// DisplayConfig selects the SSD1306 panel. The device always answers at
// address 0x3c.
type DisplayConfig struct {
	// Bus is the periph bus name, e.g. "1" or "/dev/i2c-1".
	Bus string `yaml:"bus" mapstructure:"bus"`

	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// LoopConfig controls the control loop's cadence.
type LoopConfig struct {
	// Tick is how often the loop checks for a shutdown request.
	Tick time.Duration `yaml:"tick" mapstructure:"tick"`

	// RenderInterval is the minimum time between two screen refreshes.
	RenderInterval time.Duration `yaml:"render_interval" mapstructure:"render_interval"`

	// BannerDwell is how long the welcome and goodbye banners stay up.
	BannerDwell time.Duration `yaml:"banner_dwell" mapstructure:"banner_dwell"`
}

// BannerConfig holds the startup and shutdown messages.
type BannerConfig struct {
	Welcome string `yaml:"welcome" mapstructure:"welcome"`
	Goodbye string `yaml:"goodbye" mapstructure:"goodbye"`
}

// MetricsConfig controls the Prometheus exporter.
type MetricsConfig struct {
	// Listen is the address to serve /metrics on. Empty disables it.
	Listen string `yaml:"listen" mapstructure:"listen"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Sensor: SensorConfig{
			Bus:     1,
			Address: 0x76,
			Root:    "/sys/bus/i2c/devices",
		},
		Display: DisplayConfig{
			Bus:    "1",
			Width:  128,
			Height: 64,
		},
		Loop: LoopConfig{
			Tick:           time.Millisecond,
			RenderInterval: 200 * time.Millisecond,
			BannerDwell:    5 * time.Second,
		},
		Banner: BannerConfig{
			Welcome: "Welcome",
			Goodbye: "Goodbye",
		},
	}
}
