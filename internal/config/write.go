package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/envpanel/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with durations and addresses in the form people
// write them by hand.
type fileConfig struct {
	Version int `yaml:"version"`
	Sensor  struct {
		Bus     uint8     `yaml:"bus"`
		Address hexNumber `yaml:"address"`
		Root    string    `yaml:"root"`
	} `yaml:"sensor"`
	Display DisplayConfig `yaml:"display"`
	Loop    struct {
		Tick           string `yaml:"tick"`
		RenderInterval string `yaml:"render_interval"`
		BannerDwell    string `yaml:"banner_dwell"`
	} `yaml:"loop"`
	Banner  BannerConfig  `yaml:"banner"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// hexNumber marshals as a YAML int in 0x notation.
type hexNumber uint16

func (h hexNumber) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
		Value: fmt.Sprintf("0x%02x", uint16(h)),
	}, nil
}

// Marshal renders cfg as YAML that Load reads back unchanged.
func Marshal(cfg *Config) ([]byte, error) {
	var f fileConfig
	f.Version = cfg.Version
	f.Sensor.Bus = cfg.Sensor.Bus
	f.Sensor.Address = hexNumber(cfg.Sensor.Address)
	f.Sensor.Root = cfg.Sensor.Root
	f.Display = cfg.Display
	f.Loop.Tick = cfg.Loop.Tick.String()
	f.Loop.RenderInterval = cfg.Loop.RenderInterval.String()
	f.Loop.BannerDwell = cfg.Loop.BannerDwell.String()
	f.Banner = cfg.Banner
	f.Metrics = cfg.Metrics

	out, err := yaml.Marshal(&f)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't encode config",
			"This is unexpected - please report it.")
	}
	return out, nil
}

// Write saves cfg to path, creating parent directories. An existing file is
// only replaced when force is set.
func Write(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Use --force to overwrite it.")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create config directory",
			"Check permissions on "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write config file",
			"Check permissions on "+path)
	}
	return nil
}
