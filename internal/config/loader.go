package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/envpanel/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the config file name looked up in the working directory.
	ConfigFileName = "envpanel.yaml"
	// GlobalConfigDir is the per-user config directory, relative to home.
	GlobalConfigDir = ".config/envpanel"
	// GlobalConfigFile is the file name inside GlobalConfigDir.
	GlobalConfigFile = "config.yaml"
	// SystemConfigPath is where a system service install reads its config.
	SystemConfigPath = "/etc/envpanel/config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. ENVPANEL_LOOP_TICK.
	EnvPrefix = "ENVPANEL"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'envpanel init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. envpanel.yaml in current directory
// 3. ~/.config/envpanel/config.yaml
// 4. /etc/envpanel/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	paths, err := searchPaths()
	if err != nil {
		return "", err
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	paths := []string{filepath.Join(cwd, ConfigFileName)}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, GlobalConfigDir, GlobalConfigFile))
	}
	return append(paths, SystemConfigPath), nil
}

// LoadOrDefault loads the config found by Find, or the defaults (with any
// environment overrides applied) when there is none. It also returns the
// path that was loaded, empty for defaults.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so that environment overrides are seen
// by Unmarshal even when the file omits a section.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("sensor.bus", def.Sensor.Bus)
	v.SetDefault("sensor.address", def.Sensor.Address)
	v.SetDefault("sensor.root", def.Sensor.Root)
	v.SetDefault("display.bus", def.Display.Bus)
	v.SetDefault("display.width", def.Display.Width)
	v.SetDefault("display.height", def.Display.Height)
	v.SetDefault("loop.tick", def.Loop.Tick)
	v.SetDefault("loop.render_interval", def.Loop.RenderInterval)
	v.SetDefault("loop.banner_dwell", def.Loop.BannerDwell)
	v.SetDefault("banner.welcome", def.Banner.Welcome)
	v.SetDefault("banner.goodbye", def.Banner.Goodbye)
	v.SetDefault("metrics.listen", def.Metrics.Listen)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	return cfg, nil
}
