package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/nerdminer/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".nerdminer.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/nerdminer"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. NERDMINER_STATUS_ADDR.
	EnvPrefix = "NERDMINER"
)

// Load reads config from the specified path, layering environment overrides
// and defaults underneath.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Check the --config path, or remove it to use defaults")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .nerdminer.yaml in current directory
// 3. ~/.config/nerdminer/config.yaml
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

	cwd, err := os.Getwd()
	if err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if home, _ := os.UserHomeDir(); home != "" {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults
// (with environment overrides applied) if no file exists.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return FromEnv()
	}

	return Load(path)
}

// FromEnv returns the defaults with NERDMINER_* environment overrides
// applied, ignoring any config file.
func FromEnv() (*Config, error) {
	return parseConfig(newViper(), "environment")
}

// newViper returns a viper instance with every key defaulted so that
// environment variables are honoured by Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

// setDefaults registers every field of def with viper.
func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("network.price_url", def.Network.PriceURL)
	v.SetDefault("network.height_url", def.Network.HeightURL)
	v.SetDefault("network.difficulty_url", def.Network.DifficultyURL)
	v.SetDefault("network.timeout", def.Network.Timeout)
	v.SetDefault("network.min_interval", def.Network.MinInterval)
	v.SetDefault("network.poll_interval", def.Network.PollInterval)

	v.SetDefault("mining.share_probability", def.Mining.ShareProbability)
	v.SetDefault("mining.tick_sleep", def.Mining.TickSleep)
	v.SetDefault("mining.history_size", def.Mining.HistorySize)

	v.SetDefault("display.frame_interval", def.Display.FrameInterval)
	v.SetDefault("display.poll_timeout", def.Display.PollTimeout)
	v.SetDefault("display.graph_width", def.Display.GraphWidth)
	v.SetDefault("display.graph_height", def.Display.GraphHeight)
	v.SetDefault("display.mode", def.Display.Mode)
	v.SetDefault("display.color", def.Display.Color)

	v.SetDefault("input.power_debounce", def.Input.PowerDebounce)
	v.SetDefault("input.volume_window", def.Input.VolumeWindow)

	v.SetDefault("status.addr", def.Status.Addr)
	v.SetDefault("log.file", def.Log.File)
}

// parseConfig converts viper config to our Config struct and validates it.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
