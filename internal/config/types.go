package config

import "time"

// Display modes.
const (
	ModeAuto  = "auto"
	ModeTUI   = "tui"
	ModePlain = "plain"
)

// Color settings.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the complete nerdminer configuration.
type Config struct {
	Network NetworkConfig `yaml:"network" mapstructure:"network"`
	Mining  MiningConfig  `yaml:"mining" mapstructure:"mining"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Status  StatusConfig  `yaml:"status" mapstructure:"status"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// NetworkConfig controls the public endpoints and the refresh cadence.
type NetworkConfig struct {
	// PriceURL returns {"bitcoin":{"usd":<price>}}.
	PriceURL string `yaml:"price_url" mapstructure:"price_url"`

	// HeightURL and DifficultyURL return a bare number as text.
	HeightURL     string `yaml:"height_url" mapstructure:"height_url"`
	DifficultyURL string `yaml:"difficulty_url" mapstructure:"difficulty_url"`

	// Timeout bounds each HTTP call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MinInterval is the minimum spacing between refresh cycles.
	MinInterval time.Duration `yaml:"min_interval" mapstructure:"min_interval"`

	// PollInterval is how often the background task wakes to check the gate.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
}

// MiningConfig tunes the synthetic workload.
type MiningConfig struct {
	ShareProbability float64       `yaml:"share_probability" mapstructure:"share_probability"`
	TickSleep        time.Duration `yaml:"tick_sleep" mapstructure:"tick_sleep"`
	HistorySize      int           `yaml:"history_size" mapstructure:"history_size"`
}

// DisplayConfig controls the foreground loop and frame layout.
type DisplayConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`
	PollTimeout   time.Duration `yaml:"poll_timeout" mapstructure:"poll_timeout"`
	GraphWidth    int           `yaml:"graph_width" mapstructure:"graph_width"`
	GraphHeight   int           `yaml:"graph_height" mapstructure:"graph_height"`

	// Mode is auto, tui or plain.
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Color is auto, always or never.
	Color string `yaml:"color" mapstructure:"color"`
}

// InputConfig holds the button gesture windows.
type InputConfig struct {
	PowerDebounce time.Duration `yaml:"power_debounce" mapstructure:"power_debounce"`
	VolumeWindow  time.Duration `yaml:"volume_window" mapstructure:"volume_window"`
}

// StatusConfig enables the read-only status server.
type StatusConfig struct {
	// Addr is the listen address, e.g. "127.0.0.1:8088". Empty disables the server.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LogConfig controls where log output goes while the dashboard owns the terminal.
type LogConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			PriceURL:      "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies=usd",
			HeightURL:     "https://blockchain.info/q/getblockcount",
			DifficultyURL: "https://blockchain.info/q/getdifficulty",
			Timeout:       10 * time.Second,
			MinInterval:   60 * time.Second,
			PollInterval:  30 * time.Second,
		},
		Mining: MiningConfig{
			ShareProbability: 0.001,
			TickSleep:        3 * time.Millisecond,
			HistorySize:      20,
		},
		Display: DisplayConfig{
			FrameInterval: 500 * time.Millisecond,
			PollTimeout:   100 * time.Millisecond,
			GraphWidth:    40,
			GraphHeight:   8,
			Mode:          ModeAuto,
			Color:         ColorAuto,
		},
		Input: InputConfig{
			PowerDebounce: 500 * time.Millisecond,
			VolumeWindow:  time.Second,
		},
	}
}
