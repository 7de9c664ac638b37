package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/nerdminer/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	durations := []struct {
		key string
		val time.Duration
	}{
		{"network.timeout", cfg.Network.Timeout},
		{"network.min_interval", cfg.Network.MinInterval},
		{"network.poll_interval", cfg.Network.PollInterval},
		{"mining.tick_sleep", cfg.Mining.TickSleep},
		{"display.frame_interval", cfg.Display.FrameInterval},
		{"display.poll_timeout", cfg.Display.PollTimeout},
		{"input.power_debounce", cfg.Input.PowerDebounce},
		{"input.volume_window", cfg.Input.VolumeWindow},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s must be positive, got %s", d.key, d.val),
				"Use a duration like 500ms, 10s or 1m")
		}
	}

	if cfg.Display.PollTimeout > cfg.Display.FrameInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("display.poll_timeout (%s) exceeds display.frame_interval (%s)",
				cfg.Display.PollTimeout, cfg.Display.FrameInterval),
			"Keep the key poll shorter than one frame")
	}

	sizes := []struct {
		key string
		val int
	}{
		{"mining.history_size", cfg.Mining.HistorySize},
		{"display.graph_width", cfg.Display.GraphWidth},
		{"display.graph_height", cfg.Display.GraphHeight},
	}
	for _, s := range sizes {
		if s.val <= 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s must be positive, got %d", s.key, s.val),
				"Remove the key to use the default")
		}
	}

	if p := cfg.Mining.ShareProbability; p < 0 || p > 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("mining.share_probability must be between 0 and 1, got %g", p),
			"The default is 0.001 (one share per thousand ticks)")
	}

	switch cfg.Display.Mode {
	case ModeAuto, ModeTUI, ModePlain:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown display.mode %q", cfg.Display.Mode),
			"Use one of: auto, tui, plain")
	}

	switch cfg.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown display.color %q", cfg.Display.Color),
			"Use one of: auto, always, never")
	}

	return nil
}
