// Package config holds runtime configuration for the composition pipeline:
// defaults, environment overrides, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all composition settings. It is populated by [Default] and
// then optionally mutated by [ApplyEnv] or CLI flags before being passed
// (by pointer) to the packages that need it. Fields carry inline
// documentation of defaults and fixed values.
type Config struct {
	// Output geometry.
	Width  int // Default: 1024. 16:9 aspect target with Height.
	Height int // Default: 576.
	FPS    int // Default: 24.

	// Timing.
	DefaultTotalDuration float64 // Default: 30s. Used when audio duration is unknown.
	MinImageDuration     float64 // Default: 2s. Floor for per-image display.
	MaxImageDuration     float64 // Default: 8s. Comfort bound triggering transition widening.
	TransitionDuration   float64 // Default: 0.8s. Base cross-image transition.
	MaxTransitionDuration float64 // Default: 1.5s. Cap for the adaptive pass.
	FadeDuration         float64 // Fixed: 0.5s in and out per image stage.

	// Encoder process bounds.
	SlideshowTimeout  time.Duration // Default: 300s for image-bearing tiers.
	BackgroundTimeout time.Duration // Default: 120s for background-only tiers.
	ProbeTimeout      time.Duration // Default: 30s per ffprobe call.

	// Storage.
	StorePath   string // Base directory of the filesystem store. Default: "./data".
	VideoFolder string // Folder (key prefix) for produced videos. Default: "videos".

	// Logging.
	LogLevel string // Default: "info".
}

// Default returns a Config with the production defaults.
func Default() Config {
	return Config{
		Width:                 1024,
		Height:                576,
		FPS:                   24,
		DefaultTotalDuration:  30.0,
		MinImageDuration:      2.0,
		MaxImageDuration:      8.0,
		TransitionDuration:    0.8,
		MaxTransitionDuration: 1.5,
		FadeDuration:          0.5,
		SlideshowTimeout:      300 * time.Second,
		BackgroundTimeout:     120 * time.Second,
		ProbeTimeout:          30 * time.Second,
		StorePath:             "./data",
		VideoFolder:           "videos",
		LogLevel:              "info",
	}
}

// ApplyEnv overrides cfg fields from STORYREEL_* environment variables.
// Unset variables leave the current value; malformed numeric values are
// reported as errors rather than silently ignored.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("STORYREEL_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("STORYREEL_VIDEO_FOLDER"); v != "" {
		cfg.VideoFolder = v
	}
	if v := os.Getenv("STORYREEL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	for _, e := range []struct {
		name string
		dst  *int
	}{
		{"STORYREEL_WIDTH", &cfg.Width},
		{"STORYREEL_HEIGHT", &cfg.Height},
		{"STORYREEL_FPS", &cfg.FPS},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", e.name, v)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks that geometry, frame rate, and timing fields hold usable
// values. Called once after defaults, env, and flags are applied.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("resolution must be positive")
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return errors.New("resolution must use even dimensions (yuv420p)")
	}
	if c.FPS <= 0 {
		return errors.New("fps must be positive")
	}
	if c.MinImageDuration <= 0 {
		return errors.New("minimum image duration must be positive")
	}
	if c.MaxImageDuration < c.MinImageDuration {
		return errors.New("comfort bound must be >= minimum image duration")
	}
	if c.TransitionDuration < 0 || c.MaxTransitionDuration < c.TransitionDuration {
		return errors.New("transition durations out of order")
	}
	if c.SlideshowTimeout <= 0 || c.BackgroundTimeout <= 0 {
		return errors.New("encoder timeouts must be positive")
	}
	return nil
}
