// Package config handles preview configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/booth-preview/internal/preview/color"
	"github.com/Faultbox/booth-preview/internal/preview/loop"
	"github.com/Faultbox/booth-preview/internal/preview/render"
	"github.com/Faultbox/booth-preview/internal/preview/scene"
)

// Config holds all preview settings.
type Config struct {
	Preview  PreviewConfig  `yaml:"preview"`
	Window   WindowConfig   `yaml:"window"`
	Headless HeadlessConfig `yaml:"headless"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PreviewConfig holds the booth configuration and rendering settings.
type PreviewConfig struct {
	Variant      string  `yaml:"variant" env:"BOOTH_VARIANT"`
	MainColor    string  `yaml:"main_color" env:"BOOTH_MAIN_COLOR"`     // empty: variant default
	AccentColor  string  `yaml:"accent_color" env:"BOOTH_ACCENT_COLOR"` // empty: variant default
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	RotationStep float32 `yaml:"rotation_step"` // radians per frame
	Backend      string  `yaml:"backend" env:"BOOTH_BACKEND"`
	Supersample  int     `yaml:"supersample"` // soft backend only
}

// WindowConfig holds desktop host window settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// HeadlessConfig holds settings for rendering frames to PNG files.
type HeadlessConfig struct {
	Enabled bool   `yaml:"enabled"`
	Frames  int    `yaml:"frames"`
	OutDir  string `yaml:"out_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"BOOTH_LOG_LEVEL"`
	LogFile string `yaml:"log_file"`
}

// Backend names.
const (
	BackendGL   = "gl"
	BackendSoft = "soft"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Preview: PreviewConfig{
			Variant:      scene.DefaultVariant.String(),
			Width:        render.DefaultWidth,
			Height:       render.DefaultHeight,
			RotationStep: loop.DefaultStep,
			Backend:      BackendGL,
			Supersample:  2,
		},
		Window: WindowConfig{
			Title:  "Booth Preview",
			Width:  800,
			Height: 560,
			VSync:  true,
		},
		Headless: HeadlessConfig{
			Frames: 1,
			OutDir: "frames",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// SceneConfig resolves the preview settings into a booth configuration.
// Invalid values fall back to the variant's defaults; the returned error
// lists every value that was replaced and is meant for logging only.
func (p PreviewConfig) SceneConfig() (scene.Config, error) {
	var errs error

	v, ok := scene.ParseVariant(p.Variant)
	if !ok {
		errs = multierr.Append(errs, fmt.Errorf("unknown variant %q, using %s", p.Variant, v))
	}
	cfg := scene.DefaultConfig(v)

	if p.MainColor != "" {
		c, err := color.Parse(p.MainColor)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("main color: %w", err))
		} else {
			cfg.Main = c
		}
	}
	if p.AccentColor != "" {
		c, err := color.Parse(p.AccentColor)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("accent color: %w", err))
		} else {
			cfg.Accent = c
		}
	}
	return cfg, errs
}
