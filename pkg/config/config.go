// Package config loads the optional wheel.yaml that tunes the wheel, its
// fling strategies, the companion radio and the demo host.
//
// Every field has a default, so a missing file or a partial file is valid.
// Unknown keys are rejected to catch typos.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the file LoadOptional looks for.
const FileName = "wheel.yaml"

// Config represents wheel.yaml.
type Config struct {
	Wheel    WheelConfig    `yaml:"wheel"`
	Platform PlatformConfig `yaml:"platform"`
	Fling    FlingConfig    `yaml:"fling"`
	Radio    RadioConfig    `yaml:"radio"`
	Log      LogConfig      `yaml:"log"`
	Mirror   MirrorConfig   `yaml:"mirror"`
}

// WheelConfig contains the wheel's geometry and feedback settings.
type WheelConfig struct {
	Ticks               int     `yaml:"ticks"`
	Rotations           int     `yaml:"rotations"`
	AnimationDurationMS int     `yaml:"animation_duration_ms"`
	TouchSlop           float64 `yaml:"touch_slop"`
	Vibration           bool    `yaml:"vibration"`
	HapticDurationMS    int     `yaml:"haptic_duration_ms"`
	HapticIntervalMS    int     `yaml:"haptic_interval_ms,omitempty"`
}

// PlatformConfig describes the host capabilities used to pick the fling
// strategy.
type PlatformConfig struct {
	APILevel       int  `yaml:"api_level"`
	DisablePhysics bool `yaml:"disable_physics,omitempty"`
}

// FlingConfig tunes the fling strategies.
type FlingConfig struct {
	Friction      float64 `yaml:"friction"`
	PixelsPerInch float64 `yaml:"pixels_per_inch"`
	DecayRate     float64 `yaml:"decay_rate"`
}

// RadioConfig contains the companion radio's tick counts.
type RadioConfig struct {
	SmallTicks int `yaml:"small_ticks"`
	BigTicks   int `yaml:"big_ticks"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// MirrorConfig contains the websocket mirror settings. An empty Addr
// disables the mirror.
type MirrorConfig struct {
	Addr string `yaml:"addr,omitempty"`
	Path string `yaml:"path"`
}

// Default returns a fully populated Config.
func Default() Config {
	return Config{
		Wheel: WheelConfig{
			Ticks:               18,
			Rotations:           2,
			AnimationDurationMS: 200,
			TouchSlop:           8,
			Vibration:           true,
			HapticDurationMS:    10,
		},
		Platform: PlatformConfig{
			APILevel: 9,
		},
		Fling: FlingConfig{
			Friction:      0.015,
			PixelsPerInch: 160,
			DecayRate:     4,
		},
		Radio: RadioConfig{
			SmallTicks: 25,
			BigTicks:   5,
		},
		Log: LogConfig{
			Level: "info",
		},
		Mirror: MirrorConfig{
			Path: "/wheel",
		},
	}
}

// LoadOptional reads wheel.yaml from dir if present. A missing file yields
// the defaults.
func LoadOptional(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads and validates a config file on top of the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Config{}, errors.New("decode yaml: unexpected trailing document")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks config invariants and returns a user-friendly error.
func (c *Config) Validate() error {
	if c.Wheel.Ticks < 1 {
		return errors.New("wheel.ticks must be >= 1")
	}
	if c.Wheel.Rotations < 1 {
		return errors.New("wheel.rotations must be >= 1")
	}
	if c.Wheel.AnimationDurationMS <= 0 {
		return errors.New("wheel.animation_duration_ms must be > 0")
	}
	if c.Wheel.TouchSlop < 0 {
		return errors.New("wheel.touch_slop must be >= 0")
	}
	if c.Wheel.HapticDurationMS <= 0 {
		return errors.New("wheel.haptic_duration_ms must be > 0")
	}
	if c.Wheel.HapticIntervalMS < 0 {
		return errors.New("wheel.haptic_interval_ms must be >= 0")
	}

	if c.Platform.APILevel < 0 {
		return errors.New("platform.api_level must be >= 0")
	}

	if c.Fling.Friction <= 0 {
		return errors.New("fling.friction must be > 0")
	}
	if c.Fling.PixelsPerInch <= 0 {
		return errors.New("fling.pixels_per_inch must be > 0")
	}
	if c.Fling.DecayRate <= 0 {
		return errors.New("fling.decay_rate must be > 0")
	}

	if c.Radio.SmallTicks < 2 {
		return errors.New("radio.small_ticks must be >= 2")
	}
	if c.Radio.BigTicks < 2 {
		return errors.New("radio.big_ticks must be >= 2")
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if c.Mirror.Addr != "" && (c.Mirror.Path == "" || c.Mirror.Path[0] != '/') {
		return fmt.Errorf("mirror.path must start with '/' (got %q)", c.Mirror.Path)
	}
	return nil
}

// AnimationDuration returns wheel.animation_duration_ms as a duration.
func (c *Config) AnimationDuration() time.Duration {
	return time.Duration(c.Wheel.AnimationDurationMS) * time.Millisecond
}

// HapticDuration returns wheel.haptic_duration_ms as a duration.
func (c *Config) HapticDuration() time.Duration {
	return time.Duration(c.Wheel.HapticDurationMS) * time.Millisecond
}
