package config

import (
	"log/slog"
	"time"

	"github.com/go-drift/wheel/pkg/haptics"
	"github.com/go-drift/wheel/pkg/kinetic"
	"github.com/go-drift/wheel/pkg/radio"
	"github.com/go-drift/wheel/pkg/wheel"
)

// KineticConfig converts the fling section into strategy tuning.
func (c *Config) KineticConfig(logger *slog.Logger) kinetic.Config {
	return kinetic.Config{
		Duration:      c.AnimationDuration(),
		Friction:      c.Fling.Friction,
		PixelsPerInch: c.Fling.PixelsPerInch,
		DecayRate:     c.Fling.DecayRate,
		Logger:        logger,
	}
}

// Capabilities converts the platform section.
func (c *Config) Capabilities() kinetic.Capabilities {
	return kinetic.Capabilities{
		APILevel:       c.Platform.APILevel,
		DisablePhysics: c.Platform.DisablePhysics,
	}
}

// WheelOptions returns wheel options for the configured geometry and
// strategy. The caller supplies the loop, listeners and haptic service.
func (c *Config) WheelOptions(logger *slog.Logger) wheel.Options {
	slop := c.Wheel.TouchSlop
	if slop == 0 {
		// Zero selects the default in wheel.Options.
		slop = -1
	}
	return wheel.Options{
		TickCount:      c.Wheel.Ticks,
		RotationFactor: c.Wheel.Rotations,
		TouchSlop:      slop,
		Capabilities:   c.Capabilities(),
		Kinetic:        c.KineticConfig(logger),
		Logger:         logger,
	}
}

// HapticsOptions converts the haptic fields of the wheel section.
func (c *Config) HapticsOptions(logger *slog.Logger) haptics.Options {
	return haptics.Options{
		Duration:    c.HapticDuration(),
		MinInterval: time.Duration(c.Wheel.HapticIntervalMS) * time.Millisecond,
		Logger:      logger,
	}
}

// RadioOptions converts the radio section.
func (c *Config) RadioOptions(logger *slog.Logger) radio.Options {
	return radio.Options{
		SmallTicks: c.Radio.SmallTicks,
		BigTicks:   c.Radio.BigTicks,
		Logger:     logger,
	}
}
