package config

import (
	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/hooks"
)

// Config is the effective hookhub configuration
type Config struct {
	Phases   Phases   `koanf:"phases" toml:"phases" yaml:"phases"`
	Release  Release  `koanf:"release" toml:"release" yaml:"release"`
	Logging  Logging  `koanf:"logging" toml:"logging" yaml:"logging"`
	Settings Settings `koanf:"settings" toml:"settings" yaml:"settings"`
	Metrics  Metrics  `koanf:"metrics" toml:"metrics" yaml:"metrics"`
}

// Phases names the two lifecycle phases the dispatcher subscribes to
type Phases struct {
	Bootstrap string `koanf:"bootstrap" toml:"bootstrap" yaml:"bootstrap"`
	API       string `koanf:"api" toml:"api" yaml:"api"`
}

// Release is the version info handed to plugins at registration
type Release struct {
	Generation int    `koanf:"generation" toml:"generation" yaml:"generation"`
	Build      int    `koanf:"build" toml:"build" yaml:"build"`
	System     string `koanf:"system" toml:"system" yaml:"system"`
}

// Logging holds logger settings
type Logging struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity" yaml:"verbosity"`
}

// Settings points at the plugin settings values file
type Settings struct {
	File string `koanf:"file" toml:"file" yaml:"file"`
}

// Metrics toggles dispatch counters
type Metrics struct {
	Enabled bool `koanf:"enabled" toml:"enabled" yaml:"enabled"`
}

// VersionInfo converts the release block for the registration broadcast
func (c *Config) VersionInfo() hooks.VersionInfo {
	return hooks.VersionInfo{
		Generation: c.Release.Generation,
		Build:      c.Release.Build,
		System:     c.Release.System,
	}
}

// Validate checks the values the dispatcher depends on
func (c *Config) Validate() error {
	if c.Phases.Bootstrap == "" || c.Phases.API == "" {
		return errors.New(errors.ErrInvalidInput, "phases.bootstrap and phases.api must be set")
	}
	if c.Phases.Bootstrap == c.Phases.API {
		return errors.Newf(errors.ErrInvalidInput, "phases.bootstrap and phases.api are both %q", c.Phases.API).
			WithDetail("phase", c.Phases.API)
	}
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrInvalidInput, "logging.verbosity cannot be negative, got %d", c.Logging.Verbosity)
	}
	return nil
}
