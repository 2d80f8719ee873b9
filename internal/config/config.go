// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config holds the chipsim command configuration.
//
package config

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/db47h/chipsim"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Duration is a time.Duration that decodes from strings like "10ms".
//
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
//
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the configuration of a simulation run.
//
//	library = "lib.yaml"
//	root = "XOR"
//	interval = "10ms"
//	ticks = 100
//	time_step = 0.01
//	cycle_iterations = 1
//	log_level = "info"
//	metrics_addr = ":9090"
//	watch = true
//
//	[inputs]
//	a = true
//
type Config struct {
	Library         string          `toml:"library"`
	Root            string          `toml:"root"`
	Interval        Duration        `toml:"interval"`
	Ticks           uint64          `toml:"ticks"`
	TimeStep        float64         `toml:"time_step"`
	CycleIterations int             `toml:"cycle_iterations"`
	LogLevel        string          `toml:"log_level"`
	MetricsAddr     string          `toml:"metrics_addr"`
	Watch           bool            `toml:"watch"`
	Inputs          map[string]bool `toml:"inputs"`
}

// Default returns the default configuration.
//
func Default() Config {
	return Config{
		TimeStep:        chipsim.DefaultTimeStep,
		CycleIterations: 1,
		LogLevel:        logrus.InfoLevel.String(),
	}
}

// Load decodes the TOML file at path over the default configuration.
// Unknown keys are rejected.
//
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, errors.Wrap(err, "load config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return c, errors.Errorf("%s: unknown configuration keys: %s", path, strings.Join(names, ", "))
	}
	return c, nil
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	if c.Library == "" {
		return errors.New("no library file")
	}
	if c.TimeStep <= 0 {
		return errors.Errorf("invalid time step %v", c.TimeStep)
	}
	if c.CycleIterations < 1 {
		return errors.Errorf("invalid cycle iterations %d", c.CycleIterations)
	}
	if c.Interval.Duration < 0 {
		return errors.Errorf("invalid interval %v", c.Interval)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
