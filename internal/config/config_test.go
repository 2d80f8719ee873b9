// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/db47h/chipsim/internal/config"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, s string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "chipsim.toml")
	require.NoError(t, os.WriteFile(p, []byte(s), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	p := write(t, `
library = "lib.yaml"
root = "XOR"
interval = "10ms"
ticks = 100
cycle_iterations = 4
metrics_addr = ":9090"
watch = true

[inputs]
a = true
b = false
`)
	c, err := config.Load(p)
	require.NoError(t, err)
	exp := config.Default()
	exp.Library = "lib.yaml"
	exp.Root = "XOR"
	exp.Interval = config.Duration{Duration: 10 * time.Millisecond}
	exp.Ticks = 100
	exp.CycleIterations = 4
	exp.MetricsAddr = ":9090"
	exp.Watch = true
	exp.Inputs = map[string]bool{"a": true, "b": false}
	if diff := cmp.Diff(exp, c); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
	assert.NoError(t, c.Validate())
}

func TestLoad_errors(t *testing.T) {
	_, err := config.Load(write(t, `libary = "typo.yaml"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration keys: libary")

	_, err = config.Load(write(t, `interval = "often"`))
	assert.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	data := []struct {
		name string
		edit func(c *config.Config)
		err  string
	}{
		{"ok", func(*config.Config) {}, ""},
		{"no_library", func(c *config.Config) { c.Library = "" }, "no library file"},
		{"time_step", func(c *config.Config) { c.TimeStep = 0 }, "invalid time step 0"},
		{"iterations", func(c *config.Config) { c.CycleIterations = 0 }, "invalid cycle iterations 0"},
		{"interval", func(c *config.Config) { c.Interval.Duration = -time.Second }, "invalid interval -1s"},
		{"log_level", func(c *config.Config) { c.LogLevel = "loud" }, `not a valid logrus Level: "loud"`},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			c := config.Default()
			c.Library = "lib.yaml"
			d.edit(&c)
			err := c.Validate()
			if d.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, d.err)
		})
	}
}
