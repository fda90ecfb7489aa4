package config

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf(`default config invalid: %s`, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{`backend`, func(c *Config) { c.Backend = `vulkan` }, `unknown backend`},
		{`width`, func(c *Config) { c.Width = 0 }, `window size`},
		{`height`, func(c *Config) { c.Height = -1 }, `window size`},
		{`fps`, func(c *Config) { c.FPS = 0 }, `fps`},
		{`stars`, func(c *Config) { c.Stars = -5 }, `star count`},
	}

	for _, tt := range tests {
		c := Default()
		tt.modify(&c)
		err := c.Validate()
		if err == nil {
			t.Errorf(`%s: expected an error`, tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf(`%s: expected %q in %q`, tt.name, tt.want, err)
		}
	}
}

func TestBind(t *testing.T) {
	c := Default()
	fs := pflag.NewFlagSet(`solar`, pflag.ContinueOnError)
	c.Bind(fs)

	err := fs.Parse([]string{`--backend`, `tty`, `--fps=30`, `--stars`, `0`, `--metrics-addr`, `:9100`, `--sound`})
	if err != nil {
		t.Fatalf(`%s`, err)
	}

	if c.Backend != BackendTTY || c.FPS != 30 || c.MetricsAddr != `:9100` || !c.Sound {
		t.Errorf(`flags not applied: %+v`, c)
	}
	if c.Width != Default().Width {
		t.Errorf(`unset flag changed width to %d`, c.Width)
	}
	if c.OrreryStars() != -1 {
		t.Errorf(`zero stars should map to none, got %d`, c.OrreryStars())
	}
}
