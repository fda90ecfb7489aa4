package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

const (
	BackendGL  = `gl`
	BackendTTY = `tty`
)

type Config struct {
	Backend string

	Width, Height int
	FPS           int

	Seed  int64
	Stars int

	// Font is a TrueType file for HUD text. Go Regular is used when empty.
	Font string

	// MetricsAddr is the listen address for /metrics. Empty disables it.
	MetricsAddr string

	Sound   bool
	Verbose bool

	// LogFile receives log output instead of stderr. The tty backend
	// discards logs when it is empty.
	LogFile string
}

func Default() Config {
	return Config{
		Backend: BackendGL,
		Width:   1280,
		Height:  720,
		FPS:     60,
		Stars:   10000,
	}
}

func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Backend, "backend", c.Backend, "renderer to use, gl or tty")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for initial planet angles and stars, 0 picks one")
	fs.IntVar(&c.Stars, "stars", c.Stars, "number of background stars")
	fs.StringVar(&c.Font, "font", c.Font, "TrueType font for the HUD")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "serve prometheus metrics on this address")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "chime when a planet is picked")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "log ignored input")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
}

func (c Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendGL, BackendTTY:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size %dx%d", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Stars < 0 {
		errs = append(errs, fmt.Errorf("star count can't be negative, got %d", c.Stars))
	}

	return errors.Join(errs...)
}

// OrreryStars maps the flag value onto orrery.Options.Stars, where zero
// means the default count and a negative value means none.
func (c Config) OrreryStars() int {
	if c.Stars == 0 {
		return -1
	}
	return c.Stars
}
