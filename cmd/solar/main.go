package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.c3pb.de/farhaven/solar/config"
	"git.c3pb.de/farhaven/solar/metrics"
	"git.c3pb.de/farhaven/solar/orrery"
	"git.c3pb.de/farhaven/solar/session"
	"git.c3pb.de/farhaven/solar/sound"
	"git.c3pb.de/farhaven/solar/tty"
	"git.c3pb.de/farhaven/solar/ui"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "solar",
		Short: "Interactive 3D model of the solar system",
		Long: `
Renders the sun and the eight planets orbiting it. Drag to orbit the camera,
scroll to zoom, click a planet to learn more about it.

Keys:
  space, p   pause and resume
  r          reset the view
  t          toggle trails
  + / -      change speed
  1..8       follow a planet, 0 for the free camera
  escape, q  quit
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cfg.Bind(root.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf(`solar: %s`, err)
	}
}

func setupLogging(cfg config.Config) (func(), error) {
	if cfg.LogFile != `` {
		fh, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("can't open log file: %w", err)
		}
		log.SetOutput(fh)
		return func() {
			log.SetOutput(os.Stderr)
			fh.Close()
		}, nil
	}

	if cfg.Backend == config.BackendTTY {
		log.SetOutput(io.Discard)
	}
	return func() { log.SetOutput(os.Stderr) }, nil
}

type backend interface {
	Run(ctx context.Context) error
	Close()
}

func run(ctx context.Context, cfg config.Config) error {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Printf(`starting with seed %d`, cfg.Seed)

	var (
		s     *session.Session
		hooks session.Hooks
		onFT  func(time.Duration)
		picks []func(int, bool)
	)

	if cfg.MetricsAddr != `` {
		m := metrics.New()
		hooks = m.Hooks()
		hooks.Frame = func(running bool) {
			m.RecordFrame(running)
			m.SetTrailPoints(s.Trails.Points())
		}
		picks = append(picks, m.RecordPick)
		onFT = m.RecordFrameTime

		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Printf(`metrics disabled: %s`, err)
			}
		}()
	}

	if cfg.Sound {
		p, err := sound.Open()
		if err != nil {
			log.Printf(`sound disabled: %s`, err)
		} else {
			defer p.Close()
			picks = append(picks, p.OnPick)
		}
	}

	if len(picks) > 0 {
		hooks.Pick = func(body int, hit bool) {
			for _, f := range picks {
				f(body, hit)
			}
		}
	}

	s = session.New(session.Options{
		Orrery: orrery.Options{Seed: cfg.Seed, Stars: cfg.OrreryStars()},
		Width:  cfg.Width,
		Height: cfg.Height,
		Hooks:  hooks,
	})

	var b backend
	switch cfg.Backend {
	case config.BackendGL:
		b, err = ui.New(s, ui.Options{
			FPS:         cfg.FPS,
			Font:        cfg.Font,
			Verbose:     cfg.Verbose,
			OnFrameTime: onFT,
		})
	case config.BackendTTY:
		b, err = tty.Open(s, tty.Options{
			FPS:         cfg.FPS,
			Verbose:     cfg.Verbose,
			OnFrameTime: onFT,
		})
	}
	if err != nil {
		return err
	}
	defer b.Close()

	log.Printf(`running %s backend at %d fps`, cfg.Backend, cfg.FPS)
	if err := b.Run(ctx); err != nil {
		return err
	}
	log.Printf(`%d frames`, s.Frames)

	return nil
}
