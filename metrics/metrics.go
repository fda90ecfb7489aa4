package metrics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"git.c3pb.de/farhaven/solar/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	frameDuration prometheus.Histogram
	framesTotal   *prometheus.CounterVec
	commandsTotal *prometheus.CounterVec
	picksTotal    *prometheus.CounterVec
	trailPoints   prometheus.Gauge
}

// New registers the collectors on a private registry so several sessions
// (or tests) don't collide.
func New() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "solar_frame_duration_seconds",
				Help:    "Time spent producing one frame",
				Buckets: []float64{.001, .002, .004, .008, .016, .033, .066, .1},
			},
		),
		framesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solar_frames_total",
				Help: "Total number of frames, by playback state",
			},
			[]string{"state"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solar_commands_total",
				Help: "Total number of applied input commands",
			},
			[]string{"command"},
		),
		picksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solar_picks_total",
				Help: "Total number of clicks on the scene, by result",
			},
			[]string{"result"},
		),
		trailPoints: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "solar_trail_points",
				Help: "Number of positions currently held in trails",
			},
		),
	}

	m.registry.MustRegister(m.frameDuration)
	m.registry.MustRegister(m.framesTotal)
	m.registry.MustRegister(m.commandsTotal)
	m.registry.MustRegister(m.picksTotal)
	m.registry.MustRegister(m.trailPoints)

	return m
}

func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Collector) RecordFrame(running bool) {
	state := "paused"
	if running {
		state = "running"
	}
	m.framesTotal.WithLabelValues(state).Inc()
}

func (m *Collector) RecordFrameTime(d time.Duration) {
	m.frameDuration.Observe(d.Seconds())
}

func (m *Collector) RecordCommand(cmd session.Command) {
	m.commandsTotal.WithLabelValues(session.CommandName(cmd)).Inc()
}

func (m *Collector) RecordPick(_ int, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.picksTotal.WithLabelValues(result).Inc()
}

func (m *Collector) SetTrailPoints(n int) {
	m.trailPoints.Set(float64(n))
}

// Hooks wires the collector into a session.
func (m *Collector) Hooks() session.Hooks {
	return session.Hooks{
		Command: m.RecordCommand,
		Pick:    m.RecordPick,
		Frame:   m.RecordFrame,
	}
}

func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("can't listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(sctx)
	}()

	log.Printf(`serving metrics on http://%s/metrics`, ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
