// Package metrics records sequencer activity for Prometheus.
package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/internal/logging"
	"github.com/Rorical/RoriLogo/internal/models"
)

type Metrics struct {
	Registry  *prometheus.Registry
	started   *prometheus.CounterVec
	completed *prometheus.CounterVec
	resets    prometheus.Counter
	duration  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rorilogo_instructions_started_total",
				Help: "Instructions that began animating",
			},
			[]string{"kind"},
		),
		completed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rorilogo_instructions_completed_total",
				Help: "Instructions that finished animating",
			},
			[]string{"kind"},
		),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rorilogo_animation_resets_total",
			Help: "Times the instruction list was replaced",
		}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rorilogo_instruction_duration_ms",
				Help:    "Planned animation length of completed instructions",
				Buckets: prometheus.ExponentialBuckets(10, 2, 10),
			},
			[]string{"kind"},
		),
	}
	m.Registry.MustRegister(m.started, m.completed, m.resets, m.duration)
	return m
}

// Hooks returns sequencer hooks that record metrics and log transitions.
// A nil Metrics only logs.
func (m *Metrics) Hooks(logger *slog.Logger) animation.Hooks {
	if logger == nil {
		logger = logging.NewNop()
	}
	return animation.Hooks{
		OnStart: func(index int, ins models.Instruction) {
			logger.Debug("instruction_start", "index", index, "kind", ins.Kind.String(), "id", ins.ID)
			if m != nil {
				m.started.WithLabelValues(ins.Kind.String()).Inc()
			}
		},
		OnComplete: func(index int, ins models.Instruction, duration float64) {
			logger.Debug("instruction_complete", "index", index, "kind", ins.Kind.String(), "duration_ms", duration)
			if m != nil {
				m.completed.WithLabelValues(ins.Kind.String()).Inc()
				m.duration.WithLabelValues(ins.Kind.String()).Observe(duration)
			}
		},
		OnReset: func(previous int) {
			logger.Info("animation_reset", "previous", previous)
			if m != nil {
				m.resets.Inc()
			}
		},
	}
}
