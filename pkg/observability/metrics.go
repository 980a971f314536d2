package observability

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for lexing activity.
type Metrics struct {
	steps   *prometheus.CounterVec
	traps   *prometheus.CounterVec
	tokens  *prometheus.CounterVec
	lexemes *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_steps_total",
				Help: "Total number of symbols fed to machines",
			},
			[]string{"pattern"},
		),
		traps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_traps_total",
				Help: "Total number of transitions into the trap",
			},
			[]string{"pattern"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_tokens_total",
				Help: "Total number of tokens emitted",
			},
			[]string{"category"},
		),
		lexemes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "espalier_lexeme_length_runes",
				Help:    "Length of emitted lexemes in runes",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"category"},
		),
	}

	reg.MustRegister(m.steps, m.traps, m.tokens, m.lexemes)
	return m
}

// Steps exposes the step counter (test observability).
func (m *Metrics) Steps() *prometheus.CounterVec { return m.steps }

// Traps exposes the trap counter (test observability).
func (m *Metrics) Traps() *prometheus.CounterVec { return m.traps }

// Tokens exposes the token counter (test observability).
func (m *Metrics) Tokens() *prometheus.CounterVec { return m.tokens }

// Hooks returns lifecycle hooks that record into the collectors. Safe to
// combine with a shared registry across several lexers.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(e.Pattern).Inc()
		},
		OnTrap: func(ctx context.Context, e *domain.StepEvent) {
			m.traps.WithLabelValues(e.Pattern).Inc()
		},
		OnToken: func(ctx context.Context, e *domain.TokenEvent) {
			m.tokens.WithLabelValues(e.Token.Category).Inc()
			m.lexemes.WithLabelValues(e.Token.Category).Observe(float64(len([]rune(e.Token.Lexeme))))
		},
	}
}
