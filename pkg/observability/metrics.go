package observability

import (
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records flow activity as Prometheus collectors.
type Metrics struct {
	StateEnters   *prometheus.CounterVec
	Transitions   *prometheus.CounterVec
	StateDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StateEnters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animflow_state_enters_total",
				Help: "Total number of times each state was entered",
			},
			[]string{"state", "variant"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animflow_transitions_total",
				Help: "Total number of state transitions",
			},
			[]string{"from", "to", "reason"},
		),
		StateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "animflow_state_duration_seconds",
				Help:    "Simulated seconds spent in a state before leaving it",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"state"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.StateEnters, m.Transitions, m.StateDuration)
	}
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			m.StateEnters.WithLabelValues(e.StateID, string(e.Variant)).Inc()
		},
		OnStateExit: func(e *domain.StateEvent) {
			m.StateDuration.WithLabelValues(e.StateID).Observe(e.TimeInState)
		},
		OnTransition: func(e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.FromID, e.ToID, string(e.Reason)).Inc()
		},
	}
}
