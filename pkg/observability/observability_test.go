package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()

	hooks.OnStateEnter(&domain.StateEvent{StateID: "idle", Variant: domain.VariantLooping})
	hooks.OnTransition(&domain.TransitionEvent{FromID: "", ToID: "idle", Reason: domain.ReasonStart})
	hooks.OnStateExit(&domain.StateEvent{StateID: "idle", TimeInState: 0.4})
	hooks.OnStateEnter(&domain.StateEvent{StateID: "run", Variant: domain.VariantLooping})
	hooks.OnTransition(&domain.TransitionEvent{FromID: "idle", ToID: "run", Reason: domain.ReasonCondition})
	hooks.OnStateEnter(&domain.StateEvent{StateID: "idle", Variant: domain.VariantLooping})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StateEnters.WithLabelValues("idle", "Looping")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateEnters.WithLabelValues("run", "Looping")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("idle", "run", "condition")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StateDuration))

	n, err := testutil.GatherAndCount(reg, "animflow_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.NewMetrics(nil).Hooks().OnStateEnter(&domain.StateEvent{StateID: "a"})
	})
}

func TestChain(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnStateEnter: func(*domain.StateEvent) { order = append(order, "a-enter") },
	}
	b := domain.LifecycleHooks{
		OnStateEnter: func(*domain.StateEvent) { order = append(order, "b-enter") },
		OnTransition: func(*domain.TransitionEvent) { order = append(order, "b-transition") },
	}

	hooks := observability.Chain(a, domain.LifecycleHooks{}, b)
	require.NotNil(t, hooks.OnStateEnter)
	assert.Nil(t, hooks.OnStateExit)

	hooks.OnStateEnter(&domain.StateEvent{})
	hooks.OnTransition(&domain.TransitionEvent{})
	assert.Equal(t, []string{"a-enter", "b-enter", "b-transition"}, order)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := observability.LoggingHooks(logger)

	hooks.OnTransition(&domain.TransitionEvent{FromID: "idle", ToID: "run", Reason: domain.ReasonForced})
	assert.Contains(t, buf.String(), "msg=transition from=idle to=run reason=forced")
}
