package observability

import (
	"log/slog"

	"github.com/aretw0/animflow/pkg/domain"
)

// Chain combines several hook sets into one. Hooks run in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var enters, exits []func(*domain.StateEvent)
	var transitions []func(*domain.TransitionEvent)
	for _, s := range sets {
		if s.OnStateEnter != nil {
			enters = append(enters, s.OnStateEnter)
		}
		if s.OnStateExit != nil {
			exits = append(exits, s.OnStateExit)
		}
		if s.OnTransition != nil {
			transitions = append(transitions, s.OnTransition)
		}
	}

	var out domain.LifecycleHooks
	if len(enters) > 0 {
		out.OnStateEnter = func(e *domain.StateEvent) {
			for _, fn := range enters {
				fn(e)
			}
		}
	}
	if len(exits) > 0 {
		out.OnStateExit = func(e *domain.StateEvent) {
			for _, fn := range exits {
				fn(e)
			}
		}
	}
	if len(transitions) > 0 {
		out.OnTransition = func(e *domain.TransitionEvent) {
			for _, fn := range transitions {
				fn(e)
			}
		}
	}
	return out
}

// LoggingHooks logs every lifecycle event at Info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			logger.Info("state_enter",
				"state", e.StateID,
				"animation", e.Animation,
				"variant", string(e.Variant),
			)
		},
		OnStateExit: func(e *domain.StateEvent) {
			logger.Info("state_exit", "state", e.StateID, "time_in_state", e.TimeInState)
		},
		OnTransition: func(e *domain.TransitionEvent) {
			logger.Info("transition", "from", e.FromID, "to", e.ToID, "reason", string(e.Reason))
		},
	}
}
