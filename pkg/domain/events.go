package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventStateEnter EventType = "state_enter"
	EventStateExit  EventType = "state_exit"
	EventTransition EventType = "transition"
)

// TransitionReason records why the current state changed.
type TransitionReason string

const (
	ReasonStart     TransitionReason = "start"
	ReasonCondition TransitionReason = "condition"
	ReasonForced    TransitionReason = "forced"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StateEvent represents entry or exit from a state.
type StateEvent struct {
	EventBase
	StateID   string  `json:"state_id"`
	Animation string  `json:"animation"`
	Variant   Variant `json:"variant"`
	// TimeInState is the time spent in the state when it was left (zero on enter).
	TimeInState float64 `json:"time_in_state"`
}

// TransitionEvent represents a swap of the current state.
type TransitionEvent struct {
	EventBase
	FromID string           `json:"from_id,omitempty"`
	ToID   string           `json:"to_id"`
	Reason TransitionReason `json:"reason"`
}

// LifecycleHooks defines callbacks for controller observability.
// They fire synchronously on the goroutine that drives the controller.
type LifecycleHooks struct {
	OnStateEnter func(*StateEvent)
	OnStateExit  func(*StateEvent)
	OnTransition func(*TransitionEvent)
}
