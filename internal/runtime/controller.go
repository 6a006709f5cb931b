package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/params"
	"github.com/aretw0/animflow/pkg/ports"
)

// Controller drives a set of states one tick at a time. It owns the current
// state, the time spent in it, and the parameter store.
// A Controller is not safe for concurrent use; the host calls Tick from a single
// goroutine, once per frame.
type Controller struct {
	states    map[string]State
	order     []string
	initialID string

	current     State
	timeInState float64

	store    *params.Store
	registry *params.Registry
	sc       *StateContext

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ControllerOption {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a controller driving animator. A nil animator is
// replaced by ports.NopAnimator.
func NewController(animator ports.AnimatorAdapter, opts ...ControllerOption) *Controller {
	c := &Controller{
		states:   make(map[string]State),
		registry: params.NewRegistry(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = params.NewStore(params.WithLogger(c.logger))
	c.sc = &StateContext{
		Params:   c.store,
		Animator: ports.OrNop(animator),
		Logger:   c.logger,
	}
	return c
}

// Register adds a state. A state with the same id replaces the previous one.
func (c *Controller) Register(s State) {
	if s == nil {
		return
	}
	if _, exists := c.states[s.ID()]; exists {
		c.logger.Warn("replacing registered state", "state", s.ID())
	} else {
		c.order = append(c.order, s.ID())
	}
	c.states[s.ID()] = s
}

// SetInitialState records the state Start enters.
func (c *Controller) SetInitialState(id string) {
	c.initialID = id
}

// SetRegistry replaces the parameter declarations and seeds their defaults.
func (c *Controller) SetRegistry(r *params.Registry) {
	if r == nil {
		r = params.NewRegistry()
	}
	c.registry = r
	r.Seed(c.store)
}

// Registry returns the parameter declarations of the built graph.
func (c *Controller) Registry() *params.Registry {
	return c.registry
}

// ClearStates exits the current state and forgets every registered state.
// Parameters are kept.
func (c *Controller) ClearStates() {
	if c.current != nil {
		c.exit(c.current)
	}
	c.current = nil
	c.timeInState = 0
	c.states = make(map[string]State)
	c.order = nil
	c.initialID = ""
}

// Start enters the initial state. It returns an error wrapping
// domain.ErrUnknownState when no registered initial state exists.
func (c *Controller) Start() error {
	target, ok := c.states[c.initialID]
	if !ok {
		c.logger.Warn("no initial state to start", "state", c.initialID)
		return fmt.Errorf("start %q: %w", c.initialID, domain.ErrUnknownState)
	}
	c.swap(target, domain.ReasonStart)
	return nil
}

// Tick advances the controller by dt seconds. It publishes the time in state,
// updates the current state and fires at most one transition. A state entered
// during this tick is not evaluated until the next one.
func (c *Controller) Tick(dt float64) {
	if c.current == nil {
		return
	}
	if dt < 0 {
		c.logger.Debug("negative tick delta clamped", "dt", dt)
		dt = 0
	}

	c.timeInState += dt
	c.store.Set(domain.ParamStateTime, c.timeInState)

	c.current.OnUpdate(c.sc, dt)

	targetID, ok := c.current.CheckTransitions(c.sc)
	if !ok {
		return
	}
	target, known := c.states[targetID]
	if !known {
		c.logger.Warn("transition to unregistered state ignored", "state", c.current.ID(), "target", targetID)
		return
	}
	c.swap(target, domain.ReasonCondition)
}

// ForceTransition swaps to id without evaluating conditions. It returns false
// and leaves the current state untouched when id is not registered.
func (c *Controller) ForceTransition(id string) bool {
	target, ok := c.states[id]
	if !ok {
		c.logger.Warn("forced transition to unregistered state", "target", id)
		return false
	}
	c.swap(target, domain.ReasonForced)
	return true
}

func (c *Controller) swap(target State, reason domain.TransitionReason) {
	fromID := ""
	if c.current != nil {
		fromID = c.current.ID()
		c.exit(c.current)
	}

	c.current = target
	c.timeInState = 0
	c.store.Set(domain.ParamStateTime, 0.0)
	target.OnEnter(c.sc)

	c.logger.Debug("state transition", "from", fromID, "to", target.ID(), "reason", string(reason))

	if c.hooks.OnStateEnter != nil {
		c.hooks.OnStateEnter(&domain.StateEvent{
			EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventStateEnter},
			StateID:   target.ID(),
			Animation: target.Animation(),
			Variant:   target.Variant(),
		})
	}
	if c.hooks.OnTransition != nil {
		c.hooks.OnTransition(&domain.TransitionEvent{
			EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventTransition},
			FromID:    fromID,
			ToID:      target.ID(),
			Reason:    reason,
		})
	}
}

func (c *Controller) exit(s State) {
	elapsed := c.timeInState
	s.OnExit(c.sc)
	if c.hooks.OnStateExit != nil {
		c.hooks.OnStateExit(&domain.StateEvent{
			EventBase:   domain.EventBase{Timestamp: c.now(), Type: domain.EventStateExit},
			StateID:     s.ID(),
			Animation:   s.Animation(),
			Variant:     s.Variant(),
			TimeInState: elapsed,
		})
	}
}

// CurrentStateID returns the id of the current state, or "" before Start.
func (c *Controller) CurrentStateID() string {
	if c.current == nil {
		return ""
	}
	return c.current.ID()
}

// TimeInCurrentState returns the seconds accumulated since the current state was entered.
func (c *Controller) TimeInCurrentState() float64 {
	return c.timeInState
}

// Started reports whether a current state exists.
func (c *Controller) Started() bool {
	return c.current != nil
}

// InitialStateID returns the registered initial state id.
func (c *Controller) InitialStateID() string {
	return c.initialID
}

// States returns registered state ids in registration order.
func (c *Controller) States() []string {
	return append([]string(nil), c.order...)
}

// State returns a registered state.
func (c *Controller) State(id string) (State, bool) {
	s, ok := c.states[id]
	return s, ok
}

// Store returns the parameter store owned by the controller.
func (c *Controller) Store() *params.Store {
	return c.store
}

// SetParameter writes a parameter.
func (c *Controller) SetParameter(name string, value any) {
	c.store.Set(name, value)
}

// GetParameter reads a parameter's raw value.
func (c *Controller) GetParameter(name string) (any, bool) {
	return c.store.Value(name)
}

// HasParameter reports whether a parameter has been written.
func (c *Controller) HasParameter(name string) bool {
	return c.store.Has(name)
}
