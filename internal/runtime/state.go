package runtime

import (
	"log/slog"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/params"
	"github.com/aretw0/animflow/pkg/ports"
)

// StateContext is the surface a state reads and writes during its lifecycle.
type StateContext struct {
	Params   *params.Store
	Animator ports.AnimatorAdapter
	Logger   *slog.Logger
}

// State is one node of the flow. The controller calls OnEnter once when the
// state becomes current, OnUpdate once per tick while it is current, and OnExit
// once when it is left.
type State interface {
	ID() string
	Animation() string
	Variant() domain.Variant
	Transitions() []*Transition
	AddTransition(t *Transition)

	OnEnter(sc *StateContext)
	OnUpdate(sc *StateContext, dt float64)
	OnExit(sc *StateContext)

	// CheckTransitions returns the target of the first outgoing transition,
	// in declaration order, whose conditions hold.
	CheckTransitions(sc *StateContext) (string, bool)
}

type baseState struct {
	id          string
	animation   string
	transitions []*Transition
}

func (s *baseState) ID() string                 { return s.id }
func (s *baseState) Animation() string          { return s.animation }
func (s *baseState) Transitions() []*Transition { return s.transitions }

func (s *baseState) AddTransition(t *Transition) {
	if t != nil {
		s.transitions = append(s.transitions, t)
	}
}

func (s *baseState) OnUpdate(*StateContext, float64) {}
func (s *baseState) OnExit(*StateContext)            {}

func (s *baseState) CheckTransitions(sc *StateContext) (string, bool) {
	for _, t := range s.transitions {
		if t.CanTransition(sc.Params, sc.Animator) {
			return t.Target, true
		}
	}
	return "", false
}

// LoopingState plays its clip on repeat.
type LoopingState struct {
	baseState
}

// NewLoopingState creates a looping state.
func NewLoopingState(id, animation string) *LoopingState {
	return &LoopingState{baseState{id: id, animation: animation}}
}

func (s *LoopingState) Variant() domain.Variant { return domain.VariantLooping }

func (s *LoopingState) OnEnter(sc *StateContext) {
	sc.Animator.Play(s.animation)
	sc.Animator.SetLooping(true)
}

// OneTimeState plays its clip once. It lowers ParamAnimationComplete on enter
// and raises it when the animator reports completion, either through the
// completion callback or by polling in OnUpdate.
type OneTimeState struct {
	baseState
	callback   ports.CallbackID
	registered bool
}

// NewOneTimeState creates a play-once state.
func NewOneTimeState(id, animation string) *OneTimeState {
	return &OneTimeState{baseState: baseState{id: id, animation: animation}}
}

func (s *OneTimeState) Variant() domain.Variant { return domain.VariantOneTime }

func (s *OneTimeState) OnEnter(sc *StateContext) {
	sc.Animator.Play(s.animation)
	sc.Animator.SetLooping(false)
	sc.Params.Set(domain.ParamAnimationComplete, false)

	s.unregister(sc)
	store := sc.Params
	clip := s.animation
	s.callback = sc.Animator.RegisterCompletionCallback(func(name string) {
		if name == clip {
			store.Set(domain.ParamAnimationComplete, true)
		}
	})
	s.registered = true
}

func (s *OneTimeState) OnUpdate(sc *StateContext, _ float64) {
	if sc.Animator.IsAnimationComplete() {
		sc.Params.Set(domain.ParamAnimationComplete, true)
	}
}

func (s *OneTimeState) OnExit(sc *StateContext) {
	s.unregister(sc)
}

func (s *OneTimeState) unregister(sc *StateContext) {
	if s.registered {
		sc.Animator.UnregisterCompletionCallback(s.callback)
		s.registered = false
	}
}

// HoldFrameState shows a single frame of its clip: it enters like a OneTime
// state, then seeks to Frame and pauses. OnExit resumes the animator so the
// next state starts from a running animator.
type HoldFrameState struct {
	OneTimeState
	Frame int
}

// NewHoldFrameState creates a state that holds frame of animation.
func NewHoldFrameState(id, animation string, frame int) *HoldFrameState {
	return &HoldFrameState{
		OneTimeState: OneTimeState{baseState: baseState{id: id, animation: animation}},
		Frame:        frame,
	}
}

func (s *HoldFrameState) Variant() domain.Variant { return domain.VariantHoldFrame }

func (s *HoldFrameState) OnEnter(sc *StateContext) {
	s.OneTimeState.OnEnter(sc)
	sc.Animator.SetCurrentFrame(s.Frame)
	sc.Animator.Pause()
}

func (s *HoldFrameState) OnExit(sc *StateContext) {
	s.OneTimeState.OnExit(sc)
	sc.Animator.Resume()
}
