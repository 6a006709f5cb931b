package dsl

import "github.com/aretw0/animflow/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state   domain.StateRecord
	builder *Builder
}

// Looping makes the state repeat animation.
func (s *StateBuilder) Looping(animation string) *StateBuilder {
	s.state.Variant = domain.VariantLooping
	s.state.AnimationName = animation
	return s
}

// OneTime makes the state play animation once.
func (s *StateBuilder) OneTime(animation string) *StateBuilder {
	s.state.Variant = domain.VariantOneTime
	s.state.AnimationName = animation
	return s
}

// HoldFrame makes the state show a single frame of animation.
func (s *StateBuilder) HoldFrame(animation string, frame int) *StateBuilder {
	s.state.Variant = domain.VariantHoldFrame
	s.state.AnimationName = animation
	s.state.HoldFrame = frame
	return s
}

// Initial marks the state as the one the flow starts in.
func (s *StateBuilder) Initial() *StateBuilder {
	s.state.IsInitial = true
	return s
}

// Go adds an unconditional transition to the target state.
func (s *StateBuilder) Go(target string) *StateBuilder {
	return s.When(target)
}

// When adds a transition taken when every condition holds.
// Transitions are evaluated in the order they are added.
func (s *StateBuilder) When(target string, conds ...domain.ConditionRecord) *StateBuilder {
	s.builder.transitions = append(s.builder.transitions, domain.TransitionRecord{
		FromID:     s.state.ID,
		ToID:       target,
		Conditions: append([]domain.ConditionRecord(nil), conds...),
	})
	return s
}

// Build returns the underlying domain.StateRecord.
func (s *StateBuilder) Build() domain.StateRecord {
	return s.state
}
