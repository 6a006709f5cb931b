package domain

// TransitionRecord defines a rule to move from one state to another.
// All conditions must hold; an empty list is an unconditional transition.
type TransitionRecord struct {
	FromID     string            `json:"from" yaml:"from" toml:"from"`
	ToID       string            `json:"to" yaml:"to" toml:"to"`
	Conditions []ConditionRecord `json:"conditions,omitempty" yaml:"conditions,omitempty" toml:"conditions,omitempty"`
}
