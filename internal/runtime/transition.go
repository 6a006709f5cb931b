package runtime

import (
	"github.com/aretw0/animflow/pkg/condition"
	"github.com/aretw0/animflow/pkg/params"
	"github.com/aretw0/animflow/pkg/ports"
)

// Transition is an outgoing edge of a state: an AND-list of conditions and a target.
type Transition struct {
	Target     string
	Conditions []condition.Condition
}

// NewTransition creates a transition to target guarded by conds.
func NewTransition(target string, conds ...condition.Condition) *Transition {
	return &Transition{Target: target, Conditions: conds}
}

// CanTransition reports whether every condition holds. No conditions means
// the transition is unconditional.
func (t *Transition) CanTransition(store *params.Store, animator ports.AnimatorAdapter) bool {
	return condition.All(t.Conditions, store, animator)
}

// Label describes the guard for display.
func (t *Transition) Label() string {
	return condition.Describe(t.Conditions)
}
