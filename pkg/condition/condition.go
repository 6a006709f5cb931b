package condition

import (
	"fmt"
	"strings"

	"github.com/aretw0/animflow/pkg/params"
	"github.com/aretw0/animflow/pkg/ports"
)

// Condition is a boolean rule over the parameter store and the animator.
// Evaluate must be free of side effects so it can be called any number of times,
// in any order.
type Condition interface {
	Evaluate(store *params.Store, animator ports.AnimatorAdapter) bool
	fmt.Stringer
}

// Always is satisfied unconditionally.
type Always struct{}

func (Always) Evaluate(*params.Store, ports.AnimatorAdapter) bool { return true }
func (Always) String() string                                     { return "true" }

// Never is never satisfied. The factory substitutes it for records it cannot compile.
type Never struct{}

func (Never) Evaluate(*params.Store, ports.AnimatorAdapter) bool { return false }
func (Never) String() string                                     { return "false" }

// All reports whether every condition holds. An empty list holds vacuously.
func All(conds []Condition, store *params.Store, animator ports.AnimatorAdapter) bool {
	for _, c := range conds {
		if c == nil || !c.Evaluate(store, animator) {
			return false
		}
	}
	return true
}

// Describe renders conditions as a single " && "-joined label.
func Describe(conds []Condition) string {
	if len(conds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		if c == nil {
			parts = append(parts, "false")
			continue
		}
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " && ")
}
