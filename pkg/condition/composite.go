package condition

import (
	"fmt"
	"strings"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/params"
	"github.com/aretw0/animflow/pkg/ports"
)

// Composite combines child conditions. Let k be the number of children that
// hold: AND needs every child, OR needs one, AT_LEAST/EXACTLY/AT_MOST compare k
// with Count. An empty AND or OR holds. Negate inverts the combined result.
type Composite struct {
	Operator domain.Operator
	Count    int
	Negate   bool
	Children []Condition
}

func (c *Composite) Evaluate(store *params.Store, animator ports.AnimatorAdapter) bool {
	result := c.combine(store, animator)
	if c.Negate {
		return !result
	}
	return result
}

func (c *Composite) combine(store *params.Store, animator ports.AnimatorAdapter) bool {
	switch c.Operator {
	case domain.OperatorAnd:
		return All(c.Children, store, animator)
	case domain.OperatorOr:
		if len(c.Children) == 0 {
			return true
		}
		for _, child := range c.Children {
			if child != nil && child.Evaluate(store, animator) {
				return true
			}
		}
		return false
	case domain.OperatorAtLeast:
		return c.countTrue(store, animator) >= c.Count
	case domain.OperatorExactly:
		return c.countTrue(store, animator) == c.Count
	case domain.OperatorAtMost:
		return c.countTrue(store, animator) <= c.Count
	default:
		return false
	}
}

func (c *Composite) countTrue(store *params.Store, animator ports.AnimatorAdapter) int {
	k := 0
	for _, child := range c.Children {
		if child != nil && child.Evaluate(store, animator) {
			k++
		}
	}
	return k
}

func (c *Composite) String() string {
	parts := make([]string, 0, len(c.Children))
	for _, child := range c.Children {
		if child == nil {
			parts = append(parts, "false")
			continue
		}
		parts = append(parts, child.String())
	}
	var s string
	switch c.Operator {
	case domain.OperatorAnd:
		s = "(" + strings.Join(parts, " && ") + ")"
	case domain.OperatorOr:
		s = "(" + strings.Join(parts, " || ") + ")"
	default:
		s = fmt.Sprintf("%s(%d; %s)", c.Operator, c.Count, strings.Join(parts, ", "))
	}
	if c.Negate {
		return "!" + s
	}
	return s
}

// Negated returns a copy of the composite with its negation flipped.
func (c *Composite) Negated() *Composite {
	out := *c
	out.Negate = !out.Negate
	return &out
}

// And holds when every child holds.
func And(children ...Condition) *Composite {
	return &Composite{Operator: domain.OperatorAnd, Children: children}
}

// Or holds when any child holds.
func Or(children ...Condition) *Composite {
	return &Composite{Operator: domain.OperatorOr, Children: children}
}

// AtLeast holds when n or more children hold.
func AtLeast(n int, children ...Condition) *Composite {
	return &Composite{Operator: domain.OperatorAtLeast, Count: n, Children: children}
}

// Exactly holds when exactly n children hold.
func Exactly(n int, children ...Condition) *Composite {
	return &Composite{Operator: domain.OperatorExactly, Count: n, Children: children}
}

// AtMost holds when n or fewer children hold.
func AtMost(n int, children ...Condition) *Composite {
	return &Composite{Operator: domain.OperatorAtMost, Count: n, Children: children}
}
