package condition

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/params"
	"github.com/aretw0/animflow/pkg/ports"
)

// Leaf is an atomic comparison of one parameter (or the animator) against a literal.
// Operand holds the canonical Go value for Kind: bool, int, float64 or string;
// time leaves hold seconds as float64.
type Leaf struct {
	Kind      domain.OperandKind
	Op        domain.CompareOp
	Parameter string
	Operand   any
	// Epsilon is the equality tolerance of float and time leaves. Zero or
	// negative means domain.DefaultEpsilon.
	Epsilon float64
	Negate  bool
}

// Evaluate compares the referenced value with the operand. A missing or
// differently typed parameter makes the leaf false, negated or not.
func (l *Leaf) Evaluate(store *params.Store, animator ports.AnimatorAdapter) bool {
	result, ok := l.compare(store, animator)
	if !ok {
		return false
	}
	if l.Negate {
		return !result
	}
	return result
}

func (l *Leaf) compare(store *params.Store, animator ports.AnimatorAdapter) (bool, bool) {
	switch l.Kind {
	case domain.OperandBool:
		actual, ok := params.Lookup[bool](store, l.Parameter)
		want, wok := l.Operand.(bool)
		if !ok || !wok {
			return false, false
		}
		return compareBool(l.Op, actual, want), true

	case domain.OperandInt:
		actual, ok := params.Lookup[int](store, l.Parameter)
		want, wok := l.Operand.(int)
		if !ok || !wok {
			return false, false
		}
		return compareOrdered(l.Op, actual, want), true

	case domain.OperandFloat:
		actual, ok := params.Lookup[float64](store, l.Parameter)
		want, wok := l.Operand.(float64)
		if !ok || !wok {
			return false, false
		}
		return compareFloat(l.Op, actual, want, l.epsilon()), true

	case domain.OperandTime:
		actual, ok := params.Lookup[float64](store, domain.ParamStateTime)
		want, wok := l.Operand.(float64)
		if !ok || !wok {
			return false, false
		}
		return compareFloat(l.Op, actual, want, l.epsilon()), true

	case domain.OperandString:
		actual, ok := params.Lookup[string](store, l.Parameter)
		want, wok := l.Operand.(string)
		if !ok || !wok {
			return false, false
		}
		return compareString(l.Op, actual, want), true

	case domain.OperandAnimationComplete:
		want, wok := l.Operand.(bool)
		if !wok {
			return false, false
		}
		return compareBool(l.Op, ports.OrNop(animator).IsAnimationComplete(), want), true
	}
	return false, false
}

func (l *Leaf) epsilon() float64 {
	if l.Epsilon > 0 {
		return l.Epsilon
	}
	return domain.DefaultEpsilon
}

func (l *Leaf) String() string {
	var s string
	switch l.Kind {
	case domain.OperandAnimationComplete:
		s = fmt.Sprintf("animationComplete %s %v", l.Op, l.Operand)
	case domain.OperandTime:
		s = fmt.Sprintf("%s %s %vs", domain.ParamStateTime, l.Op, l.Operand)
	case domain.OperandString:
		s = fmt.Sprintf("%s %s %q", l.Parameter, l.Op, l.Operand)
	default:
		s = fmt.Sprintf("%s %s %v", l.Parameter, l.Op, l.Operand)
	}
	if l.Negate {
		return "!(" + s + ")"
	}
	return s
}

// Negated returns a copy of the leaf with its negation flipped.
func (l *Leaf) Negated() *Leaf {
	c := *l
	c.Negate = !c.Negate
	return &c
}

func compareBool(op domain.CompareOp, a, b bool) bool {
	switch op {
	case domain.OpEqual:
		return a == b
	case domain.OpNotEqual:
		return a != b
	default:
		// Ordering is meaningless for booleans.
		return false
	}
}

func compareOrdered(op domain.CompareOp, a, b int) bool {
	switch op {
	case domain.OpEqual:
		return a == b
	case domain.OpNotEqual:
		return a != b
	case domain.OpGreater:
		return a > b
	case domain.OpLess:
		return a < b
	case domain.OpGreaterOrEqual:
		return a >= b
	case domain.OpLessOrEqual:
		return a <= b
	default:
		return false
	}
}

func compareFloat(op domain.CompareOp, a, b, eps float64) bool {
	eq := math.Abs(a-b) <= eps
	switch op {
	case domain.OpEqual:
		return eq
	case domain.OpNotEqual:
		return !eq
	case domain.OpGreater:
		return a > b
	case domain.OpLess:
		return a < b
	case domain.OpGreaterOrEqual:
		return a > b || eq
	case domain.OpLessOrEqual:
		return a < b || eq
	default:
		return false
	}
}

func compareString(op domain.CompareOp, a, b string) bool {
	switch op {
	case domain.OpEqual:
		return a == b
	case domain.OpNotEqual:
		return a != b
	case domain.OpEqualFold:
		return strings.EqualFold(a, b)
	case domain.OpContains:
		return strings.Contains(a, b)
	case domain.OpStartsWith:
		return strings.HasPrefix(a, b)
	case domain.OpEndsWith:
		return strings.HasSuffix(a, b)
	default:
		return false
	}
}

// Bool builds a bool leaf.
func Bool(param string, op domain.CompareOp, want bool) *Leaf {
	return &Leaf{Kind: domain.OperandBool, Op: op, Parameter: param, Operand: want}
}

// Int builds an int leaf.
func Int(param string, op domain.CompareOp, want int) *Leaf {
	return &Leaf{Kind: domain.OperandInt, Op: op, Parameter: param, Operand: want}
}

// Float builds a float leaf using the default epsilon.
func Float(param string, op domain.CompareOp, want float64) *Leaf {
	return &Leaf{Kind: domain.OperandFloat, Op: op, Parameter: param, Operand: want}
}

// String builds a string leaf.
func String(param string, op domain.CompareOp, want string) *Leaf {
	return &Leaf{Kind: domain.OperandString, Op: op, Parameter: param, Operand: want}
}

// TimeInState builds a leaf comparing the seconds spent in the current state.
func TimeInState(op domain.CompareOp, seconds float64) *Leaf {
	return &Leaf{Kind: domain.OperandTime, Op: op, Operand: seconds}
}

// AnimationComplete builds a leaf that holds while the animator reports completion.
func AnimationComplete() *Leaf {
	return &Leaf{Kind: domain.OperandAnimationComplete, Op: domain.OpEqual, Operand: true}
}
