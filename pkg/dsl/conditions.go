package dsl

import "github.com/aretw0/animflow/pkg/domain"

// Is compares a bool parameter for equality.
func Is(param string, want bool) domain.ConditionRecord {
	return domain.ConditionRecord{Kind: domain.OperandBool, Op: domain.OpEqual, Parameter: param, Value: want}
}

// Int compares an int parameter.
func Int(param string, op domain.CompareOp, value int) domain.ConditionRecord {
	return domain.ConditionRecord{Kind: domain.OperandInt, Op: op, Parameter: param, Value: value}
}

// Float compares a float parameter with the default tolerance.
func Float(param string, op domain.CompareOp, value float64) domain.ConditionRecord {
	return domain.ConditionRecord{Kind: domain.OperandFloat, Op: op, Parameter: param, Value: value}
}

// Text compares a string parameter.
func Text(param string, op domain.CompareOp, value string) domain.ConditionRecord {
	return domain.ConditionRecord{Kind: domain.OperandString, Op: op, Parameter: param, Value: value}
}

// After holds once the current state has run for at least seconds.
func After(seconds float64) domain.ConditionRecord {
	return domain.ConditionRecord{Kind: domain.OperandTime, Op: domain.OpGreaterOrEqual, Value: seconds}
}

// Done holds once the animator reports the current clip complete.
func Done() domain.ConditionRecord {
	return domain.ConditionRecord{Kind: domain.OperandAnimationComplete, Op: domain.OpEqual, Value: true}
}

// Not flips the negation of c.
func Not(c domain.ConditionRecord) domain.ConditionRecord {
	c.Negate = !c.Negate
	return c
}

// All holds when every child holds.
func All(children ...domain.ConditionRecord) domain.ConditionRecord {
	return composite(domain.OperatorAnd, 0, children)
}

// Any holds when one child holds.
func Any(children ...domain.ConditionRecord) domain.ConditionRecord {
	return composite(domain.OperatorOr, 0, children)
}

// AtLeast holds when n or more children hold.
func AtLeast(n int, children ...domain.ConditionRecord) domain.ConditionRecord {
	return composite(domain.OperatorAtLeast, n, children)
}

// Exactly holds when exactly n children hold.
func Exactly(n int, children ...domain.ConditionRecord) domain.ConditionRecord {
	return composite(domain.OperatorExactly, n, children)
}

// AtMost holds when n or fewer children hold.
func AtMost(n int, children ...domain.ConditionRecord) domain.ConditionRecord {
	return composite(domain.OperatorAtMost, n, children)
}

func composite(op domain.Operator, n int, children []domain.ConditionRecord) domain.ConditionRecord {
	return domain.ConditionRecord{
		Kind:     domain.KindComposite,
		Operator: op,
		Count:    n,
		Children: append([]domain.ConditionRecord(nil), children...),
	}
}
