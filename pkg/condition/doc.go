/*
Package condition implements the rule evaluator used to guard transitions.

A condition tree is built from Leaf comparisons and Composite combinators
(AND, OR, AT_LEAST, EXACTLY, AT_MOST, each optionally negated). Trees are
immutable once built and evaluate as a pure function of a params.Store and a
ports.AnimatorAdapter. Lookups that miss degrade to false instead of failing.

Trees are usually compiled from authored records:

	cond, diags := condition.Compile(domain.ConditionRecord{
		Kind:      domain.OperandBool,
		Parameter: "IsMoving",
		Value:     true,
	}, "idle->run")

or assembled directly:

	cond := condition.Or(
		condition.Bool("IsMoving", domain.OpEqual, true),
		condition.TimeInState(domain.OpGreaterOrEqual, 2),
	)
*/
package condition
