package condition

import (
	"fmt"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/schema"
)

var leafOps = map[domain.OperandKind]map[domain.CompareOp]bool{
	domain.OperandBool:              orderedOps,
	domain.OperandInt:               orderedOps,
	domain.OperandFloat:             orderedOps,
	domain.OperandTime:              orderedOps,
	domain.OperandAnimationComplete: {domain.OpEqual: true, domain.OpNotEqual: true},
	domain.OperandString: {
		domain.OpEqual:      true,
		domain.OpNotEqual:   true,
		domain.OpEqualFold:  true,
		domain.OpContains:   true,
		domain.OpStartsWith: true,
		domain.OpEndsWith:   true,
	},
}

var orderedOps = map[domain.CompareOp]bool{
	domain.OpEqual:          true,
	domain.OpNotEqual:       true,
	domain.OpGreater:        true,
	domain.OpLess:           true,
	domain.OpGreaterOrEqual: true,
	domain.OpLessOrEqual:    true,
}

var operandTypes = map[domain.OperandKind]schema.Type{
	domain.OperandBool:              schema.Bool(),
	domain.OperandInt:               schema.Int(),
	domain.OperandFloat:             schema.Float(),
	domain.OperandTime:              schema.Float(),
	domain.OperandString:            schema.String(),
	domain.OperandAnimationComplete: schema.Bool(),
}

// OperandType returns the parameter type a leaf kind reads, or nil for kinds
// that do not read a named parameter.
func OperandType(kind domain.OperandKind) schema.Type {
	switch kind {
	case domain.OperandTime, domain.OperandAnimationComplete:
		return nil
	}
	return operandTypes[kind]
}

// Compile builds a condition tree from its authored record. Records that cannot
// be compiled become Never and are reported; compilation itself never fails.
// subject prefixes the diagnostics (e.g. "idle->run[0]").
func Compile(rec domain.ConditionRecord, subject string) (Condition, []domain.Diagnostic) {
	if rec.Kind == domain.KindComposite {
		return compileComposite(rec, subject)
	}
	return compileLeaf(rec, subject)
}

// CompileAll compiles an ordered list of records.
func CompileAll(recs []domain.ConditionRecord, subject string) ([]Condition, []domain.Diagnostic) {
	out := make([]Condition, 0, len(recs))
	var diags []domain.Diagnostic
	for i, rec := range recs {
		c, d := Compile(rec, fmt.Sprintf("%s[%d]", subject, i))
		out = append(out, c)
		diags = append(diags, d...)
	}
	return out, diags
}

func compileComposite(rec domain.ConditionRecord, subject string) (Condition, []domain.Diagnostic) {
	switch rec.Operator {
	case domain.OperatorAnd, domain.OperatorOr:
	case domain.OperatorAtLeast, domain.OperatorExactly, domain.OperatorAtMost:
		if rec.Count < 0 {
			return fallback(subject, "negative count %d for %s", rec.Count, rec.Operator)
		}
	default:
		return fallback(subject, "unknown composite operator %q", rec.Operator)
	}

	children, diags := CompileAll(rec.Children, subject+".children")
	return &Composite{
		Operator: rec.Operator,
		Count:    rec.Count,
		Negate:   rec.Negate,
		Children: children,
	}, diags
}

func compileLeaf(rec domain.ConditionRecord, subject string) (Condition, []domain.Diagnostic) {
	ops, known := leafOps[rec.Kind]
	if !known {
		return fallback(subject, "unknown condition kind %q", rec.Kind)
	}

	op := rec.Op
	if op == "" {
		op = domain.OpEqual
	}
	if !ops[op] {
		return fallback(subject, "operator %q is not valid for %s", op, rec.Kind)
	}

	needsParam := OperandType(rec.Kind) != nil
	if needsParam && rec.Parameter == "" {
		return fallback(subject, "%s condition without parameter", rec.Kind)
	}

	raw := rec.Value
	if raw == nil {
		switch rec.Kind {
		case domain.OperandBool, domain.OperandAnimationComplete:
			// A bare flag reads as "is set".
			raw = true
		default:
			return fallback(subject, "%s condition without value", rec.Kind)
		}
	}

	operand, err := operandTypes[rec.Kind].Coerce(raw)
	if err != nil {
		return fallback(subject, "%s", err)
	}

	leaf := &Leaf{
		Kind:    rec.Kind,
		Op:      op,
		Operand: operand,
		Epsilon: rec.Epsilon,
		Negate:  rec.Negate,
	}
	if needsParam {
		leaf.Parameter = rec.Parameter
	}
	return leaf, nil
}

func fallback(subject, format string, args ...any) (Condition, []domain.Diagnostic) {
	return Never{}, []domain.Diagnostic{{
		Code:    domain.DiagUnknownCondition,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}}
}

// Walk calls fn for every leaf in the tree rooted at c.
func Walk(c Condition, fn func(*Leaf)) {
	switch v := c.(type) {
	case *Leaf:
		fn(v)
	case *Composite:
		for _, child := range v.Children {
			Walk(child, fn)
		}
	}
}
