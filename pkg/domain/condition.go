package domain

// OperandKind selects how a leaf condition reads and compares its operand.
type OperandKind string

const (
	OperandBool              OperandKind = "bool"
	OperandInt               OperandKind = "int"
	OperandFloat             OperandKind = "float"
	OperandString            OperandKind = "string"
	OperandTime              OperandKind = "time"
	OperandAnimationComplete OperandKind = "animationComplete"

	// KindComposite marks a ConditionRecord as a composite node.
	KindComposite OperandKind = "composite"
)

// CompareOp is the comparison applied by a leaf condition.
type CompareOp string

const (
	OpEqual          CompareOp = "=="
	OpNotEqual       CompareOp = "!="
	OpGreater        CompareOp = ">"
	OpLess           CompareOp = "<"
	OpGreaterOrEqual CompareOp = ">="
	OpLessOrEqual    CompareOp = "<="

	// String-only operators.
	OpEqualFold  CompareOp = "equals_ignore_case"
	OpContains   CompareOp = "contains"
	OpStartsWith CompareOp = "starts_with"
	OpEndsWith   CompareOp = "ends_with"
)

// Operator is the boolean combinator of a composite condition.
type Operator string

const (
	OperatorAnd     Operator = "AND"
	OperatorOr      Operator = "OR"
	OperatorAtLeast Operator = "AT_LEAST"
	OperatorExactly Operator = "EXACTLY"
	OperatorAtMost  Operator = "AT_MOST"
)

// ConditionRecord is the authored form of a condition tree node.
// Leaf records use Kind/Op/Parameter/Value; composite records (Kind == KindComposite)
// use Operator/Count/Children.
type ConditionRecord struct {
	Kind      OperandKind `json:"kind" yaml:"kind" toml:"kind" mapstructure:"kind"`
	Op        CompareOp   `json:"op,omitempty" yaml:"op,omitempty" toml:"op,omitempty" mapstructure:"op"`
	Parameter string      `json:"parameter,omitempty" yaml:"parameter,omitempty" toml:"parameter,omitempty" mapstructure:"parameter"`
	Value     any         `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty" mapstructure:"value"`
	Epsilon   float64     `json:"epsilon,omitempty" yaml:"epsilon,omitempty" toml:"epsilon,omitempty" mapstructure:"epsilon"`
	Negate    bool        `json:"negate,omitempty" yaml:"negate,omitempty" toml:"negate,omitempty" mapstructure:"negate"`

	Operator Operator          `json:"operator,omitempty" yaml:"operator,omitempty" toml:"operator,omitempty" mapstructure:"operator"`
	Count    int               `json:"count,omitempty" yaml:"count,omitempty" toml:"count,omitempty" mapstructure:"count"`
	Children []ConditionRecord `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty" mapstructure:"children"`
}
