package schema

import (
	"fmt"
	"math"

	"github.com/mitchellh/mapstructure"
)

// Kind is the runtime type recorded for a parameter value.
type Kind string

const (
	KindUnknown Kind = ""
	KindBool    Kind = "bool"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindString  Kind = "string"
)

// KindOf reports the Kind of a Go value. Sized integer and float types collapse
// into KindInt and KindFloat.
func KindOf(value any) Kind {
	switch value.(type) {
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	default:
		return KindUnknown
	}
}

// Type defines the contract for parameter value validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Kind returns the runtime kind values of this type are stored as.
	Kind() Kind
	// Validate checks if a value conforms to this type.
	Validate(value any) error
	// Zero returns the default value of this type.
	Zero() any
	// Coerce converts loosely typed authored input (e.g. JSON numbers, "true")
	// into the canonical Go value for this type.
	Coerce(value any) (any, error)
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }
func (t *StringType) Kind() Kind   { return KindString }
func (t *StringType) Zero() any    { return "" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

func (t *StringType) Coerce(value any) (any, error) {
	var out string
	if err := mapstructure.WeakDecode(value, &out); err != nil {
		return nil, fmt.Errorf("coerce to string: %w", err)
	}
	return out, nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }
func (t *IntType) Kind() Kind   { return KindInt }
func (t *IntType) Zero() any    { return 0 }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == math.Trunc(v) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

func (t *IntType) Coerce(value any) (any, error) {
	switch v := value.(type) {
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return nil, fmt.Errorf("coerce to int: %v is not a whole number", v)
		}
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("coerce to int: %v is not a whole number", v)
		}
	}
	var out int
	if err := mapstructure.WeakDecode(value, &out); err != nil {
		return nil, fmt.Errorf("coerce to int: %w", err)
	}
	return out, nil
}

// FloatType validates floating-point values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }
func (t *FloatType) Kind() Kind   { return KindFloat }
func (t *FloatType) Zero() any    { return 0.0 }

func (t *FloatType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64:
		return nil
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
}

func (t *FloatType) Coerce(value any) (any, error) {
	var out float64
	if err := mapstructure.WeakDecode(value, &out); err != nil {
		return nil, fmt.Errorf("coerce to float: %w", err)
	}
	return out, nil
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }
func (t *BoolType) Kind() Kind   { return KindBool }
func (t *BoolType) Zero() any    { return false }

func (t *BoolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

func (t *BoolType) Coerce(value any) (any, error) {
	var out bool
	if err := mapstructure.WeakDecode(value, &out); err != nil {
		return nil, fmt.Errorf("coerce to bool: %w", err)
	}
	return out, nil
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// ForKind returns the Type stored as k, or nil for KindUnknown.
func ForKind(k Kind) Type {
	switch k {
	case KindBool:
		return Bool()
	case KindInt:
		return Int()
	case KindFloat:
		return Float()
	case KindString:
		return String()
	default:
		return nil
	}
}

// ParseType converts a string type name to a Type.
// Supports "string", "int", "float" and "bool".
func ParseType(typeStr string) (Type, error) {
	t := ForKind(Kind(typeStr))
	if t == nil {
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
	return t, nil
}
