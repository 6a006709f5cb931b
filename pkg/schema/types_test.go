package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		value any
		want  Kind
	}{
		{true, KindBool},
		{42, KindInt},
		{int64(42), KindInt},
		{uint8(1), KindInt},
		{3.14, KindFloat},
		{float32(1), KindFloat},
		{"run", KindString},
		{nil, KindUnknown},
		{[]int{1}, KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.value), "KindOf(%#v)", tt.value)
	}
}

func TestIntType(t *testing.T) {
	typ := Int()
	assert.Equal(t, "int", typ.Name())
	assert.Equal(t, 0, typ.Zero())

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int8(42), false},
		{int64(42), false},
		{float64(42), false},  // whole number
		{float64(42.5), true}, // not whole
		{"42", true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		assert.Equal(t, tt.wantErr, err != nil, "Validate(%v) error = %v", tt.value, err)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		in      any
		want    any
		wantErr bool
	}{
		{"json number to int", Int(), float64(3), 3, false},
		{"fractional float to int", Int(), 3.5, nil, true},
		{"numeric string to int", Int(), "7", 7, false},
		{"int to float", Float(), 2, 2.0, false},
		{"string to float", Float(), "1.5", 1.5, false},
		{"string to bool", Bool(), "true", true, false},
		{"int to bool", Bool(), 1, true, false},
		{"garbage to bool", Bool(), "maybe", nil, true},
		{"int to string", String(), 12, "12", false},
		{"string passthrough", String(), "Idle", "Idle", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.typ.Coerce(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseType(t *testing.T) {
	for _, name := range []string{"bool", "int", "float", "string"} {
		typ, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, name, typ.Name())
		assert.Equal(t, Kind(name), typ.Kind())
	}

	_, err := ParseType("vector2")
	assert.Error(t, err)
}
