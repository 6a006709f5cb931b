package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Mismatch is a declared parameter whose held value does not fit its type.
type Mismatch struct {
	Param string
	Want  string
	// Value is nil when the parameter is not held at all.
	Value any
}

func (m *Mismatch) Error() string {
	if m.Value == nil {
		return fmt.Sprintf("parameter %q: not set, want %s", m.Param, m.Want)
	}
	return fmt.Sprintf("parameter %q: want %s, holds %T(%v)", m.Param, m.Want, m.Value, m.Value)
}

// CheckError collects the mismatches found by Check.
type CheckError struct {
	Mismatches []*Mismatch
}

func (e *CheckError) Error() string {
	if len(e.Mismatches) == 1 {
		return e.Mismatches[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d parameter mismatches:", len(e.Mismatches))
	for _, m := range e.Mismatches {
		b.WriteString("\n  ")
		b.WriteString(m.Error())
	}
	return b.String()
}

func (e *CheckError) Unwrap() []error {
	out := make([]error, len(e.Mismatches))
	for i, m := range e.Mismatches {
		out[i] = m
	}
	return out
}

// Mismatches returns the mismatches carried by err, or nil.
func Mismatches(err error) []*Mismatch {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Mismatches
	}
	return nil
}
