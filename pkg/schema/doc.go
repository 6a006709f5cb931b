// Package schema provides the parameter type system of an animation flow.
//
// It defines the four value types a parameter can hold (bool, int, float, string),
// how a runtime value maps to one of them, and how loosely typed authored input
// (JSON numbers, YAML strings) is coerced into the canonical Go value.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "IsMoving": schema.Bool(),
//	    "Speed":    schema.Float(),
//	}
//
//	for _, m := range schema.Mismatches(schema.Check(s, store.Snapshot())) {
//	    log.Printf("%s holds %v, want %s", m.Param, m.Value, m.Want)
//	}
//
// Authored type names are parsed with ParseType.
package schema
