// Package params implements the parameter store read by conditions and written
// by states and hosts, plus the registry of authored parameter declarations.
//
// Typed reads go through the generic helpers:
//
//	store.Set("Speed", 3.5)
//	speed := params.Get[float64](store, "Speed")
//
// A read of a missing or differently typed parameter returns the zero value.
package params
