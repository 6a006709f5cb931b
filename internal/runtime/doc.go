// Package runtime implements the per-tick state machine: state variants, their
// outgoing transitions, and the Controller that owns the current state.
package runtime
