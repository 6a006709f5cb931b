package compiler

import (
	"github.com/aretw0/animflow/internal/runtime"
	"github.com/aretw0/animflow/pkg/domain"
)

// StateFactory instantiates the runtime state for an authored record.
type StateFactory func(rec domain.StateRecord) runtime.State

// DefaultFactories returns the factories for the built-in variants.
func DefaultFactories() map[domain.Variant]StateFactory {
	return map[domain.Variant]StateFactory{
		domain.VariantLooping:   newLooping,
		domain.VariantOneTime:   newOneTime,
		domain.VariantHoldFrame: newHoldFrame,
	}
}

func newLooping(rec domain.StateRecord) runtime.State {
	return runtime.NewLoopingState(rec.ID, rec.AnimationName)
}

func newOneTime(rec domain.StateRecord) runtime.State {
	return runtime.NewOneTimeState(rec.ID, rec.AnimationName)
}

func newHoldFrame(rec domain.StateRecord) runtime.State {
	return runtime.NewHoldFrameState(rec.ID, rec.AnimationName, rec.HoldFrame)
}
