package ports

// CallbackID identifies a registered completion callback.
type CallbackID uint64

// CompletionFunc is invoked when a non-looping clip reaches its last frame.
// It receives the name of the clip that completed.
type CompletionFunc func(animation string)

// AnimatorAdapter abstracts a concrete animation playback backend.
// Callbacks fire synchronously on the goroutine driving the backend, which must
// be the goroutine that ticks the controller. Implementations must tolerate a
// callback unregistering itself while it runs.
type AnimatorAdapter interface {
	Play(animation string)
	SetLooping(loop bool)
	Pause()
	Resume()
	SetCurrentFrame(frame int)

	RegisterCompletionCallback(fn CompletionFunc) CallbackID
	UnregisterCompletionCallback(id CallbackID)

	IsAnimationComplete() bool
	CurrentAnimationName() string
}

// NopAnimator is an inert AnimatorAdapter. The runtime substitutes it for a
// missing adapter so every dependent call becomes a no-op.
type NopAnimator struct{}

func (NopAnimator) Play(string)                                          {}
func (NopAnimator) SetLooping(bool)                                      {}
func (NopAnimator) Pause()                                               {}
func (NopAnimator) Resume()                                              {}
func (NopAnimator) SetCurrentFrame(int)                                  {}
func (NopAnimator) RegisterCompletionCallback(CompletionFunc) CallbackID { return 0 }
func (NopAnimator) UnregisterCompletionCallback(CallbackID)              {}
func (NopAnimator) IsAnimationComplete() bool                            { return false }
func (NopAnimator) CurrentAnimationName() string                         { return "" }

// OrNop returns a, or NopAnimator when a is nil.
func OrNop(a AnimatorAdapter) AnimatorAdapter {
	if a == nil {
		return NopAnimator{}
	}
	return a
}
