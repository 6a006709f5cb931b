package timeline

import (
	"io"
	"log/slog"

	"github.com/aretw0/animflow/pkg/ports"
)

// DefaultFPS is used for clips declared without a frame rate.
const DefaultFPS = 12.0

// Clip describes one animation of a sprite sheet.
type Clip struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Frames int     `json:"frames" yaml:"frames" toml:"frames"`
	FPS    float64 `json:"fps" yaml:"fps" toml:"fps"`
	Loop   bool    `json:"loop" yaml:"loop" toml:"loop"`
}

// Animator is a software ports.AnimatorAdapter. It keeps no images; it only
// advances frame indices as Advance is called, which is enough to drive a flow
// headless (tests, simulations, servers).
type Animator struct {
	clips map[string]Clip

	current  string
	frame    int
	timer    float64
	playing  bool
	paused   bool
	looping  bool
	complete bool

	callbacks map[ports.CallbackID]ports.CompletionFunc
	order     []ports.CallbackID
	nextID    ports.CallbackID

	logger *slog.Logger
}

// Option configures an Animator.
type Option func(*Animator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Animator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an animator that knows clips.
func New(clips []Clip, opts ...Option) *Animator {
	a := &Animator{
		clips:     make(map[string]Clip),
		callbacks: make(map[ports.CallbackID]ports.CompletionFunc),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	for _, c := range clips {
		a.AddClip(c)
	}
	return a
}

// AddClip registers or replaces a clip.
func (a *Animator) AddClip(c Clip) {
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	a.clips[c.Name] = c
}

// Play restarts playback of a clip from frame 0. Unknown clips are tracked by
// name but never advance.
func (a *Animator) Play(name string) {
	clip, ok := a.clips[name]
	if !ok {
		a.logger.Warn("playing unknown clip", "animation", name)
	}
	a.current = name
	a.frame = 0
	a.timer = 0
	a.playing = true
	a.paused = false
	a.complete = false
	a.looping = clip.Loop
}

func (a *Animator) SetLooping(loop bool) { a.looping = loop }
func (a *Animator) Pause()               { a.paused = true }
func (a *Animator) Resume()              { a.paused = false }

// SetCurrentFrame seeks within the current clip, clamping to its frame range.
func (a *Animator) SetCurrentFrame(frame int) {
	clip, ok := a.clips[a.current]
	if !ok {
		return
	}
	if frame < 0 {
		frame = 0
	}
	if frame >= clip.Frames {
		frame = clip.Frames - 1
	}
	a.frame = frame
	a.timer = 0
	a.complete = false
	a.playing = true
}

// Advance moves playback forward by dt seconds. A non-looping clip stops on
// its last frame, becomes complete, and notifies callbacks once.
func (a *Animator) Advance(dt float64) {
	if !a.playing || a.paused || dt <= 0 {
		return
	}
	clip, ok := a.clips[a.current]
	if !ok {
		return
	}

	spf := 1 / clip.FPS
	a.timer += dt
	for a.timer >= spf {
		a.timer -= spf
		a.frame++
		if a.frame < clip.Frames {
			continue
		}
		if a.looping {
			a.frame = 0
			continue
		}
		a.frame = clip.Frames - 1
		a.timer = 0
		a.playing = false
		a.complete = true
		a.notify(clip.Name)
		return
	}
}

func (a *Animator) notify(name string) {
	// Iterate a snapshot so callbacks may unregister themselves or others.
	ids := append([]ports.CallbackID(nil), a.order...)
	for _, id := range ids {
		if fn, ok := a.callbacks[id]; ok {
			fn(name)
		}
	}
}

// RegisterCompletionCallback adds fn and returns its handle.
func (a *Animator) RegisterCompletionCallback(fn ports.CompletionFunc) ports.CallbackID {
	if fn == nil {
		return 0
	}
	a.nextID++
	a.callbacks[a.nextID] = fn
	a.order = append(a.order, a.nextID)
	return a.nextID
}

// UnregisterCompletionCallback removes a callback. Unknown ids are ignored.
func (a *Animator) UnregisterCompletionCallback(id ports.CallbackID) {
	if _, ok := a.callbacks[id]; !ok {
		return
	}
	delete(a.callbacks, id)
	for i, v := range a.order {
		if v == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *Animator) IsAnimationComplete() bool    { return a.complete }
func (a *Animator) CurrentAnimationName() string { return a.current }

// Frame returns the current frame index.
func (a *Animator) Frame() int { return a.frame }

// Paused reports whether playback is paused.
func (a *Animator) Paused() bool { return a.paused }

// Looping reports whether the current clip loops.
func (a *Animator) Looping() bool { return a.looping }

// Callbacks returns the number of registered completion callbacks.
func (a *Animator) Callbacks() int { return len(a.callbacks) }
