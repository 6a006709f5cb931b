package animflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/animflow/internal/compiler"
	"github.com/aretw0/animflow/internal/presentation/graph"
	"github.com/aretw0/animflow/internal/runtime"
	"github.com/aretw0/animflow/pkg/adapters/file"
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/params"
	"github.com/aretw0/animflow/pkg/ports"
)

// Engine is the high-level entry point for the animflow library.
// It owns one controller built from one graph and exposes the per-frame API
// a host needs: parameters in, Tick, current state out.
type Engine struct {
	controller  *runtime.Controller
	flow        *compiler.FlowGraph
	diagnostics []domain.Diagnostic
	visited     []string
	seen        map[string]bool
	transitions int
	last        domain.TransitionEvent

	loader   ports.GraphLoader
	source   string
	animator ports.AnimatorAdapter
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	epsilon  float64
	newID    func() string

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithAnimator sets the animation backend driven by the states.
// Without one the engine runs against ports.NopAnimator.
func WithAnimator(a ports.AnimatorAdapter) Option {
	return func(e *Engine) {
		e.animator = a
	}
}

// WithEpsilon sets the default tolerance of float and time comparisons.
func WithEpsilon(eps float64) Option {
	return func(e *Engine) {
		e.epsilon = eps
	}
}

// WithIDGenerator replaces the generator of ids for states authored without one.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// New builds an engine from an authored graph. Authoring problems are repaired
// and available from Diagnostics; New itself only fails on a nil graph.
func New(g *domain.Graph, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is required")
	}
	eng := &Engine{Name: g.Name, seen: make(map[string]bool)}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which would overwrite its default)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("graph", eng.Name)
	}

	hooks := eng.hooks
	userEnter := hooks.OnStateEnter
	hooks.OnStateEnter = func(ev *domain.StateEvent) {
		if !eng.seen[ev.StateID] {
			eng.seen[ev.StateID] = true
			eng.visited = append(eng.visited, ev.StateID)
		}
		if userEnter != nil {
			userEnter(ev)
		}
	}

	userTransition := hooks.OnTransition
	hooks.OnTransition = func(ev *domain.TransitionEvent) {
		eng.transitions++
		eng.last = *ev
		if userTransition != nil {
			userTransition(ev)
		}
	}

	eng.controller = runtime.NewController(eng.animator,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(hooks),
	)
	if err := eng.build(g); err != nil {
		return nil, err
	}
	return eng, nil
}

// NewFromLoader fetches the graph called name from loader and builds an engine.
// The loader is kept so Reload and Watch can use it.
func NewFromLoader(loader ports.GraphLoader, name string, opts ...Option) (*Engine, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	g, err := loader.GetGraph(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	eng, err := New(g, opts...)
	if err != nil {
		return nil, err
	}
	eng.loader = loader
	eng.source = name
	if eng.Name == "" {
		eng.Name = name
	}
	return eng, nil
}

// Open builds an engine from a YAML, JSON or TOML document.
func Open(path string, opts ...Option) (*Engine, error) {
	g, err := file.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(g, opts...)
}

func (e *Engine) build(g *domain.Graph) error {
	e.flow = compiler.New(g,
		compiler.WithLogger(e.logger),
		compiler.WithEpsilon(e.epsilon),
		compiler.WithIDGenerator(e.newID),
	)
	diags, err := e.flow.Build(e.controller)
	if err != nil {
		return err
	}
	e.diagnostics = diags
	return nil
}

// Start enters the initial state and fires the start hooks.
func (e *Engine) Start() error {
	e.visited = nil
	return e.controller.Start()
}

// Tick advances the flow by dt seconds. Call it once per frame.
func (e *Engine) Tick(dt float64) {
	e.controller.Tick(dt)
}

// ForceTransition jumps to id regardless of conditions. It returns false when
// id is not a state of the graph.
func (e *Engine) ForceTransition(id string) bool {
	return e.controller.ForceTransition(id)
}

// SetParameter writes a parameter read by the conditions.
func (e *Engine) SetParameter(name string, value any) {
	e.controller.SetParameter(name, value)
}

// GetParameter reads a parameter's raw value.
func (e *Engine) GetParameter(name string) (any, bool) {
	return e.controller.GetParameter(name)
}

// HasParameter reports whether a parameter has been written.
func (e *Engine) HasParameter(name string) bool {
	return e.controller.HasParameter(name)
}

// Get returns a parameter as T, or T's zero value when it is missing or holds
// another type.
func Get[T any](e *Engine, name string) T {
	return params.Get[T](e.controller.Store(), name)
}

// Lookup returns a parameter as T and whether it was present with that type.
func Lookup[T any](e *Engine, name string) (T, bool) {
	return params.Lookup[T](e.controller.Store(), name)
}

// CurrentStateID returns the current state, or "" before Start.
func (e *Engine) CurrentStateID() string {
	return e.controller.CurrentStateID()
}

// TimeInCurrentState returns the seconds spent in the current state.
func (e *Engine) TimeInCurrentState() float64 {
	return e.controller.TimeInCurrentState()
}

// Started reports whether the engine has a current state.
func (e *Engine) Started() bool {
	return e.controller.Started()
}

// States returns the state ids of the built graph in declaration order.
func (e *Engine) States() []string {
	return e.controller.States()
}

// InitialStateID returns the state Start enters.
func (e *Engine) InitialStateID() string {
	return e.controller.InitialStateID()
}

// Diagnostics returns the authoring issues repaired by the last build.
func (e *Engine) Diagnostics() []domain.Diagnostic {
	return append([]domain.Diagnostic(nil), e.diagnostics...)
}

// Transitions returns how many times the current state has been swapped,
// including the initial entry and self-transitions.
func (e *Engine) Transitions() int {
	return e.transitions
}

// LastTransition returns the most recent swap. It is the zero value before Start.
func (e *Engine) LastTransition() domain.TransitionEvent {
	return e.last
}

// Visited returns the states entered since the engine was built, each once,
// in order of first entry.
func (e *Engine) Visited() []string {
	return append([]string(nil), e.visited...)
}

// CheckParameters compares the held parameters against the graph's
// declarations and reports each mismatch as a diagnostic.
func (e *Engine) CheckParameters() []domain.Diagnostic {
	return e.controller.Registry().Mismatches(e.controller.Store())
}

// Inspect returns the validated graph for visualization or introspection tools.
func (e *Engine) Inspect() *domain.Graph {
	return e.flow.Graph().Clone()
}

// Mermaid renders the validated graph, highlighting visited and current states.
func (e *Engine) Mermaid() string {
	var overlay *graph.GraphOverlay
	if e.Started() {
		overlay = &graph.GraphOverlay{
			VisitedStates: e.visited,
			CurrentState:  e.CurrentStateID(),
		}
	}
	return graph.GenerateMermaid(e.flow.Graph(), overlay)
}

// ClearStates exits the current state and drops the built graph. Parameters are kept.
func (e *Engine) ClearStates() {
	e.controller.ClearStates()
}

// Reload fetches the graph again from the loader and rebuilds it. A running
// engine resumes in the state it was in when that state still exists, and
// restarts from the initial state otherwise.
func (e *Engine) Reload() error {
	if e.loader == nil {
		return fmt.Errorf("engine has no loader to reload from")
	}
	g, err := e.loader.GetGraph(e.source)
	if err != nil {
		return fmt.Errorf("failed to reload graph: %w", err)
	}

	wasRunning := e.Started()
	previous := e.CurrentStateID()
	if err := e.build(g); err != nil {
		return err
	}
	if !wasRunning {
		return nil
	}
	if _, ok := e.controller.State(previous); ok {
		e.controller.ForceTransition(previous)
		return nil
	}
	e.logger.Warn("state removed by reload, restarting", "state", previous)
	return e.Start()
}

// Watch returns a channel that signals when the underlying graph changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the GraphLoader the engine was created from, if any.
func (e *Engine) Loader() ports.GraphLoader {
	return e.loader
}
