package compiler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/animflow/internal/runtime"
	"github.com/aretw0/animflow/pkg/condition"
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/params"
	"github.com/google/uuid"
)

// FlowGraph is an authored graph on its way to a controller. Validate repairs
// the records in place (on a private copy); Build turns them into runtime
// states owned by a controller.
type FlowGraph struct {
	graph     *domain.Graph
	initialID string

	registry   *params.Registry
	conditions [][]condition.Condition

	factories map[domain.Variant]StateFactory
	newID     func() string
	epsilon   float64
	logger    *slog.Logger
}

// Option configures a FlowGraph.
type Option func(*FlowGraph)

// WithLogger sets the structured logger diagnostics are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FlowGraph) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithIDGenerator replaces the generator used for fresh state ids.
func WithIDGenerator(gen func() string) Option {
	return func(f *FlowGraph) {
		if gen != nil {
			f.newID = gen
		}
	}
}

// WithEpsilon sets the tolerance applied to float and time leaves that do not
// declare their own.
func WithEpsilon(eps float64) Option {
	return func(f *FlowGraph) {
		if eps > 0 {
			f.epsilon = eps
		}
	}
}

// WithStateFactory registers or overrides the factory for a variant.
func WithStateFactory(v domain.Variant, fn StateFactory) Option {
	return func(f *FlowGraph) {
		if fn != nil {
			f.factories[v] = fn
		}
	}
}

// New wraps a copy of g. The caller's records are never modified.
func New(g *domain.Graph, opts ...Option) *FlowGraph {
	if g == nil {
		g = &domain.Graph{}
	}
	f := &FlowGraph{
		graph:     g.Clone(),
		factories: DefaultFactories(),
		newID:     func() string { return "state-" + uuid.NewString() },
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Validate repairs the graph and reports every issue found. It never fails and
// is idempotent: a second call on a repaired graph reports only the issues it
// cannot repair (unknown variants and conditions, parameter warnings).
//
//   - empty or duplicate state ids are replaced with fresh ones
//   - with no initial state, the first declared state becomes initial
//   - with several, only the first keeps the flag
//   - transitions whose endpoints are not known states are dropped
func (f *FlowGraph) Validate() []domain.Diagnostic {
	var diags []domain.Diagnostic
	report := func(d domain.Diagnostic) {
		f.logger.Warn(d.Message, "code", string(d.Code), "subject", d.Subject)
		diags = append(diags, d)
	}

	known := f.repairIDs(report)
	f.repairInitial(report)

	for _, s := range f.graph.States {
		if _, ok := f.factories[s.Variant]; !ok {
			report(domain.Diagnostic{
				Code:    domain.DiagUnknownVariant,
				Subject: s.ID,
				Message: fmt.Sprintf("unknown variant %q, using %s", s.Variant, domain.VariantOneTime),
			})
		}
	}

	kept := f.graph.Transitions[:0]
	for _, t := range f.graph.Transitions {
		if !known[t.FromID] || !known[t.ToID] {
			report(domain.Diagnostic{
				Code:    domain.DiagDanglingTransition,
				Subject: t.FromID + "->" + t.ToID,
				Message: "transition references an unknown state, dropped",
			})
			continue
		}
		kept = append(kept, t)
	}
	f.graph.Transitions = kept

	registry, paramDiags := params.RegistryFromRecords(f.graph.Parameters)
	for _, d := range paramDiags {
		report(d)
	}
	f.registry = registry

	f.conditions = make([][]condition.Condition, len(f.graph.Transitions))
	for i, t := range f.graph.Transitions {
		subject := fmt.Sprintf("%s->%s", t.FromID, t.ToID)
		conds, condDiags := condition.CompileAll(t.Conditions, subject)
		for _, d := range condDiags {
			report(d)
		}
		for j, c := range conds {
			f.checkParameters(c, fmt.Sprintf("%s[%d]", subject, j), report)
		}
		f.conditions[i] = conds
	}

	return diags
}

func (f *FlowGraph) repairIDs(report func(domain.Diagnostic)) map[string]bool {
	known := make(map[string]bool, len(f.graph.States))
	taken := make(map[string]bool, len(f.graph.States))
	for _, s := range f.graph.States {
		taken[s.ID] = true
	}
	for i := range f.graph.States {
		s := &f.graph.States[i]
		code := domain.DiagnosticCode("")
		switch {
		case s.ID == "":
			code = domain.DiagEmptyID
		case known[s.ID]:
			code = domain.DiagDuplicateID
		}
		if code != "" {
			old := s.ID
			s.ID = f.freshID(taken)
			report(domain.Diagnostic{
				Code:    code,
				Subject: s.ID,
				Message: fmt.Sprintf("state %d id %q replaced", i, old),
			})
		}
		known[s.ID] = true
	}
	return known
}

func (f *FlowGraph) freshID(taken map[string]bool) string {
	for {
		id := f.newID()
		if id != "" && !taken[id] {
			taken[id] = true
			return id
		}
	}
}

func (f *FlowGraph) repairInitial(report func(domain.Diagnostic)) {
	f.initialID = ""
	for i := range f.graph.States {
		s := &f.graph.States[i]
		if !s.IsInitial {
			continue
		}
		if f.initialID == "" {
			f.initialID = s.ID
			continue
		}
		s.IsInitial = false
		report(domain.Diagnostic{
			Code:    domain.DiagMultipleInitial,
			Subject: s.ID,
			Message: fmt.Sprintf("initial flag cleared, %q is initial", f.initialID),
		})
	}
	if f.initialID == "" && len(f.graph.States) > 0 {
		first := &f.graph.States[0]
		first.IsInitial = true
		f.initialID = first.ID
		report(domain.Diagnostic{
			Code:    domain.DiagNoInitial,
			Subject: first.ID,
			Message: "no initial state flagged, using the first declared state",
		})
	}
}

// checkParameters compares the leaves of c with the declared parameters.
// Graphs without declarations are not checked.
func (f *FlowGraph) checkParameters(c condition.Condition, subject string, report func(domain.Diagnostic)) {
	if len(f.graph.Parameters) == 0 {
		return
	}
	condition.Walk(c, func(l *condition.Leaf) {
		want := condition.OperandType(l.Kind)
		if want == nil || l.Parameter == "" || reserved(l.Parameter) {
			return
		}
		decl, ok := f.registry.Lookup(l.Parameter)
		if !ok {
			report(domain.Diagnostic{
				Code:    domain.DiagUndeclaredParam,
				Subject: subject,
				Message: fmt.Sprintf("parameter %q is not declared", l.Parameter),
			})
			return
		}
		if decl.Type.Kind() != want.Kind() {
			report(domain.Diagnostic{
				Code:    domain.DiagParamTypeMismatch,
				Subject: subject,
				Message: fmt.Sprintf("parameter %q is declared %s but compared as %s", l.Parameter, decl.Type.Name(), want.Name()),
			})
		}
	})
}

func reserved(name string) bool {
	return name == domain.ParamStateTime || name == domain.ParamAnimationComplete
}

// Build validates the graph and installs it on c, replacing whatever c held.
// Only a nil controller is an error; authoring problems are repaired and
// returned as diagnostics.
func (f *FlowGraph) Build(c *runtime.Controller) ([]domain.Diagnostic, error) {
	if c == nil {
		return nil, fmt.Errorf("build graph %q: %w", f.graph.Name, domain.ErrNilController)
	}
	c.ClearStates()
	diags := f.Validate()

	states := make(map[string]runtime.State, len(f.graph.States))
	for _, rec := range f.graph.States {
		s := f.newState(rec)
		c.Register(s)
		states[rec.ID] = s
	}

	for i, t := range f.graph.Transitions {
		conds := f.conditions[i]
		f.applyEpsilon(conds)
		states[t.FromID].AddTransition(runtime.NewTransition(t.ToID, conds...))
	}

	c.SetRegistry(f.registry)
	c.SetInitialState(f.initialID)

	f.logger.Debug("graph built",
		"graph", f.graph.Name,
		"states", len(f.graph.States),
		"transitions", len(f.graph.Transitions),
		"initial", f.initialID,
		"diagnostics", len(diags))
	return diags, nil
}

func (f *FlowGraph) newState(rec domain.StateRecord) runtime.State {
	factory, ok := f.factories[rec.Variant]
	if !ok {
		factory = f.factories[domain.VariantOneTime]
		if factory == nil {
			factory = newOneTime
		}
	}
	return factory(rec)
}

func (f *FlowGraph) applyEpsilon(conds []condition.Condition) {
	if f.epsilon <= 0 {
		return
	}
	for _, c := range conds {
		condition.Walk(c, func(l *condition.Leaf) {
			if l.Epsilon <= 0 && (l.Kind == domain.OperandFloat || l.Kind == domain.OperandTime) {
				l.Epsilon = f.epsilon
			}
		})
	}
}

// Graph returns the working copy of the records, as repaired by the last Validate.
func (f *FlowGraph) Graph() *domain.Graph {
	return f.graph
}

// InitialStateID returns the initial state chosen by the last Validate.
func (f *FlowGraph) InitialStateID() string {
	return f.initialID
}

// Registry returns the parameter declarations of the last Validate.
func (f *FlowGraph) Registry() *params.Registry {
	return f.registry
}
