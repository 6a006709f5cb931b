package dsl

import (
	"fmt"

	"github.com/aretw0/animflow/pkg/adapters/memory"
	"github.com/aretw0/animflow/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	name        string
	params      []domain.ParameterRecord
	states      map[string]*StateBuilder
	order       []string
	transitions []domain.TransitionRecord
}

// New creates a new graph builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[string]*StateBuilder),
	}
}

// Param declares a parameter with its type name ("bool", "int", "float", "string")
// and default value.
func (b *Builder) Param(name, typ string, def any) *Builder {
	b.params = append(b.params, domain.ParameterRecord{Name: name, Type: typ, Default: def})
	return b
}

// Add creates a new state in the graph, a OneTime state playing a clip named
// like the state until configured otherwise.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{
		state: domain.StateRecord{
			ID:            id,
			Variant:       domain.VariantOneTime,
			AnimationName: id,
		},
		builder: b,
	}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Graph returns the authored graph. States and transitions keep declaration order.
func (b *Builder) Graph() *domain.Graph {
	g := &domain.Graph{
		Name:        b.name,
		Parameters:  append([]domain.ParameterRecord(nil), b.params...),
		Transitions: append([]domain.TransitionRecord(nil), b.transitions...),
	}
	for _, id := range b.order {
		g.States = append(g.States, b.states[id].state)
	}
	return g.Clone()
}

// Build compiles the graph into a MemoryLoader.
func (b *Builder) Build() (*memory.Loader, error) {
	if b.name == "" {
		return nil, fmt.Errorf("graph name is empty")
	}
	loader, err := memory.NewFromGraphs(b.Graph())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
