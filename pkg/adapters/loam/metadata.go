package loam

import (
	"github.com/aretw0/animflow/pkg/domain"
)

// GraphMetadata is the frontmatter of a graph document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type GraphMetadata struct {
	Name        string               `json:"name" mapstructure:"name"`
	Parameters  []ParameterMetadata  `json:"parameters" mapstructure:"parameters"`
	States      []StateMetadata      `json:"states" mapstructure:"states"`
	Transitions []TransitionMetadata `json:"transitions" mapstructure:"transitions"`
}

type ParameterMetadata struct {
	Name    string `json:"name" mapstructure:"name"`
	Type    string `json:"type" mapstructure:"type"`
	Default any    `json:"default,omitempty" mapstructure:"default"`
}

type StateMetadata struct {
	ID        string `json:"id" mapstructure:"id"`
	Variant   string `json:"variant" mapstructure:"variant"`
	Animation string `json:"animation" mapstructure:"animation"`
	HoldFrame int    `json:"hold_frame,omitempty" mapstructure:"hold_frame"`
	Initial   bool   `json:"initial,omitempty" mapstructure:"initial"`
}

// TransitionMetadata accepts "to" or the longer "to_state".
type TransitionMetadata struct {
	From       string                   `json:"from" mapstructure:"from"`
	To         string                   `json:"to" mapstructure:"to"`
	ToFull     string                   `json:"to_state,omitempty" mapstructure:"to_state"`
	Conditions []domain.ConditionRecord `json:"conditions,omitempty" mapstructure:"conditions"`
}

// ToGraph converts the frontmatter into an authored graph.
func (m GraphMetadata) ToGraph() *domain.Graph {
	g := &domain.Graph{Name: m.Name}
	for _, p := range m.Parameters {
		g.Parameters = append(g.Parameters, domain.ParameterRecord{Name: p.Name, Type: p.Type, Default: p.Default})
	}
	for _, s := range m.States {
		g.States = append(g.States, domain.StateRecord{
			ID:            s.ID,
			Variant:       domain.Variant(s.Variant),
			AnimationName: s.Animation,
			HoldFrame:     s.HoldFrame,
			IsInitial:     s.Initial,
		})
	}
	for _, t := range m.Transitions {
		to := t.To
		if to == "" {
			to = t.ToFull
		}
		g.Transitions = append(g.Transitions, domain.TransitionRecord{
			FromID:     t.From,
			ToID:       to,
			Conditions: t.Conditions,
		})
	}
	return g
}
