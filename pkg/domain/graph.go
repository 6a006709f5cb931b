package domain

// Variant constants define the playback behavior of a state.
const (
	// VariantLooping plays its clip on repeat.
	VariantLooping Variant = "Looping"
	// VariantOneTime plays its clip once and raises ParamAnimationComplete when done.
	VariantOneTime Variant = "OneTime"
	// VariantHoldFrame seeks to a single frame and pauses there.
	VariantHoldFrame Variant = "HoldFrame"
)

// Variant is the tag used by the state factory to pick a concrete implementation.
type Variant string

// Graph is the authored description of a flow, as populated by a loader.
// It is not validated; see compiler.FlowGraph.
type Graph struct {
	Name        string             `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Parameters  []ParameterRecord  `json:"parameters,omitempty" yaml:"parameters,omitempty" toml:"parameters,omitempty"`
	States      []StateRecord      `json:"states" yaml:"states" toml:"states"`
	Transitions []TransitionRecord `json:"transitions,omitempty" yaml:"transitions,omitempty" toml:"transitions,omitempty"`
}

// StateRecord represents one authored state.
type StateRecord struct {
	ID            string  `json:"id" yaml:"id" toml:"id"`
	Variant       Variant `json:"variant" yaml:"variant" toml:"variant"`
	AnimationName string  `json:"animation" yaml:"animation" toml:"animation"`

	// HoldFrame is only meaningful for VariantHoldFrame.
	HoldFrame int `json:"hold_frame,omitempty" yaml:"hold_frame,omitempty" toml:"hold_frame,omitempty"`

	IsInitial bool `json:"initial,omitempty" yaml:"initial,omitempty" toml:"initial,omitempty"`
}

// ParameterRecord declares a parameter, its type name ("bool", "int", "float", "string")
// and an optional default value.
type ParameterRecord struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Type    string `json:"type" yaml:"type" toml:"type"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
}

// Clone returns a deep copy of the graph so validation can rewrite ids
// without touching the caller's records.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{Name: g.Name}
	out.Parameters = append([]ParameterRecord(nil), g.Parameters...)
	out.States = append([]StateRecord(nil), g.States...)
	out.Transitions = make([]TransitionRecord, len(g.Transitions))
	for i, t := range g.Transitions {
		out.Transitions[i] = TransitionRecord{
			FromID:     t.FromID,
			ToID:       t.ToID,
			Conditions: cloneConditions(t.Conditions),
		}
	}
	return out
}

func cloneConditions(in []ConditionRecord) []ConditionRecord {
	if in == nil {
		return nil
	}
	out := make([]ConditionRecord, len(in))
	for i, c := range in {
		out[i] = c
		out[i].Children = cloneConditions(c.Children)
	}
	return out
}
