package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/animflow/pkg/condition"
	"github.com/aretw0/animflow/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a graph.
// It applies semantic styling:
// - Initial: ((Circle))
// - Looping: ([Stadium])
// - HoldFrame: [[Subroutine]]
// - Default (OneTime): [Rectangle]
// Transition arrows are labelled with their guard; unconditional ones are plain.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if g == nil {
		return sb.String()
	}

	for _, s := range g.States {
		safeID := sanitizeMermaidID(s.ID)

		opener, closer := "[", "]"
		switch {
		case s.IsInitial:
			opener, closer = "((", "))"
		case s.Variant == domain.VariantLooping:
			opener, closer = "([", "])"
		case s.Variant == domain.VariantHoldFrame:
			opener, closer = "[[", "]]"
		}

		text := s.ID
		if s.AnimationName != "" && s.AnimationName != s.ID {
			text += " <br/> ▶ " + s.AnimationName
		}
		if s.Variant == domain.VariantHoldFrame {
			text += fmt.Sprintf(" @%d", s.HoldFrame)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escape(text), closer))
	}

	for _, t := range g.Transitions {
		from, to := sanitizeMermaidID(t.FromID), sanitizeMermaidID(t.ToID)
		arrow := "-->"
		if len(t.Conditions) > 0 {
			conds, _ := condition.CompileAll(t.Conditions, t.FromID+"->"+t.ToID)
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(condition.Describe(conds)))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentState)))
		}
	}

	return sb.String()
}

// escape replaces double quotes, which would end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
