package validator

import (
	"fmt"

	"github.com/aretw0/animflow/pkg/domain"
)

// Reachable crawls the transitions of g breadth-first from startID and returns
// the set of state ids it can reach. Transition conditions are ignored.
func Reachable(g *domain.Graph, startID string) map[string]bool {
	edges := make(map[string][]string)
	for _, t := range g.Transitions {
		edges[t.FromID] = append(edges[t.FromID], t.ToID)
	}

	visited := make(map[string]bool)
	queue := []string{startID}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		for _, target := range edges[currentID] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}
	return visited
}

// ValidateGraph reports states that can never be entered through a transition
// from startID. ForceTransition can still reach them, so these are warnings.
// g is expected to be validated already (see compiler.FlowGraph).
func ValidateGraph(g *domain.Graph, startID string) []domain.Diagnostic {
	if g == nil || startID == "" {
		return nil
	}
	reached := Reachable(g, startID)

	var diags []domain.Diagnostic
	for _, s := range g.States {
		if reached[s.ID] {
			continue
		}
		diags = append(diags, domain.Diagnostic{
			Code:    domain.DiagUnreachable,
			Subject: s.ID,
			Message: fmt.Sprintf("not reachable from %q", startID),
		})
	}
	return diags
}
