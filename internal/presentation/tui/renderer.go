package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It uses a dark theme by default, but could be configurable.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// ValidationReport formats the outcome of validating a graph as Markdown.
func ValidationReport(g *domain.Graph, diags []domain.Diagnostic) string {
	var sb strings.Builder
	name := g.Name
	if name == "" {
		name = "graph"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "%d states, %d transitions, %d parameters.\n\n",
		len(g.States), len(g.Transitions), len(g.Parameters))

	if len(diags) == 0 {
		sb.WriteString("No issues found.\n")
		return sb.String()
	}

	sb.WriteString("| Code | Subject | Message |\n")
	sb.WriteString("|---|---|---|\n")
	for _, d := range diags {
		fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", d.Code, cell(d.Subject), cell(d.Message))
	}
	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
