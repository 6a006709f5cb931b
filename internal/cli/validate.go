package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/animflow/internal/compiler"
	"github.com/aretw0/animflow/internal/presentation/tui"
	"github.com/aretw0/animflow/internal/validator"
	"github.com/aretw0/animflow/pkg/domain"
)

// ValidateOptions controls how a validation report is printed.
type ValidateOptions struct {
	Style  tui.Style
	Logger *slog.Logger
	// Render, when set, receives a Markdown report instead of the line output.
	Render func(string) (string, error)
}

// Diagnose runs the authoring checks and the reachability crawl over g.
func Diagnose(g *domain.Graph, logger *slog.Logger) []domain.Diagnostic {
	flow := compiler.New(g, compiler.WithLogger(logger))
	diags := flow.Validate()
	return append(diags, validator.ValidateGraph(flow.Graph(), flow.InitialStateID())...)
}

// Validate prints the diagnostics of g to w and returns them.
func Validate(w io.Writer, g *domain.Graph, opts ValidateOptions) ([]domain.Diagnostic, error) {
	diags := Diagnose(g, opts.Logger)

	if opts.Render != nil {
		out, err := opts.Render(tui.ValidationReport(g, diags))
		if err != nil {
			return diags, fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(w, out)
		return diags, nil
	}

	for _, d := range diags {
		fmt.Fprintln(w, opts.Style.Diagnostic(d))
	}
	if len(diags) == 0 {
		fmt.Fprintln(w, opts.Style.Success("Graph is valid! ✅"))
	}
	return diags, nil
}
