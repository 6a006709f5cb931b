package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/animflow"
	"github.com/aretw0/animflow/internal/presentation/tui"
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// SimulateOptions configures a headless run of a graph.
type SimulateOptions struct {
	Ticks int
	DT    float64
	// Sets are "name=value@tick" parameter writes.
	Sets    []string
	Clips   ClipOptions
	Metrics bool
	Style   tui.Style
	Logger  *slog.Logger
}

// Simulate runs g against a timeline animator and prints every state change.
// Parameters left holding a value of the wrong type by the scripted writes are
// reported after the run.
// With Metrics set, the collected Prometheus metrics follow in text format.
func Simulate(w io.Writer, g *domain.Graph, opts SimulateOptions) ([]animflow.Step, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	script := make([]animflow.SetCommand, 0, len(opts.Sets))
	for _, s := range opts.Sets {
		cmd, err := animflow.ParseSetCommand(s)
		if err != nil {
			return nil, err
		}
		script = append(script, cmd)
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	hooks := observability.Chain(metrics.Hooks(), observability.LoggingHooks(logger))

	engine, anim, err := createEngine(g, opts.Clips, logger, hooks)
	if err != nil {
		return nil, err
	}
	for _, d := range engine.Diagnostics() {
		fmt.Fprintln(w, opts.Style.Diagnostic(d))
	}

	r := &animflow.Runner{
		Output:   w,
		Ticks:    opts.Ticks,
		DT:       opts.DT,
		Script:   script,
		Animator: anim,
		Renderer: opts.Style.Step,
	}
	steps, err := r.Run(engine)
	if err != nil {
		return steps, err
	}
	for _, d := range engine.CheckParameters() {
		logger.Warn("parameter does not match its declaration", "param", d.Subject, "code", string(d.Code))
		fmt.Fprintln(w, opts.Style.Diagnostic(d))
	}

	if opts.Metrics {
		if err := writeMetrics(w, reg); err != nil {
			return steps, err
		}
	}
	return steps, nil
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
