package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/animflow/pkg/ports"
)

// WatchLoader is a loader that can report changes.
type WatchLoader interface {
	ports.GraphLoader
	ports.Watchable
}

// Watch validates every graph once, then again each time the backend reports
// a change, until ctx is done. A graph that fails to load is reported and the
// watch goes on.
func Watch(ctx context.Context, w io.Writer, loader WatchLoader, opts ValidateOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ch, err := loader.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch graphs: %w", err)
	}

	names, err := loader.ListGraphs()
	if err != nil {
		return err
	}
	for _, name := range names {
		check(w, loader, name, opts, logger)
	}
	printSystemMessage(w, "Waiting for changes...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-ch:
			if !ok {
				return nil
			}
			logger.Info("Change detected", "graph", name)
			printSystemMessage(w, "Change detected in '%s'.", name)
			check(w, loader, name, opts, logger)
		}
	}
}

func check(w io.Writer, loader ports.GraphLoader, name string, opts ValidateOptions, logger *slog.Logger) {
	g, err := loader.GetGraph(name)
	if err != nil {
		logger.Error("Graph failed to load", "graph", name, "err", err)
		fmt.Fprintf(w, "%s: %v\n", opts.Style.State(name), err)
		return
	}
	fmt.Fprintf(w, "%s\n", opts.Style.State(name))
	if _, err := Validate(w, g, opts); err != nil {
		logger.Error("Validation failed", "graph", name, "err", err)
	}
}
