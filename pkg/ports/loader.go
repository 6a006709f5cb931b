package ports

import (
	"context"

	"github.com/aretw0/animflow/pkg/domain"
)

// GraphLoader defines how authored graphs are retrieved.
// This allows the storage layer (files, memory) to be decoupled from the compiler.
type GraphLoader interface {
	// GetGraph retrieves a graph description by name.
	// It returns an error wrapping domain.ErrGraphNotFound when the name is unknown.
	GetGraph(name string) (*domain.Graph, error)

	// ListGraphs returns the names of all available graphs in sorted order.
	ListGraphs() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload during authoring.
type Watchable interface {
	// Watch returns a channel that receives the name of each graph that changed.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
