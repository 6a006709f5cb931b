package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to the GraphLoader interface. Each document
// holds one graph in its frontmatter; the body is free-form notes.
type Loader struct {
	Repo *loam.TypedRepository[GraphMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[GraphMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[GraphMetadata](repo)), nil
}

// GetGraph retrieves a graph document. Loam resolves the extension, so
// "combat" finds combat.md. Any lookup failure is reported as not found.
func (l *Loader) GetGraph(name string) (*domain.Graph, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w (%v)", name, domain.ErrGraphNotFound, err)
	}

	g := doc.Data.ToGraph()
	if g.Name == "" {
		g.Name = trimExtension(doc.ID)
	}
	return g, nil
}

// ListGraphs lists all graph documents in the repository.
func (l *Loader) ListGraphs() ([]string, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := trimExtension(doc.ID)
		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: graph '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				// Loam debounces on its own.
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
