package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/animflow/internal/compiler"
	"github.com/aretw0/animflow/pkg/domain"
)

// Loader implements ports.GraphLoader and ports.Watchable using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu       sync.RWMutex
	graphs   map[string]*domain.Graph
	watchers []chan string
}

// NewLoader creates a Loader from raw JSON documents keyed by graph name.
func NewLoader(data map[string]string) (*Loader, error) {
	parser := compiler.NewParser()
	l := &Loader{graphs: make(map[string]*domain.Graph)}
	for name, doc := range data {
		g, err := parser.Parse([]byte(doc), compiler.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("graph %s: %w", name, err)
		}
		l.graphs[name] = g
	}
	return l, nil
}

// NewFromGraphs creates a Loader from domain objects, keyed by Graph.Name.
func NewFromGraphs(graphs ...*domain.Graph) (*Loader, error) {
	l := &Loader{graphs: make(map[string]*domain.Graph)}
	for _, g := range graphs {
		if g == nil || g.Name == "" {
			return nil, fmt.Errorf("graph missing name")
		}
		l.graphs[g.Name] = g.Clone()
	}
	return l, nil
}

// Put adds or replaces a graph and notifies watchers.
func (l *Loader) Put(g *domain.Graph) error {
	if g == nil || g.Name == "" {
		return fmt.Errorf("graph missing name")
	}
	l.mu.Lock()
	l.graphs[g.Name] = g.Clone()
	watchers := append([]chan string(nil), l.watchers...)
	l.mu.Unlock()

	for _, w := range watchers {
		select {
		case w <- g.Name:
		default:
		}
	}
	return nil
}

// GetGraph returns a copy of the named graph.
func (l *Loader) GetGraph(name string) (*domain.Graph, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.graphs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrGraphNotFound)
	}
	return g.Clone(), nil
}

// ListGraphs returns all graph names.
func (l *Loader) ListGraphs() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.graphs))
	for k := range l.graphs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

// Watch emits the name of every graph passed to Put until ctx is done.
// Slow receivers miss notifications rather than block Put.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 8)
	l.mu.Lock()
	l.watchers = append(l.watchers, ch)
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		for i, w := range l.watchers {
			if w == ch {
				l.watchers = append(l.watchers[:i], l.watchers[i+1:]...)
				break
			}
		}
		l.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}
