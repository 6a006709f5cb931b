package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/animflow/internal/compiler"
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before its change is signalled.
const DefaultDebounce = 100 * time.Millisecond

var extensions = []string{".yaml", ".yml", ".json", ".toml"}

// Loader implements ports.GraphLoader over a directory of graph documents.
// A graph's name is its file name without the extension.
type Loader struct {
	dir      string
	parser   *compiler.Parser
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) {
		l.debounce = d
	}
}

// New creates a loader reading documents from dir.
func New(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:      dir,
		parser:   compiler.NewParser(),
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile decodes a single graph document. The format follows the extension;
// an unnamed graph takes the file name.
func LoadFile(path string) (*domain.Graph, error) {
	format, err := compiler.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	g, err := compiler.NewParser().Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if g.Name == "" {
		g.Name = stem(path)
	}
	return g, nil
}

// GetGraph loads the document named name. When several extensions exist for
// the same name, the first of .yaml, .yml, .json, .toml wins.
func (l *Loader) GetGraph(name string) (*domain.Graph, error) {
	for _, ext := range extensions {
		path := filepath.Join(l.dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		l.logger.Debug("loading graph", "graph", name, "path", path)
		return LoadFile(path)
	}
	return nil, fmt.Errorf("%s in %s: %w", name, l.dir, domain.ErrGraphNotFound)
}

// ListGraphs returns the names of all supported documents in the directory.
func (l *Loader) ListGraphs() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}
	seen := make(map[string]bool)
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		name := stem(e.Name())
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// settled marks the end of a quiet period for one file. seq identifies the
// event that armed the timer; older timers are ignored.
type settled struct {
	path string
	seq  int
}

// Watch emits a graph name each time its document is written, created,
// renamed or removed. A signal is sent once a file has seen no events for the
// debounce period, so a truncate followed by a write yields one signal after
// the write. The channel is closed when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(l.dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.dir, err)
	}

	out := make(chan string, 16)
	go func() {
		defer close(out)
		defer w.Close()

		done := make(chan struct{})
		ready := make(chan settled)
		timers := make(map[string]*time.Timer)
		latest := make(map[string]int)
		seq := 0
		defer func() {
			close(done)
			for _, t := range timers {
				t.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if !supported(event.Name) {
					continue
				}
				seq++
				latest[event.Name] = seq
				if t, ok := timers[event.Name]; ok {
					t.Stop()
				}
				due := settled{path: event.Name, seq: seq}
				timers[event.Name] = time.AfterFunc(l.debounce, func() {
					select {
					case ready <- due:
					case <-done:
					}
				})
			case s := <-ready:
				if latest[s.path] != s.seq {
					continue
				}
				delete(latest, s.path)
				delete(timers, s.path)

				name := stem(s.path)
				l.logger.Debug("graph changed", "graph", name)
				select {
				case out <- name:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn("watcher error", "err", err)
			}
		}
	}()
	return out, nil
}

func supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
