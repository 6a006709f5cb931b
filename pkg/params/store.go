package params

import (
	"io"
	"log/slog"
	"sort"

	"github.com/aretw0/animflow/pkg/schema"
)

type entry struct {
	kind  schema.Kind
	value any
}

// Store is the typed named-value bag shared by conditions and states.
// Writes are visible to every subsequent read; there is no buffering.
// A Store is owned by one controller and is not safe for concurrent use.
type Store struct {
	values map[string]entry
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for lookup-miss diagnostics.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty parameter store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		values: make(map[string]entry),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set overwrites the value and recorded kind of a parameter.
// Sized integers are stored as int and float32 as float64 so typed reads
// only need to ask for the canonical Go type.
func (s *Store) Set(name string, value any) {
	value = normalize(value)
	s.values[name] = entry{kind: schema.KindOf(value), value: value}
}

// Value returns the raw stored value.
func (s *Store) Value(name string) (any, bool) {
	e, ok := s.values[name]
	return e.value, ok
}

// Has reports whether the parameter has been written.
func (s *Store) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Kind returns the kind recorded by the most recent write, or KindUnknown.
func (s *Store) Kind(name string) schema.Kind {
	return s.values[name].kind
}

// Names returns all parameter names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of all values.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for name, e := range s.values {
		out[name] = e.value
	}
	return out
}

// Reset removes every parameter.
func (s *Store) Reset() {
	clear(s.values)
}

// Lookup returns the parameter as T. ok is false when the parameter is missing
// or holds a different type; no diagnostic is logged.
func Lookup[T any](s *Store, name string) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	e, ok := s.values[name]
	if !ok {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Get returns the parameter as T, or T's zero value when it is missing or of
// another type. Misses are logged at debug level and never fail.
func Get[T any](s *Store, name string) T {
	v, ok := Lookup[T](s, name)
	if ok || s == nil {
		return v
	}
	e, present := s.values[name]
	if !present {
		s.logger.Debug("parameter missing", "parameter", name, "want", typeName[T]())
	} else {
		s.logger.Debug("parameter type mismatch", "parameter", name, "want", typeName[T](), "got", string(e.kind))
	}
	return v
}

func typeName[T any]() string {
	var zero T
	if k := schema.KindOf(zero); k != schema.KindUnknown {
		return string(k)
	}
	return "unknown"
}

func normalize(value any) any {
	switch v := value.(type) {
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}
