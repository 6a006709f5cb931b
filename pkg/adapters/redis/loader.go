package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/animflow/internal/compiler"
	"github.com/aretw0/animflow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key the loader touches.
const DefaultPrefix = "animflow:graph:"

// Loader implements ports.GraphLoader and ports.Watchable on top of Redis.
// Graphs are stored as JSON documents; an index sorted set keeps their names
// and a pub/sub channel announces changes.
type Loader struct {
	client  *backend.Client
	prefix  string
	timeout time.Duration
	parser  *compiler.Parser
	logger  *slog.Logger
}

type Option func(*Loader)

// WithPrefix sets the key prefix for graphs.
func WithPrefix(prefix string) Option {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// WithTimeout bounds each Redis round trip made by GetGraph and ListGraphs.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loader connected to address.
func New(address, password string, db int, opts ...Option) *Loader {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Loader from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Loader {
	l := &Loader{
		client:  client,
		prefix:  DefaultPrefix,
		timeout: 5 * time.Second,
		parser:  compiler.NewParser(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) key(name string) string {
	return l.prefix + name
}

func (l *Loader) indexKey() string {
	return l.prefix + "index"
}

func (l *Loader) channel() string {
	return l.prefix + "changed"
}

func (l *Loader) context() (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), l.timeout)
}

// Put stores g under its name and announces the change to watchers.
func (l *Loader) Put(ctx context.Context, g *domain.Graph) error {
	if g == nil || g.Name == "" {
		return fmt.Errorf("graph missing name")
	}
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	pipe := l.client.TxPipeline()
	pipe.Set(ctx, l.key(g.Name), data, 0)
	// Equal scores make ZRANGE return members in lexical order.
	pipe.ZAdd(ctx, l.indexKey(), backend.Z{Score: 0, Member: g.Name})
	pipe.Publish(ctx, l.channel(), g.Name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save graph to redis: %w", err)
	}
	l.logger.Debug("graph stored", "graph", g.Name)
	return nil
}

// Delete removes a graph and announces the change.
func (l *Loader) Delete(ctx context.Context, name string) error {
	pipe := l.client.TxPipeline()
	pipe.Del(ctx, l.key(name))
	pipe.ZRem(ctx, l.indexKey(), name)
	pipe.Publish(ctx, l.channel(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// GetGraph decodes the stored document. Every call returns a fresh graph.
func (l *Loader) GetGraph(name string) (*domain.Graph, error) {
	ctx, cancel := l.context()
	defer cancel()

	val, err := l.client.Get(ctx, l.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrGraphNotFound)
		}
		return nil, fmt.Errorf("failed to get graph from redis: %w", err)
	}

	g, err := l.parser.Parse(val, compiler.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("graph %s: %w", name, err)
	}
	if g.Name == "" {
		g.Name = name
	}
	return g, nil
}

// ListGraphs returns the indexed graph names in sorted order.
func (l *Loader) ListGraphs() ([]string, error) {
	ctx, cancel := l.context()
	defer cancel()

	names, err := l.client.ZRange(ctx, l.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}
	return names, nil
}

// Watch subscribes to change announcements. The subscription is confirmed
// before Watch returns, so a Put issued afterwards is always observed.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	sub := l.client.Subscribe(ctx, l.channel())
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan string, 8)
	msgs := sub.Channel()
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				l.logger.Debug("graph changed", "graph", msg.Payload)
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close closes the redis client.
func (l *Loader) Close() error {
	return l.client.Close()
}
