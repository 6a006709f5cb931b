package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/animflow"
	"github.com/aretw0/animflow/internal/compiler"
	"github.com/aretw0/animflow/pkg/adapters/file"
	loamAdapter "github.com/aretw0/animflow/pkg/adapters/loam"
	"github.com/aretw0/animflow/pkg/adapters/redis"
	"github.com/aretw0/animflow/pkg/adapters/timeline"
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/ports"
)

// Source tells commands where graphs live: a directory of documents, a Loam
// vault of Markdown documents when Loam is set, or a Redis server when
// RedisAddr is set.
type Source struct {
	Dir       string
	Loam      bool
	RedisAddr string
	Logger    *slog.Logger
}

// Loader opens the configured backend. The returned close function releases it.
func (s Source) Loader() (ports.GraphLoader, func() error, error) {
	noop := func() error { return nil }
	switch {
	case s.RedisAddr != "":
		l := redis.New(s.RedisAddr, "", 0, redis.WithLogger(s.Logger))
		return l, l.Close, nil
	case s.Loam:
		l, err := loamAdapter.Open(s.Dir)
		if err != nil {
			return nil, noop, err
		}
		return l, noop, nil
	}
	return file.New(s.Dir, file.WithLogger(s.Logger)), noop, nil
}

// Resolve loads a graph by reference. A reference naming an existing YAML,
// JSON or TOML file is read directly; anything else is a graph name looked up
// in the backend.
func (s Source) Resolve(ref string) (*domain.Graph, error) {
	if _, err := compiler.FormatFromPath(ref); err == nil {
		if _, statErr := os.Stat(ref); statErr == nil {
			return file.LoadFile(ref)
		}
	}
	loader, closeFn, err := s.Loader()
	if err != nil {
		return nil, err
	}
	defer closeFn()
	g, err := loader.GetGraph(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}
	return g, nil
}

// ClipOptions sizes the clips of the simulated animator.
type ClipOptions struct {
	Frames int
	FPS    float64
}

// clipsFor derives one clip per animation of g. Looping states loop; a held
// frame always fits inside its clip.
func clipsFor(g *domain.Graph, opts ClipOptions) []timeline.Clip {
	frames := opts.Frames
	if frames <= 0 {
		frames = 8
	}
	byName := make(map[string]*timeline.Clip)
	var order []string
	for _, s := range g.States {
		name := s.AnimationName
		if name == "" {
			name = s.ID
		}
		c, ok := byName[name]
		if !ok {
			c = &timeline.Clip{Name: name, Frames: frames, FPS: opts.FPS}
			byName[name] = c
			order = append(order, name)
		}
		if s.Variant == domain.VariantLooping {
			c.Loop = true
		}
		if s.Variant == domain.VariantHoldFrame && s.HoldFrame >= c.Frames {
			c.Frames = s.HoldFrame + 1
		}
	}

	clips := make([]timeline.Clip, 0, len(order))
	for _, name := range order {
		clips = append(clips, *byName[name])
	}
	return clips
}

// createEngine builds an engine over g driven by a timeline animator.
func createEngine(g *domain.Graph, clips ClipOptions, logger *slog.Logger, hooks domain.LifecycleHooks) (*animflow.Engine, *timeline.Animator, error) {
	anim := timeline.New(clipsFor(g, clips), timeline.WithLogger(logger))
	engine, err := animflow.New(g,
		animflow.WithAnimator(anim),
		animflow.WithLogger(logger),
		animflow.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, anim, nil
}
