package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/animflow"
	"github.com/aretw0/animflow/internal/presentation/tui"
	"github.com/aretw0/animflow/internal/testutils"
	"github.com/aretw0/animflow/pkg/adapters/file"
	"github.com/aretw0/animflow/pkg/adapters/redis"
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plain = tui.Style{Profile: termenv.Ascii}

func combat(t *testing.T) *domain.Graph {
	t.Helper()
	dir := testutils.WriteGraphDir(t, map[string]string{"combat.yaml": testutils.CombatYAML})
	g, err := file.LoadFile(filepath.Join(dir, "combat.yaml"))
	require.NoError(t, err)
	return g
}

func TestSource_Resolve(t *testing.T) {
	dir := testutils.WriteGraphDir(t, map[string]string{"combat.yaml": testutils.CombatYAML})

	t.Run("File path", func(t *testing.T) {
		g, err := Source{}.Resolve(filepath.Join(dir, "combat.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "combat", g.Name)
	})

	t.Run("Name in directory", func(t *testing.T) {
		g, err := Source{Dir: dir}.Resolve("combat")
		require.NoError(t, err)
		assert.Len(t, g.States, 3)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Source{Dir: dir}.Resolve("nope")
		assert.True(t, errors.Is(err, domain.ErrGraphNotFound))
	})

	t.Run("Redis", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		src := Source{RedisAddr: mr.Addr()}
		loader, closeFn, err := src.Loader()
		require.NoError(t, err)
		defer closeFn()
		require.NoError(t, loader.(*redis.Loader).Put(context.Background(), combat(t)))

		g, err := src.Resolve("combat")
		require.NoError(t, err)
		assert.Equal(t, "idle", g.States[0].ID)
	})
}

func TestClipsFor(t *testing.T) {
	clips := clipsFor(combat(t), ClipOptions{Frames: 3, FPS: 10})
	require.Len(t, clips, 3)

	assert.Equal(t, "idle", clips[0].Name)
	assert.True(t, clips[0].Loop)

	assert.Equal(t, "swing", clips[1].Name)
	assert.False(t, clips[1].Loop)
	assert.Equal(t, 3, clips[1].Frames)

	assert.Equal(t, "orphan", clips[2].Name)
	assert.Equal(t, 12, clips[2].Frames, "held frame must fit in the clip")
}

func TestValidate(t *testing.T) {
	var buf bytes.Buffer
	diags, err := Validate(&buf, combat(t), ValidateOptions{Style: plain})
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, domain.DiagUnreachable, diags[0].Code)
	assert.Contains(t, buf.String(), "[unreachable_state] orphan")
	assert.NotContains(t, buf.String(), "valid")
}

func TestValidate_Clean(t *testing.T) {
	g := &domain.Graph{States: []domain.StateRecord{{ID: "only", Variant: domain.VariantLooping, IsInitial: true}}}

	var buf bytes.Buffer
	diags, err := Validate(&buf, g, ValidateOptions{Style: plain})
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, "Graph is valid! ✅\n", buf.String())
}

func TestValidate_NoInitial(t *testing.T) {
	g := &domain.Graph{States: []domain.StateRecord{{ID: "only", Variant: domain.VariantLooping}}}

	var buf bytes.Buffer
	diags, err := Validate(&buf, g, ValidateOptions{Style: plain})
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, domain.DiagNoInitial, diags[0].Code)
	assert.Equal(t, "only", diags[0].Subject)
	assert.Contains(t, buf.String(), "[no_initial] only")
	assert.NotContains(t, buf.String(), "valid")
}

func TestValidate_Render(t *testing.T) {
	var got string
	render := func(md string) (string, error) {
		got = md
		return "rendered\n", nil
	}

	var buf bytes.Buffer
	_, err := Validate(&buf, combat(t), ValidateOptions{Style: plain, Render: render})
	require.NoError(t, err)
	assert.Equal(t, "rendered\n", buf.String())
	assert.Contains(t, got, "| `unreachable_state` | orphan |")
}

func TestSimulate(t *testing.T) {
	var buf bytes.Buffer
	steps, err := Simulate(&buf, combat(t), SimulateOptions{
		Ticks: 10,
		DT:    0.1,
		Sets:  []string{"Attack=true@2", "Attack=false@3"},
		Clips: ClipOptions{Frames: 3, FPS: 10},
		Style: plain,
	})
	require.NoError(t, err)

	require.Len(t, steps, 3)
	for i, want := range []animflow.Step{
		{Tick: 0, To: "idle"},
		{Tick: 3, Time: 0.3, From: "idle", To: "attack"},
		{Tick: 6, Time: 0.6, From: "attack", To: "idle"},
	} {
		assert.Equal(t, want.Tick, steps[i].Tick)
		assert.Equal(t, want.From, steps[i].From)
		assert.Equal(t, want.To, steps[i].To)
		assert.InDelta(t, want.Time, steps[i].Time, 1e-9)
	}
	assert.Equal(t,
		"[   0]   0.000s  start -> idle\n"+
			"[   3]   0.300s  idle -> attack\n"+
			"[   6]   0.600s  attack -> idle\n",
		buf.String())
}

func TestSimulate_Metrics(t *testing.T) {
	var buf bytes.Buffer
	_, err := Simulate(&buf, combat(t), SimulateOptions{
		Ticks:   10,
		DT:      0.1,
		Sets:    []string{"Attack=true@2", "Attack=false@3"},
		Clips:   ClipOptions{Frames: 3, FPS: 10},
		Metrics: true,
		Style:   plain,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `animflow_state_enters_total{state="idle",variant="Looping"} 2`)
	assert.Contains(t, out, `animflow_transitions_total{from="idle",reason="condition",to="attack"} 1`)
}

func TestSimulate_ReportsParameterMismatch(t *testing.T) {
	var buf bytes.Buffer
	steps, err := Simulate(&buf, combat(t), SimulateOptions{
		Ticks: 3,
		DT:    0.1,
		Sets:  []string{"Attack=maybe@1"},
		Clips: ClipOptions{Frames: 3, FPS: 10},
		Style: plain,
	})
	require.NoError(t, err)
	require.Len(t, steps, 1)

	out := buf.String()
	assert.Contains(t, out, "[parameter_type_mismatch] Attack")
	assert.Contains(t, out, "want bool")
}

func TestSimulate_BadSet(t *testing.T) {
	_, err := Simulate(&bytes.Buffer{}, combat(t), SimulateOptions{Ticks: 1, DT: 0.1, Sets: []string{"nonsense"}})
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := testutils.WriteGraphDir(t, map[string]string{"combat.yaml": testutils.CombatYAML})
	loader := file.New(dir, file.WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, &buf, loader, ValidateOptions{Style: plain})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "Waiting for changes")
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, writeFile(filepath.Join(dir, "combat.yaml"), testutils.CombatYAML))

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "Change detected in 'combat'")
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestPush(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	dir := testutils.WriteGraphDir(t, map[string]string{"combat.yaml": testutils.CombatYAML})
	src := Source{RedisAddr: mr.Addr()}

	name, err := Push(context.Background(), src, filepath.Join(dir, "combat.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "combat", name)
	assert.True(t, mr.Exists(redis.DefaultPrefix+"combat"))

	_, err = Push(context.Background(), Source{}, filepath.Join(dir, "combat.yaml"))
	assert.Error(t, err)
}
