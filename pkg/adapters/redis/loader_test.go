package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/animflow/pkg/adapters/redis"
	"github.com/aretw0/animflow/pkg/domain"
	contract "github.com/aretw0/animflow/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Loader) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	loader := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = loader.Close() })
	return mr, loader
}

func locomotion() *domain.Graph {
	return &domain.Graph{
		Name: "locomotion",
		Parameters: []domain.ParameterRecord{
			{Name: "Speed", Type: "float", Default: 0.0},
		},
		States: []domain.StateRecord{
			{ID: "idle", Variant: domain.VariantLooping, AnimationName: "idle", IsInitial: true},
			{ID: "run", Variant: domain.VariantLooping, AnimationName: "run"},
		},
		Transitions: []domain.TransitionRecord{
			{FromID: "idle", ToID: "run", Conditions: []domain.ConditionRecord{
				{Kind: domain.OperandFloat, Op: domain.OpGreater, Parameter: "Speed", Value: 0.1},
			}},
		},
	}
}

func TestRedisLoader_Contract(t *testing.T) {
	_, loader := setup(t)
	ctx := context.Background()

	require.NoError(t, loader.Put(ctx, locomotion()))
	require.NoError(t, loader.Put(ctx, &domain.Graph{
		Name:   "door",
		States: []domain.StateRecord{{ID: "closed", Variant: domain.VariantHoldFrame, AnimationName: "door"}},
	}))

	contract.GraphLoaderContractTest(t, loader, map[string]int{"locomotion": 2, "door": 1})
}

func TestRedisLoader_RoundTripsConditions(t *testing.T) {
	_, loader := setup(t)
	require.NoError(t, loader.Put(context.Background(), locomotion()))

	g, err := loader.GetGraph("locomotion")
	require.NoError(t, err)
	require.Len(t, g.Transitions, 1)
	cond := g.Transitions[0].Conditions[0]
	assert.Equal(t, domain.OperandFloat, cond.Kind)
	assert.Equal(t, domain.OpGreater, cond.Op)
	assert.Equal(t, 0.1, cond.Value)
}

func TestRedisLoader_Prefix(t *testing.T) {
	mr, loader := setup(t, redis.WithPrefix("game:"))
	require.NoError(t, loader.Put(context.Background(), locomotion()))

	assert.True(t, mr.Exists("game:locomotion"))
	assert.False(t, mr.Exists(redis.DefaultPrefix+"locomotion"))
}

func TestRedisLoader_Delete(t *testing.T) {
	_, loader := setup(t)
	ctx := context.Background()
	require.NoError(t, loader.Put(ctx, locomotion()))
	require.NoError(t, loader.Delete(ctx, "locomotion"))

	_, err := loader.GetGraph("locomotion")
	assert.True(t, errors.Is(err, domain.ErrGraphNotFound))

	names, err := loader.ListGraphs()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisLoader_CorruptDocument(t *testing.T) {
	mr, loader := setup(t)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"broken", "{not json"))

	_, err := loader.GetGraph("broken")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrGraphNotFound))
}

func TestRedisLoader_PutRequiresName(t *testing.T) {
	_, loader := setup(t)
	assert.Error(t, loader.Put(context.Background(), &domain.Graph{}))
	assert.Error(t, loader.Put(context.Background(), nil))
}

func TestRedisLoader_Watch(t *testing.T) {
	_, loader := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := loader.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, loader.Put(context.Background(), locomotion()))

	select {
	case name := <-ch:
		assert.Equal(t, "locomotion", name)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-ch:
			return !open
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
