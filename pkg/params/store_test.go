package params_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/animflow/pkg/params"
	"github.com/aretw0/animflow/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetAndGet(t *testing.T) {
	s := params.NewStore()

	s.Set("IsMoving", true)
	s.Set("Speed", float32(2.5))
	s.Set("Combo", int64(3))
	s.Set("Weapon", "sword")

	assert.True(t, params.Get[bool](s, "IsMoving"))
	assert.Equal(t, 2.5, params.Get[float64](s, "Speed"))
	assert.Equal(t, 3, params.Get[int](s, "Combo"))
	assert.Equal(t, "sword", params.Get[string](s, "Weapon"))

	assert.Equal(t, schema.KindFloat, s.Kind("Speed"))
	assert.Equal(t, schema.KindInt, s.Kind("Combo"))
	assert.Equal(t, []string{"Combo", "IsMoving", "Speed", "Weapon"}, s.Names())
}

func TestStore_LastWriteWinsIncludingType(t *testing.T) {
	s := params.NewStore()
	s.Set("Mode", 1)
	s.Set("Mode", "air")

	assert.Equal(t, schema.KindString, s.Kind("Mode"))
	assert.Equal(t, "air", params.Get[string](s, "Mode"))
	assert.Equal(t, 0, params.Get[int](s, "Mode"))
}

func TestStore_MissAndMismatchLogAndReturnZero(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := params.NewStore(params.WithLogger(logger))

	assert.False(t, params.Get[bool](s, "Missing"))
	assert.Contains(t, buf.String(), "parameter missing")

	buf.Reset()
	s.Set("Speed", 1.0)
	assert.Equal(t, 0, params.Get[int](s, "Speed"))
	assert.Contains(t, buf.String(), "parameter type mismatch")
	assert.Contains(t, buf.String(), "got=float")

	_, ok := params.Lookup[int](s, "Speed")
	assert.False(t, ok)
}

func TestStore_NilSafeLookup(t *testing.T) {
	var s *params.Store
	v, ok := params.Lookup[bool](s, "x")
	assert.False(t, ok)
	assert.False(t, v)
	assert.False(t, params.Get[bool](s, "x"))
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := params.NewStore()
	s.Set("A", 1)

	snap := s.Snapshot()
	snap["A"] = 2
	snap["B"] = 3

	assert.Equal(t, 1, params.Get[int](s, "A"))
	assert.False(t, s.Has("B"))

	s.Reset()
	assert.Empty(t, s.Names())
	require.False(t, s.Has("A"))
}
