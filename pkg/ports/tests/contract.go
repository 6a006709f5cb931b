package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// expected maps each graph name the loader should serve to the number of states it holds.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, expected map[string]int) {
	t.Helper()

	t.Run("GetGraph_Success", func(t *testing.T) {
		for name, states := range expected {
			g, err := loader.GetGraph(name)
			require.NoError(t, err, "graph %s", name)
			require.NotNil(t, g)
			assert.Len(t, g.States, states, "graph %s", name)
		}
	})

	t.Run("GetGraph_NotFound", func(t *testing.T) {
		_, err := loader.GetGraph("non-existent-graph")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrGraphNotFound), "expected ErrGraphNotFound, got %v", err)
	})

	t.Run("GetGraph_ReturnsIndependentCopies", func(t *testing.T) {
		for name := range expected {
			g1, err := loader.GetGraph(name)
			require.NoError(t, err)
			if len(g1.States) == 0 {
				continue
			}
			g1.States[0].ID = "mutated-by-test"
			g2, err := loader.GetGraph(name)
			require.NoError(t, err)
			assert.NotEqual(t, "mutated-by-test", g2.States[0].ID)
		}
	})

	t.Run("ListGraphs", func(t *testing.T) {
		names, err := loader.ListGraphs()
		require.NoError(t, err)
		assert.Len(t, names, len(expected))
		assert.IsNonDecreasing(t, names)
		for name := range expected {
			assert.Contains(t, names, name)
		}
	})
}
