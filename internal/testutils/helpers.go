package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// CombatYAML is a two-state graph: idle swings into a one-shot attack while
// Attack is true, and the attack returns to idle when its clip completes.
// The "orphan" state is never reached.
const CombatYAML = `
name: combat
parameters:
  - name: Attack
    type: bool
    default: false
states:
  - id: idle
    variant: Looping
    animation: idle
    initial: true
  - id: attack
    variant: OneTime
    animation: swing
  - id: orphan
    variant: HoldFrame
    animation: orphan
    hold_frame: 11
transitions:
  - from: idle
    to: attack
    conditions:
      - kind: bool
        parameter: Attack
        value: true
  - from: attack
    to: idle
    conditions:
      - kind: animationComplete
        value: true
`

// WriteGraphDir creates a temporary directory holding files (name to content)
// and returns its absolute path. It fails the test immediately on error.
func WriteGraphDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	}
	return dir
}

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}
