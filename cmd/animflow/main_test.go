package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/animflow"
	"github.com/aretw0/animflow/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "animflow version "+strings.TrimSpace(animflow.Version)+"\n", out)
}

func TestGraphAndValidateCommands(t *testing.T) {
	dir := testutils.WriteGraphDir(t, map[string]string{"combat.yaml": testutils.CombatYAML})

	out, err := run(t, "graph", "--dir", dir, "combat")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD"), out)

	out, err = run(t, "validate", "--no-color", filepath.Join(dir, "combat.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "[unreachable_state] orphan")

	_, err = run(t, "validate", "--no-color", "--strict", filepath.Join(dir, "combat.yaml"))
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	dir := testutils.WriteGraphDir(t, map[string]string{"combat.yaml": testutils.CombatYAML})

	out, err := run(t, "simulate", "--no-color", "--dir", dir,
		"--ticks", "10", "--dt", "0.1", "--frames", "3", "--fps", "10",
		"--set", "Attack=true@2", "--set", "Attack=false@3", "combat")
	require.NoError(t, err)
	assert.Contains(t, out, "idle -> attack")
	assert.Contains(t, out, "attack -> idle")
}
