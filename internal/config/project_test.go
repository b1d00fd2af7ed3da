package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/config"
)

// isolateConfig points VLIST_HOME at an empty directory and clears overrides.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("VLIST_HOME", home)
	t.Setenv("VLIST_PROJECT_DIR", "")
	t.Setenv("VLIST_LOG_LEVEL", "")
	t.Setenv("VLIST_LOG_FORMAT", "")
	t.Setenv("VLIST_LOG_FILE", "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	isolateConfig(t)
	flagDir := t.TempDir()

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".vlist"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	isolateConfig(t)
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv("VLIST_PROJECT_DIR", envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".vlist"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	isolateConfig(t)
	envDir := t.TempDir()
	t.Setenv("VLIST_PROJECT_DIR", envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")

	assert.Equal(t, filepath.Join(envDir, ".vlist"), got)
}

func TestResolveProjectDir_SuffixNotDoubled(t *testing.T) {
	isolateConfig(t)
	flagDir := filepath.Join(t.TempDir(), ".vlist")

	got := config.ResolveProjectDir(context.Background(), flagDir, "")

	assert.Equal(t, flagDir, got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	isolateConfig(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".vlist"), 0o755))

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)

	assert.Equal(t, filepath.Join(root, ".vlist"), got)
}

func TestFindProjectDir_NoProject(t *testing.T) {
	dir := t.TempDir()

	_, err := config.FindProjectDir(dir)

	// A .vlist directory may exist above the temp dir on a developer machine.
	if err != nil {
		assert.ErrorIs(t, err, config.ErrNoProject)
	}
}

func TestFindProjectDir_NearestAncestor(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "inner", ".vlist"), 0o755))
	nested := filepath.Join(root, "inner", "deeper")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, ".vlistx"), 0o755))

	got, err := config.FindProjectDir(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "inner", ".vlist"), got)
}

func TestSetResolvedProjectDir_RoundTrip(t *testing.T) {
	isolateConfig(t)

	config.SetResolvedProjectDir("/tmp/project/.vlist")
	assert.Equal(t, "/tmp/project/.vlist", config.GetResolvedProjectDir())
}

func TestNewWithProjectDir_Overlay(t *testing.T) {
	home := isolateConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
list:
  item_height: 2
  split: blocks
logging:
  level: warn
`), 0o600))

	projectDir := filepath.Join(t.TempDir(), ".vlist")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(`
list:
  height: 30
  dynamic_height: true
`), 0o600))

	cfg := config.NewWithProjectDir(projectDir)

	// The project list section replaces the user's list section entirely.
	assert.InDelta(t, 30.0, cfg.List.Height, 1e-9)
	assert.True(t, cfg.List.DynamicHeight)
	assert.Zero(t, cfg.List.ItemHeight)
	assert.Empty(t, cfg.List.Split)

	// Sections absent in the overlay keep the user's values.
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestNewWithProjectDir_EnvStillWins(t *testing.T) {
	isolateConfig(t)
	t.Setenv("VLIST_LOG_LEVEL", "debug")

	projectDir := filepath.Join(t.TempDir(), ".vlist")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("logging:\n  level: error\n"), 0o600))

	cfg := config.NewWithProjectDir(projectDir)

	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestNewWithProjectDir_CorruptedYAML(t *testing.T) {
	isolateConfig(t)

	projectDir := filepath.Join(t.TempDir(), ".vlist")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("list: [unclosed"), 0o600))

	cfg := config.NewWithProjectDir(projectDir)

	assert.Equal(t, config.Default().List, cfg.List)
}

func TestNewWithProjectDir_MissingConfigYAML(t *testing.T) {
	isolateConfig(t)

	cfg := config.NewWithProjectDir(t.TempDir())

	assert.Equal(t, config.Default(), cfg)
}
