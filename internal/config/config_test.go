package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8090", cfg.ListenAddr)
	assert.Equal(t, 15.0, cfg.SeekStepSeconds)
	assert.Equal(t, 0.1, cfg.VolumeStep)
	assert.True(t, cfg.ShortcutsEnabled)
	assert.Equal(t, 60.0, cfg.SimItemSeconds)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("SEEK_STEP_SECONDS", "5")
	t.Setenv("SHORTCUTS_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
	assert.Equal(t, 5.0, cfg.SeekStepSeconds)
	assert.False(t, cfg.ShortcutsEnabled)
}

func TestLoadConfigBadNumberFallsBack(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("SEEK_STEP_SECONDS", "not a number")
	t.Setenv("VOLUME_STEP", "-1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15.0, cfg.SeekStepSeconds)
	assert.Equal(t, 0.1, cfg.VolumeStep)
}

func TestLoadConfigCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("DATA_DIR", dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.DirExists(t, dir)
}
