package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Testing = true
	os.Exit(m.Run())
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.False(t, cfg.Silent)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.PrintTree)
	assert.False(t, cfg.CountOnly)
	assert.Equal(t, int64(0), cfg.Offset)
	assert.Equal(t, int64(0), cfg.Limit)
	assert.Equal(t, 1024, cfg.BufferSize)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relang.yaml")
	content := "offset: 10\nlimit: 5\nbuffer_size: 4096\ncount_only: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(10), cfg.Offset)
	assert.Equal(t, int64(5), cfg.Limit)
	assert.Equal(t, 4096, cfg.BufferSize)
	assert.True(t, cfg.CountOnly)
	// Unset keys keep their defaults.
	assert.False(t, cfg.Debug)
}

func TestExplicitMissingFileFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "relang.yaml")
	require.NoError(t, SaveConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("RELANG_BUFFER_SIZE", "2048")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.BufferSize)
}
