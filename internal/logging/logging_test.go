package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lingua.log")
	logger, err := New(config.Config{LogPath: path, Debug: true})
	require.NoError(t, err)

	logger.Debug("prefetch failed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "prefetch failed")
	assert.Contains(t, string(data), `"app":"lingua"`)
}

func TestNew_DebugDisabledByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lingua.log")
	logger, err := New(config.Config{LogPath: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_NoPathIsNop(t *testing.T) {
	logger, err := New(config.Config{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
