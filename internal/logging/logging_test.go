package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := New(Options{Path: path, Level: "info"})
	require.NoError(t, err)
	logger.Info("hello", zap.String("k", "v"))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(Options{Console: &buf, Level: "warn"})
	require.NoError(t, err)
	logger.Warn("careful")
	logger.Info("quiet")

	assert.Contains(t, buf.String(), "careful")
	assert.NotContains(t, buf.String(), "quiet")
}

func TestNew_NoSinksIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.NotPanics(t, func() { logger.Info("dropped") })
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "nope"})
	assert.Error(t, err)
}
