package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSetupLoggerConsoleOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	t.Setenv(LogEnvVar, logPath)

	var console bytes.Buffer
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)

	logger, closer, err := setupLogger(&console, level)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("plain message")
	logger.Warn("something odd")
	logger.Error("it broke", "error", "boom")
	logger.Debug("hidden at info level")

	out := console.String()
	assert.Contains(t, out, "plain message")
	assert.Contains(t, out, "Warning: something odd")
	assert.Contains(t, out, "Error: it broke: boom")
	assert.NotContains(t, out, "hidden at info level")
}

func TestSetupLoggerDebugLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	t.Setenv(LogEnvVar, logPath)

	var console bytes.Buffer
	level := &slog.LevelVar{}
	level.Set(slog.LevelDebug)

	logger, closer, err := setupLogger(&console, level)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("debug message", "detail", 42)

	out := console.String()
	assert.Contains(t, out, "debug message")
	assert.Contains(t, out, "detail=42")
}

func TestSetupLoggerWritesStructuredFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	t.Setenv(LogEnvVar, logPath)

	var console bytes.Buffer
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)

	logger, closer, err := setupLogger(&console, level)
	require.NoError(t, err)

	logger.Info("file entry", "key", "value")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(data))
	assert.Equal(t, "file entry", gjson.GetBytes(data, "msg").String())
	assert.Equal(t, "value", gjson.GetBytes(data, "key").String())
}

func TestSetupLoggerUnwritableFileStillLogs(t *testing.T) {
	t.Setenv(LogEnvVar, filepath.Join(t.TempDir(), "no", "such", "dir", "x.log"))

	var console bytes.Buffer
	level := &slog.LevelVar{}

	logger, closer, err := setupLogger(&console, level)
	require.Error(t, err)
	assert.Nil(t, closer)
	require.NotNil(t, logger)

	logger.Info("still works")
	assert.Contains(t, console.String(), "still works")
}
