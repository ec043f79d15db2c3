package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter(slog.LevelInfo, "text", &buf)

	log.Info("dispatch", "task", 3)
	out := buf.String()
	require.Contains(t, out, "msg=dispatch")
	require.Contains(t, out, "task=3")
}

func TestNewLoggerWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter(slog.LevelInfo, "json", &buf)

	log.Warn("pause failed", "task", 1)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "{"))
	require.Contains(t, out, `"msg":"pause failed"`)
}

func TestNewLoggerWithWriterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter(slog.LevelWarn, "text", &buf)

	log.Debug("hidden")
	log.Info("hidden too")
	require.Empty(t, buf.String())

	log.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("info"))
	require.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
