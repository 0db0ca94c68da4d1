package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &m))
	return m
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestJSONLoggerWithComponentAndTrace(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(NewLogger(Config{Level: "debug", Format: FormatJSON, Output: &buf}), "cli")

	ctx := ContextWithTraceID(context.Background(), "01HZX")
	l.Debug().Ctx(ctx).Str("recipe", "ipa.json").Msg("inputs resolved")

	line := decodeLine(t, buf.Bytes())
	assert.Equal(t, "cli", line["component"])
	assert.Equal(t, "01HZX", line[TraceIDField])
	assert.Equal(t, "inputs resolved", line["message"])
	assert.Equal(t, "debug", line["level"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "warn", Format: FormatJSON, Output: &buf})
	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNoTraceWithoutContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Format: FormatJSON, Output: &buf})
	l.Info().Msg("plain")
	assert.NotContains(t, decodeLine(t, buf.Bytes()), TraceIDField)
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Format: FormatConsole, Output: &buf})
	l.Info().Msg("hello brewer")
	assert.Contains(t, buf.String(), "hello brewer")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "brewplan.log")
	res := NewLoggerWithPath(Config{Level: "info", File: path})
	t.Cleanup(func() { _ = res.Close() })

	require.True(t, res.UsingFile)
	assert.Equal(t, path, res.FilePath)
	res.Logger.Info().Msg("to file")
	require.NoError(t, res.Close())
	require.NoError(t, res.Close(), "close is idempotent")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "to file", decodeLine(t, data)["message"])
}

func TestFileFallback(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	var buf bytes.Buffer
	res := NewLoggerWithPath(Config{File: filepath.Join(blocker, "x.log"), Format: FormatJSON, Output: &buf})
	assert.False(t, res.UsingFile)
	assert.True(t, res.FallbackUsed)
	assert.NotEmpty(t, res.FallbackReason)

	res.Logger.Info().Msg("fallback")
	assert.Contains(t, buf.String(), "fallback")

	var msg bytes.Buffer
	PrintFallbackWarning(&msg, res.FallbackReason)
	assert.Contains(t, msg.String(), "logging to stderr")
}

func TestTraceIDs(t *testing.T) {
	id := NewTraceID()
	_, err := ulid.Parse(id)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))
	assert.NotEqual(t, id, GetOrGenerateTraceID(ctx))

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Format: FormatJSON, Output: &buf})
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("via context")
	assert.Contains(t, buf.String(), "via context")
}
