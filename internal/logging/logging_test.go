package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForServiceAddsAttribute(t *testing.T) {
	var structured, human bytes.Buffer
	Init()
	SetOutput(&structured, &human)

	ForService("renamer").Info("batch started", "files", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(structured.Bytes(), &entry))
	assert.Equal(t, "renamer", entry["service"])
	assert.Equal(t, "batch started", entry["msg"])
	assert.EqualValues(t, 3, entry["files"])
}

func TestForServiceBeforeInit(t *testing.T) {
	structuredLogger = nil
	assert.NotNil(t, ForService("lookup"), "usable fallback before Init")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestCustomLevelNames(t *testing.T) {
	trace := replaceLevelNames(nil, slog.Attr{Key: slog.LevelKey, Value: slog.AnyValue(LevelTrace)})
	assert.Equal(t, "TRACE", trace.Value.String())

	fatal := replaceLevelNames(nil, slog.Attr{Key: slog.LevelKey, Value: slog.AnyValue(LevelFatal)})
	assert.Equal(t, "FATAL", fatal.Value.String())

	info := replaceLevelNames(nil, slog.Attr{Key: slog.LevelKey, Value: slog.AnyValue(slog.LevelInfo)})
	assert.Equal(t, "INFO", info.Value.String())
}
