package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zerolog.Disabled, parseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, "debug")
	l.Debug().Str("k", "v").Msg("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["message"])
	assert.Equal(t, "v", rec["k"])
	assert.Equal(t, "debug", rec["level"])
}

func TestNewJSONLogger_FiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, "warn")
	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())
}

func TestSetOutput_ComponentField(t *testing.T) {
	orig := Logger
	defer SetOutput(orig)

	var buf bytes.Buffer
	SetOutput(NewJSONLogger(&buf, "debug"))
	Tx.Debug().Msg("selected")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "tx", rec["component"])
}

func TestInit_File(t *testing.T) {
	orig := Logger
	defer SetOutput(orig)

	path := filepath.Join(t.TempDir(), "cashtab.log")
	require.NoError(t, Init("info", true, path))
	defer Close()
	assert.FileExists(t, path)
}

func TestInit_ReplacesFile(t *testing.T) {
	orig := Logger
	defer SetOutput(orig)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	require.NoError(t, Init("info", true, first))
	prev := logFile
	require.NotNil(t, prev)

	require.NoError(t, Init("info", true, second))
	assert.NotSame(t, prev, logFile)
	assert.ErrorIs(t, prev.Close(), os.ErrClosed)

	Logger.Info().Msg("rotated")
	require.NoError(t, Close())
	assert.Nil(t, logFile)
	require.NoError(t, Close())

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotated")

	data, err = os.ReadFile(first)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "rotated")
}
