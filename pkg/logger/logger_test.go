package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLoggerWritesFieldsAndSource(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithWriter(&buf), WithoutFile(), WithLevel(zerolog.DebugLevel))
	require.NoError(t, err)

	log.Debug("querying", "request", "Workspaces", "attempt", 2)
	log.Warn("no icon", "app_id", "Foo")
	log.Error("read failed", errors.New("boom"), "socket", "/run/niri.sock")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 3)

	assert.Equal(t, "debug", entries[0]["level"])
	assert.Equal(t, "Workspaces", entries[0]["request"])
	assert.EqualValues(t, 2, entries[0]["attempt"])
	assert.Equal(t, "logger_test.go", entries[0]["file"])

	assert.Equal(t, "warn", entries[1]["level"])
	assert.Equal(t, "Foo", entries[1]["app_id"])

	assert.Equal(t, "error", entries[2]["level"])
	assert.Equal(t, "boom", entries[2]["error"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithWriter(&buf), WithoutFile(), WithLevel(zerolog.WarnLevel))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestLoggerDropsUnpairedField(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithWriter(&buf), WithoutFile())
	require.NoError(t, err)

	log.Info("odd", "key", "value", "dangling", 42, "x")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "value", entries[0]["key"])
	assert.Equal(t, float64(42), entries[0]["dangling"])
	_, ok := entries[0]["x"]
	assert.False(t, ok)
}

func TestAddWriterFansOut(t *testing.T) {
	var primary, extra bytes.Buffer
	log, err := NewLogger(WithWriter(&primary), WithoutFile())
	require.NoError(t, err)

	log.Info("before")
	log.AddWriter(&extra)
	log.Info("after")

	assert.Len(t, decodeLines(t, &primary), 2)
	extraEntries := decodeLines(t, &extra)
	require.Len(t, extraEntries, 1)
	assert.Equal(t, "after", extraEntries[0]["message"])
}

func TestWithFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	log, err := NewLogger(WithFile(path))
	require.NoError(t, err)

	log.Info("to file", "k", "v")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Info("nothing")
	log.Error("nothing", errors.New("x"))
	log.AddWriter(&bytes.Buffer{})
	assert.NoError(t, log.Close())
}
