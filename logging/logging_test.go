package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", FormatJSON)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.EqualValues(t, 1, record["k"])

	buf.Reset()
	logger, err = New(&buf, "debug", FormatText)
	require.NoError(t, err)
	logger.Debug("text line")
	assert.Contains(t, buf.String(), "msg=\"text line\"")

	_, err = New(&buf, "info", "xml")
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestOpen(t *testing.T) {
	w, closeFn, err := Open("stderr")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeFn())

	w, _, err = Open(OutputDiscard)
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)

	path := filepath.Join(t.TempDir(), "logs", "navdemo.log")
	w, closeFn, err = Open(path)
	require.NoError(t, err)
	logger, err := New(w, "info", FormatText)
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
