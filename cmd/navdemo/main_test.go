package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordOfDragons/dragengine-sub060/config"
)

func runDemo(t *testing.T, args ...string) (summary, string) {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), args, &out, io.Discard))
	var s summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &s), out.String())
	return s, out.String()
}

func quietConfig(t *testing.T, edit func(*config.Config)) string {
	t.Helper()
	cfg := config.Default()
	cfg.Log.Output = filepath.Join(t.TempDir(), "logs", "navdemo.log")
	if edit != nil {
		edit(&cfg)
	}
	path := filepath.Join(t.TempDir(), "navdemo.toml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Write(f))
	require.NoError(t, f.Close())
	return path
}

func TestHeadlessArrives(t *testing.T) {
	s, _ := runDemo(t, "-headless", "-config", quietConfig(t, nil))

	assert.Equal(t, "arrived", s.State)
	assert.Positive(t, s.Frames)
	assert.GreaterOrEqual(t, s.Plans, 13)
	assert.Equal(t, config.Default().Scenario.Goal, s.Goal)
	assert.Positive(t, s.Metrics.Counters["engine.frames"])
	assert.Equal(t, int64(s.Frames), s.Metrics.Counters["engine.frames"])
	assert.Positive(t, s.Metrics.Counters["ai.searches"])
}

func TestHeadlessFrameLimit(t *testing.T) {
	s, _ := runDemo(t, "-headless", "-frames", "3", "-config", quietConfig(t, nil))

	assert.Equal(t, "moving", s.State)
	assert.Equal(t, 3, s.Frames)
	assert.NotEmpty(t, s.Path)
}

func TestHeadlessMaze(t *testing.T) {
	path := quietConfig(t, func(c *config.Config) {
		c.Scenario.Columns, c.Scenario.Rows = 11, 11
		c.Scenario.Blocked = nil
		c.Scenario.Start = config.Cell{X: 1, Z: 1}
		c.Scenario.Goal = config.Cell{X: 9, Z: 9}
	})
	s, _ := runDemo(t, "-headless", "-maze", "-seed", "42", "-config", path)

	assert.Equal(t, "arrived", s.State)
	assert.Equal(t, 121-49, s.Blocked)
}

func TestDumpConfig(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-dump-config", "-inspect", "127.0.0.1:0"}, &out, io.Discard))

	cfg, err := config.Parse(out.Bytes())
	require.NoError(t, err)
	assert.True(t, cfg.Inspect.Enabled)
	assert.Equal(t, "127.0.0.1:0", cfg.Inspect.Address)
	assert.Equal(t, config.Default().Scenario, cfg.Scenario)
}

func TestRunRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"negative frames", []string{"-headless", "-frames", "-1"}, config.ErrInvalid},
		{"help", []string{"-h"}, flag.ErrHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), tt.args, io.Discard, io.Discard)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unknown flag", func(t *testing.T) {
		assert.Error(t, run(context.Background(), []string{"-bogus"}, io.Discard, io.Discard))
	})
	t.Run("missing config", func(t *testing.T) {
		err := run(context.Background(), []string{"-headless", "-config", filepath.Join(t.TempDir(), "none.toml")}, io.Discard, io.Discard)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("invalid config", func(t *testing.T) {
		path := quietConfig(t, func(c *config.Config) { c.Scenario.Maze.Braiding = 2 })
		err := run(context.Background(), []string{"-headless", "-config", path}, io.Discard, io.Discard)
		assert.ErrorIs(t, err, config.ErrInvalid)
	})
}

func TestCanceledRunStillReports(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"-headless", "-config", quietConfig(t, nil)}, &out, io.Discard))

	var s summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Zero(t, s.Frames)
	assert.Equal(t, "idle", s.State)
}

func TestHeadlessWithInspector(t *testing.T) {
	s, _ := runDemo(t, "-headless", "-inspect", "127.0.0.1:0", "-config", quietConfig(t, nil))

	assert.Equal(t, "arrived", s.State)
	assert.Equal(t, float64(1), s.Metrics.Gauges["engine.worlds"])
}
