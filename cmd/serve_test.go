package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
)

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, &contract.Config{LogFormat: "json", LogLevel: slog.LevelInfo}).Info("hello", "k", "v")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "v", entry["k"])
	})

	t.Run("text filters by level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, &contract.Config{LogFormat: "text", LogLevel: slog.LevelWarn})
		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})
}

func TestNewEngine(t *testing.T) {
	engine, err := newEngine(&contract.Config{
		ProfileOverride: schema.ProfileSpeed,
		GateOverride:    map[string]float64{"min_geo": 90},
		Merge:           schema.MergeShallow,
	})
	require.NoError(t, err)

	defaults := engine.Defaults()
	assert.Equal(t, schema.ProfileSpeed, defaults.Profile)
	assert.InDelta(t, 90.0, defaults.Gate.MinGeo, 1e-9)
	assert.InDelta(t, 70.0, defaults.Gate.MinEach, 1e-9)

	t.Run("invalid override", func(t *testing.T) {
		_, err := newEngine(&contract.Config{ScoreOverride: map[string]any{"gate": "x"}})
		assert.Error(t, err)
	})
}

func TestRunServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &contract.Config{
		Addr:            "127.0.0.1:0",
		MaxBodyBytes:    contract.DefaultMaxBodyBytes,
		ShutdownTimeout: time.Second,
		MCPEndpoint:     true,
		ServiceName:     contract.DefaultServiceName,
		Merge:           schema.MergeShallow,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	defer slog.SetDefault(slog.Default())

	assert.NoError(t, runServer(ctx, c, logger))
}
