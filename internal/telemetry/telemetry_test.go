package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Settings{ServiceName: "scorefn", Version: "test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_Enabled(t *testing.T) {
	// Exporters connect lazily, so an unreachable collector does not fail Init.
	shutdown, err := Init(context.Background(), Settings{
		Endpoint:    "127.0.0.1:1",
		Insecure:    true,
		ServiceName: "scorefn",
		Version:     "test",
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestMeter(t *testing.T) {
	m := Meter("scorefn/test")
	require.NotNil(t, m)
	counter, err := m.Int64Counter("scorefn.test_count")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)
}
