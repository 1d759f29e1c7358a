package tracing

import (
	"context"
	"testing"

	"forum/config"

	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitStdout(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Name: "forum", Version: "test", Env: "test"},
		Tracing: config.TracingConfig{Enabled: true, Exporter: "stdout", SampleRatio: 1},
	}

	shutdown, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestClampRatio(t *testing.T) {
	require.Equal(t, 0.0, clampRatio(-1))
	require.Equal(t, 0.5, clampRatio(0.5))
	require.Equal(t, 1.0, clampRatio(3))
}
