package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margdarshak/margdarshak/internal/telemetry"
)

func TestInit_DisabledFallsBackToNoop(t *testing.T) {
	provider, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName: "margdarshak-test",
		Enabled:     false,
	})

	require.NoError(t, err)
	require.NotNil(t, provider)

	// The noop provider still hands out usable tracer and meter so
	// instrumented code never branches on enablement.
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestProvider_ShutdownOnZeroValue(t *testing.T) {
	var provider telemetry.Provider
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestGlobalAccessors(t *testing.T) {
	assert.NotNil(t, telemetry.Tracer("margdarshak-test"))
	assert.NotNil(t, telemetry.Meter("margdarshak-test"))
}
