package resilience_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margdarshak/margdarshak/internal/provider/resilience"
)

func TestRegistry_RegisterAndGetHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("test-provider")
	cfg.Registry = registry

	resilience.NewClient(cfg)

	assert.Equal(t, 1, registry.ProviderCount())

	health := registry.GetHealth("test-provider")
	require.NotNil(t, health)
	assert.Equal(t, "test-provider", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.BreakerState)
	assert.True(t, health.Healthy())
	assert.False(t, health.Degraded())
}

func TestRegistry_Unregister(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("test-provider")
	cfg.Registry = registry
	resilience.NewClient(cfg)

	require.Equal(t, 1, registry.ProviderCount())

	registry.Unregister("test-provider")

	assert.Equal(t, 0, registry.ProviderCount())
	assert.Nil(t, registry.GetHealth("test-provider"))
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := resilience.NewRegistry()

	assert.Nil(t, registry.GetHealth("unknown"))
	assert.Equal(t, 0, registry.ProviderCount())
}

func TestRegistry_RecordSuccess(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("routing")
	cfg.Registry = registry
	resilience.NewClient(cfg)

	registry.RecordSuccess("routing")

	health := registry.GetHealth("routing")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
	assert.Empty(t, health.LastError)
}

func TestRegistry_RecordFailure(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("routing")
	cfg.Registry = registry
	resilience.NewClient(cfg)

	registry.RecordFailure("routing", errors.New("connection refused"))

	health := registry.GetHealth("routing")
	require.NotNil(t, health)
	assert.Nil(t, health.LastSuccessAt)
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "connection refused", health.LastError)
}

func TestRegistry_RecordForUnknownProviderIsNoop(t *testing.T) {
	registry := resilience.NewRegistry()

	// Must not panic.
	registry.RecordSuccess("missing")
	registry.RecordFailure("missing", errors.New("boom"))
}

func TestRegistry_GetAllHealth(t *testing.T) {
	registry := resilience.NewRegistry()

	for _, name := range []string{"routing", "advisor"} {
		cfg := resilience.DefaultClientConfig(name)
		cfg.Registry = registry
		resilience.NewClient(cfg)
	}

	all := registry.GetAllHealth()
	require.Len(t, all, 2)

	names := make(map[string]bool, len(all))
	for _, h := range all {
		names[h.Name] = true
		assert.True(t, h.Healthy())
	}
	assert.True(t, names["routing"])
	assert.True(t, names["advisor"])
}
