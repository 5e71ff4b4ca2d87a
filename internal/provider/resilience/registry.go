package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Health is a snapshot of one provider's health.
type Health struct {
	// Name is the provider identifier.
	Name string

	// BreakerState is the provider's current circuit breaker state.
	BreakerState gobreaker.State

	// Counts holds the breaker's request statistics.
	Counts gobreaker.Counts

	// LastSuccessAt is when the provider last answered successfully.
	LastSuccessAt *time.Time

	// LastFailureAt is when the provider last failed.
	LastFailureAt *time.Time

	// LastError is the most recent failure message, if any.
	LastError string
}

// Healthy reports whether the provider's breaker is closed.
func (h *Health) Healthy() bool {
	return h.BreakerState == gobreaker.StateClosed
}

// Degraded reports whether the breaker is half-open (probing).
func (h *Health) Degraded() bool {
	return h.BreakerState == gobreaker.StateHalfOpen
}

// Registry tracks provider clients and their observed health.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*trackedProvider
}

type trackedProvider struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]*trackedProvider)}
}

// Register adds a provider client to the registry.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = &trackedProvider{client: client}
}

// Unregister removes a provider from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, name)
}

// RecordSuccess records a successful request for a provider.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[name]; ok {
		now := time.Now()
		p.lastSuccessAt = &now
	}
}

// RecordFailure records a failed request for a provider.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[name]; ok {
		now := time.Now()
		p.lastFailureAt = &now
		if err != nil {
			p.lastError = err.Error()
		}
	}
}

// GetHealth returns the health of one provider, or nil if unregistered.
func (r *Registry) GetHealth(name string) *Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil
	}
	return p.snapshot(name)
}

// GetAllHealth returns the health of every registered provider.
func (r *Registry) GetAllHealth() []*Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make([]*Health, 0, len(r.providers))
	for name, p := range r.providers {
		health = append(health, p.snapshot(name))
	}
	return health
}

// ProviderCount returns the number of registered providers.
func (r *Registry) ProviderCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

func (p *trackedProvider) snapshot(name string) *Health {
	return &Health{
		Name:          name,
		BreakerState:  p.client.BreakerState(),
		Counts:        p.client.BreakerCounts(),
		LastSuccessAt: p.lastSuccessAt,
		LastFailureAt: p.lastFailureAt,
		LastError:     p.lastError,
	}
}
