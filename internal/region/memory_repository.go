package region

import (
	"context"
	"strings"
)

// InMemoryRepository serves regional reference data from memory.
// It backs the default deployment (bundled dataset) and tests, and is the
// swap target for the refresh worker.
type InMemoryRepository struct {
	cities    map[string]*CityProfile // keyed by lowercased name
	ordered   []*CityProfile
	festivals []*Festival
	zones     []*ConstructionZone
	changes   []*InfrastructureChange
}

// NewInMemoryRepository creates a repository from a dataset.
// The dataset is not copied; callers must not mutate it afterwards.
func NewInMemoryRepository(data Dataset) *InMemoryRepository {
	cities := make(map[string]*CityProfile, len(data.Cities))
	for _, c := range data.Cities {
		cities[strings.ToLower(c.Name)] = c
	}
	return &InMemoryRepository{
		cities:    cities,
		ordered:   data.Cities,
		festivals: data.Festivals,
		zones:     data.Zones,
		changes:   data.Changes,
	}
}

// CityProfile retrieves a city's traffic profile by name, case-insensitively.
func (r *InMemoryRepository) CityProfile(_ context.Context, name string) (*CityProfile, error) {
	c, ok := r.cities[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrCityNotFound
	}
	return c, nil
}

// CityProfiles retrieves all covered city profiles.
func (r *InMemoryRepository) CityProfiles(_ context.Context) ([]*CityProfile, error) {
	return r.ordered, nil
}

// ConstructionZones retrieves construction zones, optionally filtered by city.
func (r *InMemoryRepository) ConstructionZones(_ context.Context, city string) ([]*ConstructionZone, error) {
	if city == "" {
		return r.zones, nil
	}
	var zones []*ConstructionZone
	for _, z := range r.zones {
		if strings.EqualFold(z.City, city) {
			zones = append(zones, z)
		}
	}
	return zones, nil
}

// Festivals retrieves the full festival calendar.
func (r *InMemoryRepository) Festivals(_ context.Context) ([]*Festival, error) {
	return r.festivals, nil
}

// InfrastructureChanges retrieves change records, optionally filtered by city.
func (r *InMemoryRepository) InfrastructureChanges(_ context.Context, city string) ([]*InfrastructureChange, error) {
	if city == "" {
		return r.changes, nil
	}
	var changes []*InfrastructureChange
	for _, c := range r.changes {
		if strings.EqualFold(c.City, city) {
			changes = append(changes, c)
		}
	}
	return changes, nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
