package region

import "context"

// Repository provides raw access to regional reference data.
// Implementations must be safe for concurrent readers; the data behind a
// repository never mutates once constructed.
type Repository interface {
	// CityProfile retrieves a city's traffic profile by name.
	// Lookup is case-insensitive. Returns ErrCityNotFound if uncovered.
	CityProfile(ctx context.Context, name string) (*CityProfile, error)

	// CityProfiles retrieves all covered city profiles.
	CityProfiles(ctx context.Context) ([]*CityProfile, error)

	// ConstructionZones retrieves construction zones regardless of status.
	// An empty city returns zones for all cities.
	ConstructionZones(ctx context.Context, city string) ([]*ConstructionZone, error)

	// Festivals retrieves the full festival calendar.
	Festivals(ctx context.Context) ([]*Festival, error)

	// InfrastructureChanges retrieves infrastructure change records.
	// An empty city returns records for all cities.
	InfrastructureChanges(ctx context.Context, city string) ([]*InfrastructureChange, error)
}
