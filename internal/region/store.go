package region

import (
	"context"
	"sync/atomic"
	"time"
)

// Store is the read-side facade over a Repository. It applies the lookup
// semantics the scoring engine depends on: construction zones filtered to
// live statuses and festivals surfaced one month ahead of their occurrence.
//
// The backing repository can be replaced atomically between requests via
// Swap; a request that already resolved the repository keeps reading the
// snapshot it started with.
type Store struct {
	repo atomic.Pointer[repoHolder]
}

type repoHolder struct {
	Repository
}

// NewStore creates a store backed by the given repository.
func NewStore(repo Repository) *Store {
	s := &Store{}
	s.repo.Store(&repoHolder{repo})
	return s
}

// Swap replaces the backing repository. Safe to call while requests are in
// flight; in-flight requests keep their snapshot.
func (s *Store) Swap(repo Repository) {
	s.repo.Store(&repoHolder{repo})
}

func (s *Store) current() Repository {
	return s.repo.Load().Repository
}

// CityProfile retrieves a city's traffic profile by name, case-insensitively.
// Returns ErrCityNotFound for uncovered cities.
func (s *Store) CityProfile(ctx context.Context, name string) (*CityProfile, error) {
	return s.current().CityProfile(ctx, name)
}

// CityProfiles retrieves all covered city profiles.
func (s *Store) CityProfiles(ctx context.Context) ([]*CityProfile, error) {
	return s.current().CityProfiles(ctx)
}

// HasCity reports whether a city has a traffic profile.
func (s *Store) HasCity(ctx context.Context, name string) bool {
	_, err := s.CityProfile(ctx, name)
	return err == nil
}

// ActiveConstructionZones retrieves the zones that participate in live
// scoring: status active or delayed. Completed zones are excluded.
// An empty city returns live zones for all cities.
func (s *Store) ActiveConstructionZones(ctx context.Context, city string) ([]*ConstructionZone, error) {
	zones, err := s.current().ConstructionZones(ctx, city)
	if err != nil {
		return nil, err
	}
	live := make([]*ConstructionZone, 0, len(zones))
	for _, z := range zones {
		if z.Live() {
			live = append(live, z)
		}
	}
	return live, nil
}

// UpcomingFestivals retrieves festivals relevant to the given month.
// A festival matches if it occurs in the month itself or in the following
// month (wrapping December to January): the calendar deliberately looks one
// month ahead so trips planned just before a festival see its congestion.
func (s *Store) UpcomingFestivals(ctx context.Context, month time.Month) ([]*Festival, error) {
	festivals, err := s.current().Festivals(ctx)
	if err != nil {
		return nil, err
	}
	next := month%12 + 1
	matched := make([]*Festival, 0, len(festivals))
	for _, f := range festivals {
		if f.InMonth(month) || f.InMonth(next) {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

// InfrastructureChanges retrieves change records, optionally filtered by city.
func (s *Store) InfrastructureChanges(ctx context.Context, city string) ([]*InfrastructureChange, error) {
	return s.current().InfrastructureChanges(ctx, city)
}
