package region

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository serves regional reference data from PostgreSQL.
// Used by deployments that curate the dataset out-of-band; the refresh
// worker reads from here and swaps the result into the in-memory store.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a repository backed by the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// CityProfile retrieves a city's traffic profile by name, case-insensitively.
func (r *PostgresRepository) CityProfile(ctx context.Context, name string) (*CityProfile, error) {
	query := `
		SELECT name, lat, lon,
		       morning_start, morning_end, morning_severity,
		       evening_start, evening_end, evening_severity,
		       peak_speed_kmh, offpeak_speed_kmh, night_speed_kmh
		FROM city_profiles
		WHERE lower(name) = lower($1)`

	var c CityProfile
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&c.Name, &c.Lat, &c.Lon,
		&c.MorningPeak.StartHour, &c.MorningPeak.EndHour, &c.MorningPeak.Severity,
		&c.EveningPeak.StartHour, &c.EveningPeak.EndHour, &c.EveningPeak.Severity,
		&c.Speeds.PeakKmh, &c.Speeds.OffPeakKmh, &c.Speeds.NightKmh,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("query city profile: %w", err)
	}
	return &c, nil
}

// CityProfiles retrieves all covered city profiles.
func (r *PostgresRepository) CityProfiles(ctx context.Context) ([]*CityProfile, error) {
	query := `
		SELECT name, lat, lon,
		       morning_start, morning_end, morning_severity,
		       evening_start, evening_end, evening_severity,
		       peak_speed_kmh, offpeak_speed_kmh, night_speed_kmh
		FROM city_profiles
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query city profiles: %w", err)
	}
	defer rows.Close()

	var cities []*CityProfile
	for rows.Next() {
		var c CityProfile
		if err := rows.Scan(
			&c.Name, &c.Lat, &c.Lon,
			&c.MorningPeak.StartHour, &c.MorningPeak.EndHour, &c.MorningPeak.Severity,
			&c.EveningPeak.StartHour, &c.EveningPeak.EndHour, &c.EveningPeak.Severity,
			&c.Speeds.PeakKmh, &c.Speeds.OffPeakKmh, &c.Speeds.NightKmh,
		); err != nil {
			return nil, fmt.Errorf("scan city profile: %w", err)
		}
		cities = append(cities, &c)
	}
	return cities, rows.Err()
}

// ConstructionZones retrieves construction zones, optionally filtered by city.
func (r *PostgresRepository) ConstructionZones(ctx context.Context, city string) ([]*ConstructionZone, error) {
	query := `
		SELECT id, city, corridor, status, delay_minutes,
		       COALESCE(alternate_route, ''), expected_end_at
		FROM construction_zones
		WHERE $1 = '' OR lower(city) = lower($1)
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, city)
	if err != nil {
		return nil, fmt.Errorf("query construction zones: %w", err)
	}
	defer rows.Close()

	var zones []*ConstructionZone
	for rows.Next() {
		var z ConstructionZone
		if err := rows.Scan(
			&z.ID, &z.City, &z.Corridor, &z.Status,
			&z.DelayMinutes, &z.AlternateRoute, &z.ExpectedEndAt,
		); err != nil {
			return nil, fmt.Errorf("scan construction zone: %w", err)
		}
		zones = append(zones, &z)
	}
	return zones, rows.Err()
}

// Festivals retrieves the full festival calendar.
func (r *PostgresRepository) Festivals(ctx context.Context) ([]*Festival, error) {
	query := `
		SELECT name, months, multiplier, regions
		FROM festivals
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query festivals: %w", err)
	}
	defer rows.Close()

	var festivals []*Festival
	for rows.Next() {
		var f Festival
		var months []int32
		if err := rows.Scan(&f.Name, &months, &f.Multiplier, &f.Regions); err != nil {
			return nil, fmt.Errorf("scan festival: %w", err)
		}
		f.Months = toMonths(months)
		festivals = append(festivals, &f)
	}
	return festivals, rows.Err()
}

// InfrastructureChanges retrieves change records, optionally filtered by city.
func (r *PostgresRepository) InfrastructureChanges(ctx context.Context, city string) ([]*InfrastructureChange, error) {
	query := `
		SELECT city, category, summary, effective_from
		FROM infrastructure_changes
		WHERE $1 = '' OR lower(city) = lower($1)
		ORDER BY effective_from DESC`

	rows, err := r.pool.Query(ctx, query, city)
	if err != nil {
		return nil, fmt.Errorf("query infrastructure changes: %w", err)
	}
	defer rows.Close()

	var changes []*InfrastructureChange
	for rows.Next() {
		var c InfrastructureChange
		if err := rows.Scan(&c.City, &c.Category, &c.Summary, &c.EffectiveFrom); err != nil {
			return nil, fmt.Errorf("scan infrastructure change: %w", err)
		}
		changes = append(changes, &c)
	}
	return changes, rows.Err()
}

// Snapshot loads the full dataset in one pass, for the refresh worker.
func (r *PostgresRepository) Snapshot(ctx context.Context) (Dataset, error) {
	cities, err := r.CityProfiles(ctx)
	if err != nil {
		return Dataset{}, err
	}
	festivals, err := r.Festivals(ctx)
	if err != nil {
		return Dataset{}, err
	}
	zones, err := r.ConstructionZones(ctx, "")
	if err != nil {
		return Dataset{}, err
	}
	changes, err := r.InfrastructureChanges(ctx, "")
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Cities: cities, Festivals: festivals, Zones: zones, Changes: changes}, nil
}

func toMonths(values []int32) []time.Month {
	months := make([]time.Month, 0, len(values))
	for _, v := range values {
		months = append(months, time.Month(v))
	}
	return months
}

// Ensure PostgresRepository implements Repository.
var _ Repository = (*PostgresRepository)(nil)
