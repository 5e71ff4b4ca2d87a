package region_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margdarshak/margdarshak/internal/region"
)

func testDataset() region.Dataset {
	return region.Dataset{
		Cities: []*region.CityProfile{
			{
				Name: "Bengaluru",
				Lat:  12.9716, Lon: 77.5946,
				MorningPeak: region.PeakWindow{StartHour: 8, EndHour: 11, Severity: 9},
				EveningPeak: region.PeakWindow{StartHour: 17, EndHour: 21, Severity: 10},
				Speeds:      region.SpeedProfile{PeakKmh: 12, OffPeakKmh: 25, NightKmh: 40},
			},
		},
		Festivals: []*region.Festival{
			{Name: "Diwali", Months: []time.Month{time.October, time.November}, Multiplier: 1.5},
			{Name: "Holi", Months: []time.Month{time.March}, Multiplier: 1.2},
			{Name: "Year-end season", Months: []time.Month{time.December}, Multiplier: 1.3},
		},
		Zones: []*region.ConstructionZone{
			{ID: "z1", City: "Bengaluru", Status: region.ConstructionActive, DelayMinutes: 20},
			{ID: "z2", City: "Bengaluru", Status: region.ConstructionDelayed, DelayMinutes: 12},
			{ID: "z3", City: "Bengaluru", Status: region.ConstructionCompleted, DelayMinutes: 0},
			{ID: "z4", City: "Mumbai", Status: region.ConstructionActive, DelayMinutes: 15},
		},
	}
}

func newTestStore() *region.Store {
	return region.NewStore(region.NewInMemoryRepository(testDataset()))
}

func TestStore_CityProfile_CaseInsensitive(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	for _, name := range []string{"Bengaluru", "bengaluru", "BENGALURU", "  Bengaluru  "} {
		profile, err := store.CityProfile(ctx, name)
		require.NoError(t, err, "lookup %q", name)
		assert.Equal(t, "Bengaluru", profile.Name)
	}
}

func TestStore_CityProfile_NotFound(t *testing.T) {
	store := newTestStore()

	_, err := store.CityProfile(context.Background(), "Mysuru")
	assert.ErrorIs(t, err, region.ErrCityNotFound)
	assert.False(t, store.HasCity(context.Background(), "Mysuru"))
	assert.True(t, store.HasCity(context.Background(), "bengaluru"))
}

func TestStore_CityProfile_SpeedOrdering(t *testing.T) {
	// Congestion slows peak hours most, so peak < off-peak < night.
	store := region.NewStore(region.NewInMemoryRepository(region.DefaultDataset()))
	cities, err := store.CityProfiles(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cities)

	for _, c := range cities {
		assert.Less(t, c.Speeds.PeakKmh, c.Speeds.OffPeakKmh, c.Name)
		assert.Less(t, c.Speeds.OffPeakKmh, c.Speeds.NightKmh, c.Name)
	}
}

func TestStore_ActiveConstructionZones_FiltersCompleted(t *testing.T) {
	store := newTestStore()

	zones, err := store.ActiveConstructionZones(context.Background(), "Bengaluru")
	require.NoError(t, err)
	require.Len(t, zones, 2)
	for _, z := range zones {
		assert.True(t, z.Live())
	}
}

func TestStore_ActiveConstructionZones_AllCities(t *testing.T) {
	store := newTestStore()

	zones, err := store.ActiveConstructionZones(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, zones, 3)
}

func TestStore_UpcomingFestivals_LookAhead(t *testing.T) {
	// Festivals surface during their month and one month ahead: a trip
	// planned in September already sees Diwali (October).
	store := newTestStore()
	ctx := context.Background()

	tests := []struct {
		month time.Month
		want  []string
	}{
		{time.September, []string{"Diwali"}},
		{time.October, []string{"Diwali"}},
		{time.November, []string{"Diwali", "Year-end season"}},
		{time.February, []string{"Holi"}},
		{time.March, []string{"Holi"}},
		{time.April, nil},
		// December wraps: month+1 is January, nothing in January.
		{time.December, []string{"Year-end season"}},
	}

	for _, tt := range tests {
		festivals, err := store.UpcomingFestivals(ctx, tt.month)
		require.NoError(t, err, tt.month)

		names := make([]string, 0, len(festivals))
		for _, f := range festivals {
			names = append(names, f.Name)
		}
		assert.ElementsMatch(t, tt.want, names, tt.month.String())
	}
}

func TestStore_Swap_ReplacesDataset(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.True(t, store.HasCity(ctx, "Bengaluru"))

	store.Swap(region.NewInMemoryRepository(region.Dataset{
		Cities: []*region.CityProfile{{Name: "Kochi"}},
	}))

	assert.False(t, store.HasCity(ctx, "Bengaluru"))
	assert.True(t, store.HasCity(ctx, "Kochi"))
}
