package region

import "time"

// DefaultDataset returns the bundled regional reference data for the covered
// Indian metro cities. Deployments backed by Postgres replace this via the
// refresh worker; the bundled copy keeps the engine usable with no database.
func DefaultDataset() Dataset {
	return Dataset{
		Cities:    defaultCities(),
		Festivals: defaultFestivals(),
		Zones:     defaultConstructionZones(),
		Changes:   defaultInfrastructureChanges(),
	}
}

func defaultCities() []*CityProfile {
	return []*CityProfile{
		{
			Name: "Bengaluru",
			Lat:  12.9716, Lon: 77.5946,
			MorningPeak: PeakWindow{StartHour: 8, EndHour: 11, Severity: 9},
			EveningPeak: PeakWindow{StartHour: 17, EndHour: 21, Severity: 10},
			Speeds:      SpeedProfile{PeakKmh: 12, OffPeakKmh: 25, NightKmh: 40},
		},
		{
			Name: "Mumbai",
			Lat:  19.0760, Lon: 72.8777,
			MorningPeak: PeakWindow{StartHour: 8, EndHour: 11, Severity: 9},
			EveningPeak: PeakWindow{StartHour: 18, EndHour: 21, Severity: 9},
			Speeds:      SpeedProfile{PeakKmh: 15, OffPeakKmh: 28, NightKmh: 45},
		},
		{
			Name: "Delhi",
			Lat:  28.6139, Lon: 77.2090,
			MorningPeak: PeakWindow{StartHour: 8, EndHour: 10, Severity: 8},
			EveningPeak: PeakWindow{StartHour: 17, EndHour: 20, Severity: 9},
			Speeds:      SpeedProfile{PeakKmh: 18, OffPeakKmh: 32, NightKmh: 50},
		},
		{
			Name: "Chennai",
			Lat:  13.0827, Lon: 80.2707,
			MorningPeak: PeakWindow{StartHour: 8, EndHour: 10, Severity: 7},
			EveningPeak: PeakWindow{StartHour: 17, EndHour: 20, Severity: 8},
			Speeds:      SpeedProfile{PeakKmh: 18, OffPeakKmh: 30, NightKmh: 45},
		},
		{
			Name: "Hyderabad",
			Lat:  17.3850, Lon: 78.4867,
			MorningPeak: PeakWindow{StartHour: 8, EndHour: 10, Severity: 7},
			EveningPeak: PeakWindow{StartHour: 17, EndHour: 20, Severity: 8},
			Speeds:      SpeedProfile{PeakKmh: 20, OffPeakKmh: 32, NightKmh: 48},
		},
		{
			Name: "Pune",
			Lat:  18.5204, Lon: 73.8567,
			MorningPeak: PeakWindow{StartHour: 8, EndHour: 10, Severity: 8},
			EveningPeak: PeakWindow{StartHour: 17, EndHour: 20, Severity: 8},
			Speeds:      SpeedProfile{PeakKmh: 16, OffPeakKmh: 28, NightKmh: 42},
		},
		{
			Name: "Kolkata",
			Lat:  22.5726, Lon: 88.3639,
			MorningPeak: PeakWindow{StartHour: 9, EndHour: 11, Severity: 7},
			EveningPeak: PeakWindow{StartHour: 17, EndHour: 20, Severity: 8},
			Speeds:      SpeedProfile{PeakKmh: 16, OffPeakKmh: 27, NightKmh: 40},
		},
	}
}

func defaultFestivals() []*Festival {
	return []*Festival{
		{
			Name:       "Diwali",
			Months:     []time.Month{time.October, time.November},
			Multiplier: 1.5,
			Regions:    []string{"pan-india"},
		},
		{
			Name:       "Ganesh Chaturthi",
			Months:     []time.Month{time.August, time.September},
			Multiplier: 1.4,
			Regions:    []string{"Mumbai", "Pune"},
		},
		{
			Name:       "Durga Puja",
			Months:     []time.Month{time.September, time.October},
			Multiplier: 1.5,
			Regions:    []string{"Kolkata"},
		},
		{
			Name:       "Holi",
			Months:     []time.Month{time.March},
			Multiplier: 1.2,
			Regions:    []string{"Delhi", "Mumbai", "Kolkata"},
		},
		{
			Name:       "Year-end season",
			Months:     []time.Month{time.December},
			Multiplier: 1.3,
			Regions:    []string{"pan-india"},
		},
	}
}

func defaultConstructionZones() []*ConstructionZone {
	return []*ConstructionZone{
		{
			ID:             "cz_blr_orr_metro",
			City:           "Bengaluru",
			Corridor:       "Outer Ring Road, Silk Board to KR Puram",
			Status:         ConstructionActive,
			DelayMinutes:   20,
			AlternateRoute: "Old Airport Road via Marathahalli",
			ExpectedEndAt:  time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "cz_blr_hebbal_flyover",
			City:           "Bengaluru",
			Corridor:       "Hebbal flyover loop widening",
			Status:         ConstructionDelayed,
			DelayMinutes:   12,
			AlternateRoute: "Service road via Veeranapalya",
			ExpectedEndAt:  time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "cz_mum_coastal_road",
			City:           "Mumbai",
			Corridor:       "Coastal Road interchange, Worli",
			Status:         ConstructionDelayed,
			DelayMinutes:   15,
			AlternateRoute: "Annie Besant Road",
			ExpectedEndAt:  time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "cz_che_metro_ph2",
			City:           "Chennai",
			Corridor:       "Metro phase 2, Porur junction",
			Status:         ConstructionActive,
			DelayMinutes:   8,
			AlternateRoute: "Arcot Road via Valasaravakkam",
			ExpectedEndAt:  time.Date(2027, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "cz_pun_riverfront",
			City:          "Pune",
			Corridor:      "Riverfront road, Bund Garden",
			Status:        ConstructionCompleted,
			DelayMinutes:  0,
			ExpectedEndAt: time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC),
		},
	}
}

func defaultInfrastructureChanges() []*InfrastructureChange {
	return []*InfrastructureChange{
		{
			City:          "Bengaluru",
			Category:      "metro",
			Summary:       "Purple Line extension to Whitefield open end to end",
			EffectiveFrom: time.Date(2023, time.October, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			City:          "Mumbai",
			Category:      "road",
			Summary:       "Atal Setu trans-harbour link open to traffic",
			EffectiveFrom: time.Date(2024, time.January, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			City:          "Delhi",
			Category:      "corridor",
			Summary:       "Dwarka Expressway Delhi section open",
			EffectiveFrom: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			City:          "Chennai",
			Category:      "metro",
			Summary:       "Metro phase 2 trial runs on Poonamallee stretch",
			EffectiveFrom: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}
