package traffic

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/region"
)

// Multipliers applied by the calculator.
const (
	nightMultiplier   = 0.6
	weekendMultiplier = 0.7
	// Festival multipliers apply at reduced weight: most days in a festival
	// month are ordinary days.
	festivalWeight = 0.3
	// Construction raises the factor once the mean live-zone delay crosses
	// this threshold.
	constructionMultiplier     = 1.15
	constructionDelayThreshold = 10.0

	// Unknown cities get a mildly pessimistic default instead of an error.
	neutralMultiplier = 1.2
	neutralFactor     = "no city data"

	nightStartHour = 22
	nightEndHour   = 5
)

// CalculatorConfig holds configuration for the traffic calculator.
type CalculatorConfig struct {
	// Store provides regional reference data.
	Store *region.Store

	// Logger for calculator operations.
	Logger zerolog.Logger
}

// Calculator computes congestion multipliers. It is stateless beyond its
// reference-data store and safe for concurrent use.
type Calculator struct {
	store  *region.Store
	logger zerolog.Logger
}

// NewCalculator creates a traffic multiplier calculator.
func NewCalculator(cfg CalculatorConfig) *Calculator {
	return &Calculator{
		store:  cfg.Store,
		logger: cfg.Logger,
	}
}

// KnowsCity reports whether the calculator has profile data for the city.
func (c *Calculator) KnowsCity(ctx context.Context, city string) bool {
	return c.store.HasCity(ctx, city)
}

// Multiplier computes the congestion factor for a city at the given local
// hour (0-23), weekday and month. Conditions stack multiplicatively: a
// Saturday morning peak applies both the peak factor and the weekend
// discount. Unknown cities yield the neutral default, never an error.
func (c *Calculator) Multiplier(ctx context.Context, city string, hour int, day time.Weekday, month time.Month) Result {
	profile, err := c.store.CityProfile(ctx, city)
	if err != nil {
		c.logger.Debug().
			Str("city", city).
			Msg("no profile for city, using neutral multiplier")
		return Result{Multiplier: neutralMultiplier, Factors: []string{neutralFactor}}
	}

	factor := 1.0
	var factors []string

	// Peak windows win over the night discount; both windows use closed
	// hour intervals.
	switch {
	case profile.MorningPeak.Contains(hour):
		factor *= 1 + float64(profile.MorningPeak.Severity)/10
		factors = append(factors, "morning peak congestion")
	case profile.EveningPeak.Contains(hour):
		factor *= 1 + float64(profile.EveningPeak.Severity)/10
		factors = append(factors, "evening peak congestion")
	case hour >= nightStartHour || hour <= nightEndHour:
		factor *= nightMultiplier
		factors = append(factors, "night hours, light traffic")
	}

	if day == time.Saturday || day == time.Sunday {
		factor *= weekendMultiplier
		factors = append(factors, "weekend, reduced traffic")
	}

	if festivalFactor, label := c.festivalFactor(ctx, month); festivalFactor != 1 {
		factor *= festivalFactor
		factors = append(factors, label)
	}

	if c.constructionSlowdown(ctx, city) {
		factor *= constructionMultiplier
		factors = append(factors, "active construction delays")
	}

	return Result{
		Multiplier: round2(factor),
		Factors:    factors,
	}
}

// festivalFactor averages the multipliers of festivals relevant to the month
// and applies them at reduced weight.
func (c *Calculator) festivalFactor(ctx context.Context, month time.Month) (float64, string) {
	festivals, err := c.store.UpcomingFestivals(ctx, month)
	if err != nil || len(festivals) == 0 {
		return 1, ""
	}

	sum := 0.0
	for _, f := range festivals {
		sum += f.Multiplier
	}
	avg := sum / float64(len(festivals))

	label := "festival season"
	if len(festivals) == 1 {
		label = fmt.Sprintf("festival season (%s)", festivals[0].Name)
	}
	return 1 + (avg-1)*festivalWeight, label
}

// constructionSlowdown reports whether live construction zones in the city
// are disruptive enough to slow traffic overall.
func (c *Calculator) constructionSlowdown(ctx context.Context, city string) bool {
	zones, err := c.store.ActiveConstructionZones(ctx, city)
	if err != nil || len(zones) == 0 {
		return false
	}

	total := 0.0
	for _, z := range zones {
		total += z.DelayMinutes
	}
	return total/float64(len(zones)) > constructionDelayThreshold
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
