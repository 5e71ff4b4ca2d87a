// Package traffic computes the congestion multiplier for a city at a point
// in time by composing region profile lookups: peak windows, night and
// weekend discounts, festival calendars and live construction zones.
package traffic

// Level buckets a multiplier into a coarse congestion level.
type Level string

// Congestion levels.
const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Classification thresholds shared by the calculator and departure slots.
const (
	moderateThreshold = 1.2
	highThreshold     = 1.6
)

// ClassifyLevel maps a congestion multiplier to a Level.
func ClassifyLevel(multiplier float64) Level {
	switch {
	case multiplier >= highThreshold:
		return LevelHigh
	case multiplier >= moderateThreshold:
		return LevelModerate
	default:
		return LevelLow
	}
}

// Result is the outcome of a multiplier computation.
type Result struct {
	// Multiplier is the combined congestion factor, >= 0,
	// rounded to two decimals.
	Multiplier float64

	// Factors lists the contributing conditions in order of application:
	// peak window, night/weekend discount, festivals, construction.
	Factors []string
}

// Level returns the congestion level for the result's multiplier.
func (r Result) Level() Level {
	return ClassifyLevel(r.Multiplier)
}
