// Package worker provides background job processing for Margdarshak.
package worker

import (
	"time"
)

// WarmTarget represents a metro area whose routes get prewarmed after a
// reference-data reload.
type WarmTarget struct {
	// Name is the human-readable name of the target.
	Name string

	// Point is the city's reference coordinate.
	Point Point

	// Priority determines warming order (lower = higher priority).
	Priority int
}

// Point represents a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// ReloadConfig holds configuration for the region reload job.
type ReloadConfig struct {
	// Targets are the metro areas to prewarm routes for.
	// If empty, uses DefaultWarmTargets.
	Targets []WarmTarget

	// Concurrency is the number of concurrent validation and warming
	// operations. Default: 3
	Concurrency int

	// Timeout is the timeout for each operation.
	// Default: 30 seconds
	Timeout time.Duration

	// WarmRoutes enables route cache prewarming between targets.
	// Default: true
	WarmRoutes bool
}

// DefaultReloadConfig returns the default reload configuration.
func DefaultReloadConfig() ReloadConfig {
	return ReloadConfig{
		Targets:     DefaultWarmTargets(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
		WarmRoutes:  true,
	}
}

// DefaultWarmTargets returns the default targets for India. Focuses on the
// major metros and the busiest intercity corridors between them.
func DefaultWarmTargets() []WarmTarget {
	return []WarmTarget{
		{Name: "Bengaluru", Priority: 1, Point: Point{Lat: 12.9716, Lon: 77.5946}},
		{Name: "Mumbai", Priority: 1, Point: Point{Lat: 19.0760, Lon: 72.8777}},
		{Name: "Delhi", Priority: 1, Point: Point{Lat: 28.6139, Lon: 77.2090}},
		{Name: "Chennai", Priority: 2, Point: Point{Lat: 13.0827, Lon: 80.2707}},
		{Name: "Hyderabad", Priority: 2, Point: Point{Lat: 17.3850, Lon: 78.4867}},
		{Name: "Pune", Priority: 2, Point: Point{Lat: 18.5204, Lon: 73.8567}},
		{Name: "Kolkata", Priority: 3, Point: Point{Lat: 22.5726, Lon: 88.3639}},
	}
}

// RoutePair is one origin/destination pair to prewarm.
type RoutePair struct {
	OriginName      string
	DestinationName string
	Origin          Point
	Destination     Point
}

// WarmPairs returns the route pairs to prewarm: every priority-1 target to
// every other target, ordered by the destination's priority.
func (c ReloadConfig) WarmPairs() []RoutePair {
	var pairs []RoutePair
	for _, origin := range c.Targets {
		if origin.Priority != 1 {
			continue
		}
		for _, dest := range c.Targets {
			if dest.Name == origin.Name {
				continue
			}
			pairs = append(pairs, RoutePair{
				OriginName:      origin.Name,
				DestinationName: dest.Name,
				Origin:          origin.Point,
				Destination:     dest.Point,
			})
		}
	}
	return pairs
}
