// Package geo provides great-circle distance helpers.
package geo

import "math"

// earthRadiusKm is the mean Earth radius.
const earthRadiusKm = 6371.0

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// HaversineKm returns the great-circle distance between two points in
// kilometres.
func HaversineKm(a, b Coordinate) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// RoadDistanceKm approximates the driving distance between two points by
// scaling the great-circle distance with a fixed detour factor. Used as a
// fallback when no routing provider is reachable.
func RoadDistanceKm(a, b Coordinate) float64 {
	// Urban road networks in the covered region average ~30% longer than
	// the crow flies.
	const detourFactor = 1.3
	return HaversineKm(a, b) * detourFactor
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
