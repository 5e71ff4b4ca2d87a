package polyline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/margdarshak/margdarshak/pkg/geo"
	"github.com/margdarshak/margdarshak/pkg/polyline"
)

// Reference vector from the polyline algorithm documentation.
var referencePath = []geo.Coordinate{
	{Lat: 38.5, Lon: -120.2},
	{Lat: 40.7, Lon: -120.95},
	{Lat: 43.252, Lon: -126.453},
}

const referenceEncoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func TestDecode(t *testing.T) {
	coords := polyline.Decode(referenceEncoded)

	assert.Len(t, coords, 3)
	for i, want := range referencePath {
		assert.InDelta(t, want.Lat, coords[i].Lat, 1e-5)
		assert.InDelta(t, want.Lon, coords[i].Lon, 1e-5)
	}
}

func TestDecode_Empty(t *testing.T) {
	assert.Nil(t, polyline.Decode(""))
}

func TestEncode(t *testing.T) {
	assert.Equal(t, referenceEncoded, polyline.Encode(referencePath))
}

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "", polyline.Encode(nil))
}

func TestEncode_RoundTrip(t *testing.T) {
	path := []geo.Coordinate{
		{Lat: 12.9716, Lon: 77.5946},
		{Lat: 13.0827, Lon: 80.2707},
	}

	decoded := polyline.Decode(polyline.Encode(path))

	assert.Len(t, decoded, 2)
	for i := range path {
		assert.InDelta(t, path[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, path[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestLengthKm(t *testing.T) {
	path := []geo.Coordinate{
		{Lat: 12.9716, Lon: 77.5946},
		{Lat: 12.9816, Lon: 77.5946},
	}

	// 0.01 degrees of latitude is roughly 1.11 km.
	assert.InDelta(t, 1.11, polyline.LengthKm(path), 0.02)
	assert.Zero(t, polyline.LengthKm(path[:1]))
}
