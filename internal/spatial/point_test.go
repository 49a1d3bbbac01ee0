package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointIsValid(t *testing.T) {
	assert.True(t, Point{Lat: 40.0, Lon: -73.0}.IsValid())
	assert.True(t, Point{}.IsValid())
	assert.False(t, Point{Lat: math.NaN(), Lon: -73.0}.IsValid())
	assert.False(t, Point{Lat: 40.0, Lon: math.NaN()}.IsValid())
	assert.False(t, Point{Lat: math.Inf(1), Lon: 0}.IsValid())
}

func TestCentroid(t *testing.T) {
	_, ok := Centroid(nil)
	assert.False(t, ok)

	p, ok := Centroid([]Point{{Lat: 40.0, Lon: -73.0}})
	require.True(t, ok)
	assert.Equal(t, Point{Lat: 40.0, Lon: -73.0}, p)

	p, ok = Centroid([]Point{{Lat: 40.0, Lon: -73.0}, {Lat: 41.0, Lon: -74.0}})
	require.True(t, ok)
	assert.InDelta(t, 40.5, p.Lat, 1e-12)
	assert.InDelta(t, -73.5, p.Lon, 1e-12)
}

func TestWeightedCentroid(t *testing.T) {
	points := []Point{{Lat: 40.0, Lon: -73.0}, {Lat: 44.0, Lon: -77.0}}

	p, ok := WeightedCentroid(points, []float64{3, 1})
	require.True(t, ok)
	assert.InDelta(t, 41.0, p.Lat, 1e-12)
	assert.InDelta(t, -74.0, p.Lon, 1e-12)

	// Missing trailing weights default to 1
	p, ok = WeightedCentroid(points, []float64{3})
	require.True(t, ok)
	assert.InDelta(t, 41.0, p.Lat, 1e-12)

	_, ok = WeightedCentroid(points, []float64{0, 0})
	assert.False(t, ok)
}

func TestDistance(t *testing.T) {
	a := Point{Lat: 40.7128, Lon: -74.0060}  // New York
	b := Point{Lat: 34.0522, Lon: -118.2437} // Los Angeles

	d := Distance(a, b)
	assert.InDelta(t, 3935000, d, 10000)

	assert.Equal(t, d, Distance(b, a))
	assert.Zero(t, Distance(a, a))
}

func TestHaversineDistanceShortRange(t *testing.T) {
	// One degree of longitude at the equator
	d := HaversineDistance(0, 0, 0, 1)
	assert.InDelta(t, EarthRadiusMeters*math.Pi/180, d, 1e-6)
}
