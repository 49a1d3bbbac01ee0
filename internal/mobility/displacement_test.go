package mobility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mobility-backend-go/internal/spatial"
)

func TestDisplacementTooFewRuns(t *testing.T) {
	d, err := Displacement(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, d)

	// A single run means no travel, so its coordinate is never resolved,
	// even when the cluster id is not resolvable at all
	d, err = Displacement(evenSeries(60, "Cluster One", "Cluster One", "Cluster One"), Options{})
	require.NoError(t, err)
	assert.Empty(t, d)

	// Absent samples do not form runs
	d, err = Displacement(evenSeries(60, "", "a", ""), Options{})
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestDisplacementFromCentroids(t *testing.T) {
	series := Series{
		{Time: 0, Cluster: "a", Lat: 40.0, Lon: -73.0},
		{Time: 60, Cluster: "a", Lat: 40.2, Lon: -73.2},
		{Time: 120, Cluster: "b", Lat: 41.0, Lon: -74.0},
	}

	d, err := Displacement(series, Options{})
	require.NoError(t, err)
	require.Len(t, d, 1)

	centroid := spatial.Point{Lat: (40.0 + 40.2) / 2, Lon: (-73.0 + -73.2) / 2}
	assert.Equal(t, spatial.Distance(centroid, spatial.Point{Lat: 41.0, Lon: -74.0}), d[0])
}

func TestDisplacementFromMapping(t *testing.T) {
	coords := map[string]spatial.Point{
		"a": {Lat: 40.0, Lon: -73.0},
		"b": {Lat: 40.5, Lon: -73.5},
	}
	series := evenSeries(60, "a", "a", "b", "", "a")

	d, err := Displacement(series, Options{ClusterCoords: coords})
	require.NoError(t, err)
	require.Len(t, d, 2)

	ab := spatial.Distance(coords["a"], coords["b"])
	assert.Equal(t, ab, d[0])
	assert.Equal(t, ab, d[1])
}

func TestDisplacementMappingMustCoverClusters(t *testing.T) {
	coords := map[string]spatial.Point{"a": {Lat: 40.0, Lon: -73.0}}
	_, err := Displacement(evenSeries(60, "a", "b"), Options{ClusterCoords: coords})
	require.ErrorIs(t, err, ErrClusterNotMapped)
}

func TestDisplacementGeohashFallback(t *testing.T) {
	// Geohash cluster ids with no raw coordinates resolve through decoding
	series := evenSeries(1, "dr5xfdt", "dr5rw5u")

	d, err := Displacement(series, Options{})
	require.NoError(t, err)
	require.Len(t, d, 1)

	a, ok := spatial.DecodeGeohash("dr5xfdt")
	require.True(t, ok)
	b, ok := spatial.DecodeGeohash("dr5rw5u")
	require.True(t, ok)
	assert.Equal(t, spatial.Distance(a, b), d[0])
}

func TestDisplacementUnresolvableCluster(t *testing.T) {
	// Not a geohash, no raw coordinates, no mapping
	_, err := Displacement(evenSeries(60, "Cluster One", "Cluster Two"), Options{})
	require.ErrorIs(t, err, ErrNoCoordinates)
}

func TestTotalDistanceMatchesDisplacementSum(t *testing.T) {
	coords := map[string]spatial.Point{
		"a": {Lat: 40.0, Lon: -73.0},
		"b": {Lat: 40.5, Lon: -73.5},
		"c": {Lat: 41.0, Lon: -74.0},
	}
	opts := Options{ClusterCoords: coords}
	series := evenSeries(60, "a", "b", "c", "b")

	d, err := Displacement(series, opts)
	require.NoError(t, err)
	require.Len(t, d, 3)

	var sum float64
	for _, v := range d {
		sum += v
	}

	total, err := TotalDistance(series, opts, d)
	require.NoError(t, err)
	assert.Equal(t, sum, total)

	// Recomputation pairs the same primitive over the same coordinates
	recomputed, err := TotalDistance(series, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, total, recomputed)
}

func TestTotalDistanceEmpty(t *testing.T) {
	total, err := TotalDistance(nil, Options{}, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}
