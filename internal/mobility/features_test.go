package mobility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mobility-backend-go/internal/stats"
)

// geohashSeries builds an evenly sampled series visiting each geohash
// cluster id for the given number of consecutive samples
func geohashSeries(visits map[string]int, order ...string) Series {
	var labels []string
	for _, c := range order {
		for i := 0; i < visits[c]; i++ {
			labels = append(labels, c)
		}
	}
	return evenSeries(60, labels...)
}

func TestGyrationRadiusTotal(t *testing.T) {
	series := geohashSeries(map[string]int{"dr5xfdt": 3, "dr5rw5u": 7}, "dr5xfdt", "dr5rw5u")

	rg, err := GyrationRadius(series, Options{}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 7917.475327848773, rg, 1e-6)
}

func TestGyrationRadiusKExceedsClusters(t *testing.T) {
	series := geohashSeries(map[string]int{"dr5xfdt": 3, "dr5rw5u": 7}, "dr5xfdt", "dr5rw5u")

	rg, err := GyrationRadius(series, Options{}, 5)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rg))
}

func TestGyrationRadiusTopK(t *testing.T) {
	visits := map[string]int{"dr5xfdt": 3, "dr5rw5u": 12, "dr5xg5g": 2}
	series := geohashSeries(visits, "dr5xfdt", "dr5rw5u", "dr5xg5g")

	// k = 2 keeps the two most visited clusters, which must match the
	// total radius over just those clusters
	rg, err := GyrationRadius(series, Options{}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 6910.938788047645, rg, 1e-6)
}

func TestGyrationRadiusNoLabeledData(t *testing.T) {
	rg, err := GyrationRadius(evenSeries(60, "", ""), Options{}, 0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(rg))
}

func TestNumTrips(t *testing.T) {
	assert.Equal(t, 2.0, NumTrips(evenSeries(60, "h", "h", "", "w", "h", "")))
	assert.Equal(t, 0.0, NumTrips(evenSeries(60, "h", "h", "h")))
	assert.True(t, math.IsNaN(NumTrips(evenSeries(60, "", ""))))
	assert.True(t, math.IsNaN(NumTrips(nil)))
}

func TestNumClusters(t *testing.T) {
	assert.Equal(t, 0, NumClusters(nil))
	assert.Equal(t, 1, NumClusters(evenSeries(60, "h", "h")))
	assert.Equal(t, 3, NumClusters(evenSeries(60, "h", "w", "g", "h")))
}

func TestMaxDistBetweenClusters(t *testing.T) {
	d, err := MaxDistBetweenClusters(evenSeries(60, "", ""), Options{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(d))

	d, err = MaxDistBetweenClusters(evenSeries(60, "dr5xfdt", "dr5xfdt"), Options{})
	require.NoError(t, err)
	assert.Zero(t, d)

	series := evenSeries(60, "dr5xfdt", "dr5rw5u", "dr5xg5g")
	d, err = MaxDistBetweenClusters(series, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 19035.097120637747, d, 1e-6)
}

func TestEntropyEvenSplit(t *testing.T) {
	// Five samples in each cluster at 60 s spacing: 270 s dwell apiece
	// against 540 s elapsed
	series := evenSeries(60, "h", "h", "h", "h", "h", "w", "w", "w", "w", "w")

	ent, nent, err := Entropy(series, Options{}, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2, ent, 1e-12)
	assert.InDelta(t, 1.0, nent, 1e-12)

	// Cross-check against the distribution-level helpers
	assert.InDelta(t, stats.ShannonEntropyNats([]float64{270, 270}), ent, 1e-12)
	assert.InDelta(t, stats.NormalizedEntropyNats([]float64{270, 270}), nent, 1e-12)
}

func TestEntropySingleCluster(t *testing.T) {
	ent, nent, err := Entropy(evenSeries(60, "h", "h", "h"), Options{}, nil)
	require.NoError(t, err)
	assert.Zero(t, ent)
	assert.True(t, math.IsNaN(nent))
}

func TestEntropyNoData(t *testing.T) {
	ent, nent, err := Entropy(nil, Options{}, nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(ent))
	assert.True(t, math.IsNaN(nent))
}

func TestNormalizedEntropyBounded(t *testing.T) {
	series := evenSeries(60, "h", "h", "h", "w", "g", "", "h", "w", "g", "g")

	_, nent, err := Entropy(series, Options{}, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, nent, 0.0)
	assert.LessOrEqual(t, nent, 1.0)
}

func TestLocationVariance(t *testing.T) {
	series := Series{
		{Time: 0, Cluster: "a", Lat: 40.0, Lon: -73.0},
		{Time: 60, Cluster: "b", Lat: 41.0, Lon: -74.0},
	}
	assert.InDelta(t, math.Log(0.5), LocationVariance(series), 1e-12)

	// Constant coordinates fall below the variance floor
	constant := Series{
		{Time: 0, Cluster: "a", Lat: 40.0, Lon: -73.0},
		{Time: 60, Cluster: "a", Lat: 40.0, Lon: -73.0},
	}
	assert.True(t, math.IsNaN(LocationVariance(constant)))

	// Coordinates without cluster labels do not count
	assert.True(t, math.IsNaN(LocationVariance(Series{{Time: 0, Cluster: "", Lat: 40.0, Lon: -73.0}})))

	assert.True(t, math.IsNaN(LocationVariance(evenSeries(60, "a", "b"))))
}

func TestHomeStay(t *testing.T) {
	series := evenSeries(60, "h", "h", "w")

	stay, err := HomeStay(series, Options{HomeCluster: "h"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 90.0, stay)

	stay, err = HomeStay(series, Options{HomeCluster: "elsewhere"}, nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(stay))

	_, err = HomeStay(series, Options{}, nil)
	require.ErrorIs(t, err, ErrNoHomeCluster)
}

func TestTransTime(t *testing.T) {
	// 240 s elapsed, 90 s dwelt at each cluster, 60 s in transit
	series := evenSeries(60, "h", "h", "", "w", "w")

	trans, err := TransTime(series, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 60.0, trans)

	trans, err = TransTime(evenSeries(60, "", ""), Options{}, nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(trans))
}
