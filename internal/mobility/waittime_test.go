package mobility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evenSeries builds an evenly sampled series from cluster labels, one
// sample per step seconds. Empty labels mark absent samples. Raw
// coordinates stay unset.
func evenSeries(step int64, clusters ...string) Series {
	s := make(Series, len(clusters))
	for i, c := range clusters {
		s[i] = Observation{
			Time:    int64(i) * step,
			Cluster: c,
			Lat:     math.NaN(),
			Lon:     math.NaN(),
		}
	}
	return s
}

func TestWaitTimeEmptyAndSingle(t *testing.T) {
	for _, series := range []Series{nil, {}, evenSeries(60, "a")} {
		res, err := WaitTime(series, Options{})
		require.NoError(t, err)
		assert.Empty(t, res.Waits)
		assert.Empty(t, res.Dwell)
	}
}

func TestWaitTimeAllAbsent(t *testing.T) {
	res, err := WaitTime(evenSeries(60, "", "", ""), Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Waits)
	assert.Empty(t, res.Dwell)
}

func TestWaitTimeSegmentation(t *testing.T) {
	// Three visit runs: "h,h", "w", "h". The absent samples break runs
	// but their time is excluded from dwell accounting.
	series := evenSeries(60, "h", "h", "", "w", "h", "")

	res, err := WaitTime(series, Options{})
	require.NoError(t, err)

	// weights: 30, 60, 60, 60, 60, 30
	assert.Equal(t, []int64{90, 60, 60}, res.Waits)
	assert.Equal(t, map[string]int64{"h": 150, "w": 60}, res.Dwell)

	// Two cluster transitions in the absent-dropped series
	assert.Equal(t, float64(2), NumTrips(series))
}

func TestWaitTimeMergesRevisits(t *testing.T) {
	series := evenSeries(60, "h", "w", "h")

	res, err := WaitTime(series, Options{})
	require.NoError(t, err)

	// Separate runs in the waiting-time list, merged in the dwell table
	assert.Equal(t, []int64{30, 60, 30}, res.Waits)
	assert.Equal(t, map[string]int64{"h": 60, "w": 60}, res.Dwell)
}

func TestWaitTimeSkipsLeadingAbsent(t *testing.T) {
	series := evenSeries(60, "", "", "a", "a")

	res, err := WaitTime(series, Options{})
	require.NoError(t, err)
	// weights: 30, 60, 60, 30; only the labeled tail is attributed
	assert.Equal(t, []int64{90}, res.Waits)
	assert.Equal(t, map[string]int64{"a": 90}, res.Dwell)
}

func TestWaitTimeSumInvariant(t *testing.T) {
	cases := [][]string{
		{"a", "a", "b"},
		{"a", "", "a", "b", "b", ""},
		{"", "x", "y", "x", "x", "", "z"},
		{"a", "a", "a", "a"},
	}

	for _, clusters := range cases {
		res, err := WaitTime(evenSeries(60, clusters...), Options{})
		require.NoError(t, err)

		var waitSum, dwellSum int64
		for _, w := range res.Waits {
			waitSum += w
		}
		for _, d := range res.Dwell {
			dwellSum += d
		}

		// Equal within integer-second rounding: each side truncates at a
		// different grouping level
		assert.InDelta(t, float64(waitSum), float64(dwellSum), float64(len(res.Waits)+len(res.Dwell)))
	}
}

func TestWaitTimeTruncatesWholeSeconds(t *testing.T) {
	// Step of 1s: boundary weights are 0.5s and truncate to zero
	res, err := WaitTime(evenSeries(1, "a", "a", "b"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 0}, res.Waits)
	assert.Equal(t, map[string]int64{"a": 1, "b": 0}, res.Dwell)
}

func TestWaitTimeCustomWeights(t *testing.T) {
	// A uniform rule attributes one full second per sample regardless of
	// spacing; segmentation is unchanged
	uniform := func(times []int64) []float64 {
		w := make([]float64, len(times))
		for i := range w {
			w[i] = 1
		}
		return w
	}

	res, err := WaitTime(evenSeries(60, "a", "a", "b"), Options{Weights: uniform})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, res.Waits)
	assert.Equal(t, map[string]int64{"a": 2, "b": 1}, res.Dwell)
}

func TestWaitTimeRejectsNonMonotonicTimestamps(t *testing.T) {
	series := Series{
		{Time: 60, Cluster: "a"},
		{Time: 60, Cluster: "a"},
	}
	_, err := WaitTime(series, Options{})
	require.ErrorIs(t, err, ErrNonMonotonicTime)

	series[1].Time = 0
	_, err = WaitTime(series, Options{})
	require.ErrorIs(t, err, ErrNonMonotonicTime)
}

func TestCenteredWeights(t *testing.T) {
	assert.Equal(t, []float64{30, 60, 60, 30}, CenteredWeights([]int64{0, 60, 120, 180}))
	assert.Equal(t, []float64{0}, CenteredWeights([]int64{42}))
	assert.Empty(t, CenteredWeights(nil))
}
