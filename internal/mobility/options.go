package mobility

import "github.com/jengzang/mobility-backend-go/internal/spatial"

// WeightFunc attributes a per-observation time weight, in seconds, to each
// entry of a strictly increasing timestamp slice. The returned slice has
// the same length as the input.
type WeightFunc func(times []int64) []float64

// CenteredWeights is the default time-attribution rule for evenly sampled
// series: an interior observation owns half of each neighboring interval,
// a boundary observation owns half of its single adjacent interval.
func CenteredWeights(times []int64) []float64 {
	n := len(times)
	w := make([]float64, n)
	if n < 2 {
		return w
	}

	w[0] = float64(times[1]-times[0]) / 2
	w[n-1] = float64(times[n-1]-times[n-2]) / 2
	for i := 1; i < n-1; i++ {
		w[i] = float64(times[i+1]-times[i-1]) / 2
	}
	return w
}

// Options is the single configuration value threaded through every feature
// call. The zero value is usable: no home cluster, no fixed coordinate
// mapping, centered time weights.
type Options struct {
	// HomeCluster is the cluster id whose dwell time HomeStay reports.
	HomeCluster string

	// ClusterCoords, when non-nil, fixes the representative coordinate of
	// every cluster id appearing in the data. When nil, coordinates are
	// resolved from the observations themselves (raw coordinates, or
	// geohash cluster ids).
	ClusterCoords map[string]spatial.Point

	// Weights overrides the time-attribution rule. Nil means
	// CenteredWeights. Substituting a different rule changes only the time
	// accounting, not the segmentation.
	Weights WeightFunc
}

func (o Options) weightFunc() WeightFunc {
	if o.Weights != nil {
		return o.Weights
	}
	return CenteredWeights
}
