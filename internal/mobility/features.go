package mobility

import (
	"math"
	"sort"

	"github.com/jengzang/mobility-backend-go/internal/spatial"
	"github.com/jengzang/mobility-backend-go/internal/stats"
)

// GyrationRadius computes the radius of gyration in meters: the
// root-mean-square distance of visited locations from their visit-weighted
// centroid. k > 0 restricts the computation to the k most frequently
// visited clusters (k-th radius of gyration, Pappalardo et al.); k <= 0
// computes the total radius.
//
// Returns NaN when no labeled data exists or k exceeds the number of
// distinct clusters.
func GyrationRadius(series Series, opts Options, k int) (float64, error) {
	labeled := series.Labeled()
	if len(labeled) == 0 {
		return missing(), nil
	}

	counts := labeled.clusterCounts()
	if k > 0 {
		if k > len(counts) {
			return missing(), nil
		}
		counts = topKClusters(counts, k)
	}

	clusters := make([]string, 0, len(counts))
	for c := range counts {
		clusters = append(clusters, c)
	}
	sort.Strings(clusters)

	points := make([]spatial.Point, 0, len(clusters))
	weights := make([]float64, 0, len(clusters))
	total := 0
	for _, c := range clusters {
		p, err := clusterCoord(series, opts, c)
		if err != nil {
			return 0, err
		}
		points = append(points, p)
		weights = append(weights, float64(counts[c]))
		total += counts[c]
	}

	center, ok := spatial.WeightedCentroid(points, weights)
	if !ok {
		return missing(), nil
	}

	var sum float64
	for i, p := range points {
		d := spatial.Distance(center, p)
		sum += weights[i] * d * d
	}
	return math.Sqrt(sum / float64(total)), nil
}

// topKClusters keeps the k most visited clusters. Ties are broken by
// cluster id for determinism.
func topKClusters(counts map[string]int, k int) map[string]int {
	type cc struct {
		cluster string
		count   int
	}
	ranked := make([]cc, 0, len(counts))
	for c, n := range counts {
		ranked = append(ranked, cc{c, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].cluster < ranked[j].cluster
	})

	kept := make(map[string]int, k)
	for _, r := range ranked[:k] {
		kept[r.cluster] = r.count
	}
	return kept
}

// NumTrips counts cluster-to-cluster transitions after collapsing
// consecutive duplicates. A constant-cluster series has zero trips; a
// series with no labeled sample has no defined trip count (NaN).
func NumTrips(series Series) float64 {
	labeled := series.Labeled()
	if len(labeled) == 0 {
		return missing()
	}

	trips := 0
	prev := labeled[0].Cluster
	for _, o := range labeled[1:] {
		if o.Cluster != prev {
			trips++
			prev = o.Cluster
		}
	}
	return float64(trips)
}

// NumClusters counts the distinct places visited
func NumClusters(series Series) int {
	return len(series.clusterCounts())
}

// MaxDistBetweenClusters computes the maximum pairwise distance in meters
// between representative cluster coordinates. NaN when no labeled data
// exists, 0 for a single cluster.
func MaxDistBetweenClusters(series Series, opts Options) (float64, error) {
	clusters := series.distinctClusters()
	if len(clusters) == 0 {
		return missing(), nil
	}
	if len(clusters) == 1 {
		return 0, nil
	}

	coords := make([]spatial.Point, len(clusters))
	for i, c := range clusters {
		p, err := clusterCoord(series, opts, c)
		if err != nil {
			return 0, err
		}
		coords[i] = p
	}

	var maxDist float64
	for i := 0; i < len(coords)-1; i++ {
		for j := i + 1; j < len(coords); j++ {
			if d := spatial.Distance(coords[i], coords[j]); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist, nil
}

// TotalDistance sums the displacement list, in meters. dispmnt may carry a
// precomputed Displacement result; nil triggers recomputation. An empty
// series travels zero meters.
func TotalDistance(series Series, opts Options, dispmnt []float64) (float64, error) {
	if dispmnt == nil {
		d, err := Displacement(series, opts)
		if err != nil {
			return 0, err
		}
		dispmnt = d
	}
	return stats.Sum(dispmnt), nil
}

// Entropy computes the Shannon entropy (natural log) of the dwell-time
// distribution over clusters, with dwell proportions measured against the
// total elapsed time of the series, plus the normalized variant scaled
// into [0, 1] by ln(number of clusters).
//
// wt may carry a precomputed WaitTime result; nil triggers recomputation.
// Both values are NaN when the waiting-time list is empty; the normalized
// entropy is additionally NaN for a single cluster, where the denominator
// is zero.
func Entropy(series Series, opts Options, wt *WaitTimeResult) (ent, nent float64, err error) {
	if len(series) == 0 {
		return missing(), missing(), nil
	}

	if wt == nil {
		wt, err = WaitTime(series, opts)
		if err != nil {
			return 0, 0, err
		}
	}
	if len(wt.Waits) == 0 {
		return missing(), missing(), nil
	}

	totalTime := series.ElapsedSeconds()
	if totalTime <= 0 {
		return missing(), missing(), nil
	}

	// Proportions are taken against total elapsed time, not the dwell sum,
	// so time spent in transit or unlabeled lowers every p. Zero-dwell
	// clusters (sub-second visits truncated away) contribute nothing.
	ent = 0
	for _, d := range wt.Dwell {
		p := float64(d) / float64(totalTime)
		if p > 0 {
			ent -= p * math.Log(p)
		}
	}

	n := NumClusters(series)
	if n <= 1 {
		return ent, missing(), nil
	}
	return ent, ent / math.Log(float64(n)), nil
}

// LocationVariance computes ln of the summed population variances of
// latitude and longitude over labeled samples with raw coordinates. NaN
// when no such samples exist or the variance sum is below 1e-9.
func LocationVariance(series Series) float64 {
	var lats, lons []float64
	for _, o := range series.Labeled() {
		if o.HasCoords() {
			lats = append(lats, o.Lat)
			lons = append(lons, o.Lon)
		}
	}
	if len(lats) == 0 {
		return missing()
	}

	v := stats.PopVariance(lats) + stats.PopVariance(lons)
	if math.Abs(v) < 1e-9 {
		return missing()
	}
	return math.Log(v)
}

// HomeStay reports the dwell time at the configured home cluster, in
// seconds. A home cluster that never appears in the series is missing
// data (NaN), not an error; an unset home cluster is a contract violation.
func HomeStay(series Series, opts Options, wt *WaitTimeResult) (float64, error) {
	if opts.HomeCluster == "" {
		return 0, ErrNoHomeCluster
	}

	found := false
	for _, o := range series {
		if o.Cluster == opts.HomeCluster {
			found = true
			break
		}
	}
	if !found {
		return missing(), nil
	}

	if wt == nil {
		var err error
		wt, err = WaitTime(series, opts)
		if err != nil {
			return 0, err
		}
	}
	if len(wt.Waits) == 0 {
		return missing(), nil
	}

	dwell, ok := wt.Dwell[opts.HomeCluster]
	if !ok {
		return missing(), nil
	}
	return float64(dwell), nil
}

// TransTime reports the total time spent in transit, in seconds: the
// elapsed span of the series minus the summed waiting times. NaN when the
// waiting-time list is empty.
func TransTime(series Series, opts Options, wt *WaitTimeResult) (float64, error) {
	if wt == nil {
		var err error
		wt, err = WaitTime(series, opts)
		if err != nil {
			return 0, err
		}
	}
	if len(wt.Waits) == 0 {
		return missing(), nil
	}

	var waited int64
	for _, w := range wt.Waits {
		waited += w
	}
	return float64(series.ElapsedSeconds() - waited), nil
}
