package mobility

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jengzang/mobility-backend-go/internal/spatial"
)

// Contract violations reported by the feature pipeline. Degenerate but
// well-formed data (empty series, single cluster) never produces an
// error; it produces NaN feature values instead.
var (
	ErrNonMonotonicTime = errors.New("mobility: timestamps must be strictly increasing")
	ErrNoHomeCluster    = errors.New("mobility: home cluster not configured")
	ErrClusterNotMapped = errors.New("mobility: cluster missing from coordinate mapping")
	ErrNoCoordinates    = errors.New("mobility: no coordinate resolvable for cluster")
)

// Observation is a single sample of an evenly-sampled, cluster-labeled
// location series. Cluster is the opaque stay-location id assigned by the
// clustering stage; the empty string marks a sample that belongs to no
// recognized stay. Lat/Lon carry the raw GPS coordinate when one was
// recorded and NaN otherwise.
type Observation struct {
	Time    int64   `json:"time"`
	Cluster string  `json:"cluster,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// HasCoords reports whether the observation carries a usable raw coordinate
func (o Observation) HasCoords() bool {
	return spatial.Point{Lat: o.Lat, Lon: o.Lon}.IsValid()
}

// Series is an ordered, evenly-sampled sequence of observations. Even
// sampling is a caller contract; strict timestamp ordering is validated
// by every time-based operation.
type Series []Observation

// Validate checks the strict-ordering contract. Duplicate or decreasing
// timestamps are input errors, not expected data variance.
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].Time <= s[i-1].Time {
			return fmt.Errorf("%w: index %d (%d after %d)", ErrNonMonotonicTime, i, s[i].Time, s[i-1].Time)
		}
	}
	return nil
}

// Labeled returns a copy of the series with absent-cluster samples dropped
func (s Series) Labeled() Series {
	out := make(Series, 0, len(s))
	for _, o := range s {
		if o.Cluster != "" {
			out = append(out, o)
		}
	}
	return out
}

// ElapsedSeconds is the whole-second span between the first and last sample
func (s Series) ElapsedSeconds() int64 {
	if len(s) < 2 {
		return 0
	}
	return s[len(s)-1].Time - s[0].Time
}

func (s Series) times() []int64 {
	ts := make([]int64, len(s))
	for i, o := range s {
		ts[i] = o.Time
	}
	return ts
}

// clusterCounts tallies labeled observations per cluster id
func (s Series) clusterCounts() map[string]int {
	counts := make(map[string]int)
	for _, o := range s {
		if o.Cluster != "" {
			counts[o.Cluster]++
		}
	}
	return counts
}

// Clusters returns the distinct labeled cluster ids in sorted order
func (s Series) Clusters() []string {
	return s.distinctClusters()
}

// distinctClusters returns the labeled cluster ids in sorted order for
// deterministic iteration
func (s Series) distinctClusters() []string {
	counts := s.clusterCounts()
	clusters := make([]string, 0, len(counts))
	for c := range counts {
		clusters = append(clusters, c)
	}
	sort.Strings(clusters)
	return clusters
}

// run is a maximal block of consecutive observations sharing a cluster id
type run struct {
	cluster string
	obs     Series
}

// compressRuns partitions an absent-free series into consecutive
// same-cluster runs, in series order
func compressRuns(labeled Series) []run {
	var runs []run
	for _, o := range labeled {
		if n := len(runs); n > 0 && runs[n-1].cluster == o.Cluster {
			runs[n-1].obs = append(runs[n-1].obs, o)
			continue
		}
		runs = append(runs, run{cluster: o.Cluster, obs: Series{o}})
	}
	return runs
}

// rawPoints collects the valid raw coordinates of a set of observations
func rawPoints(obs Series) []spatial.Point {
	pts := make([]spatial.Point, 0, len(obs))
	for _, o := range obs {
		if o.HasCoords() {
			pts = append(pts, spatial.Point{Lat: o.Lat, Lon: o.Lon})
		}
	}
	return pts
}

// MissingValue is the sentinel for features undefined on the given input
func MissingValue() float64 {
	return math.NaN()
}

func missing() float64 {
	return MissingValue()
}
