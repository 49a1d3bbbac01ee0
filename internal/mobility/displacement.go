package mobility

import (
	"fmt"

	"github.com/jengzang/mobility-backend-go/internal/spatial"
)

// Displacement converts the series into the ordered list of travel
// distances between consecutive visit runs, in meters. Absent samples are
// dropped first; fewer than two runs yield an empty list.
//
// Each run's representative coordinate comes from opts.ClusterCoords when
// a mapping is supplied (a cluster missing from the mapping is a contract
// violation), otherwise from the centroid of the run's raw coordinates,
// falling back to decoding a geohash cluster id.
func Displacement(series Series, opts Options) ([]float64, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	runs := compressRuns(series.Labeled())
	if len(runs) < 2 {
		return nil, nil
	}

	coords := make([]spatial.Point, 0, len(runs))
	for _, r := range runs {
		p, err := runCoord(r, opts)
		if err != nil {
			return nil, err
		}
		coords = append(coords, p)
	}

	dists := make([]float64, 0, len(coords)-1)
	for i := 1; i < len(coords); i++ {
		dists = append(dists, spatial.Distance(coords[i-1], coords[i]))
	}
	return dists, nil
}

// runCoord resolves the representative coordinate of a single visit run
func runCoord(r run, opts Options) (spatial.Point, error) {
	if opts.ClusterCoords != nil {
		p, ok := opts.ClusterCoords[r.cluster]
		if !ok {
			return spatial.Point{}, fmt.Errorf("%w: %q", ErrClusterNotMapped, r.cluster)
		}
		return p, nil
	}

	if p, ok := spatial.Centroid(rawPoints(r.obs)); ok {
		return p, nil
	}
	if p, ok := spatial.DecodeGeohash(r.cluster); ok {
		return p, nil
	}
	return spatial.Point{}, fmt.Errorf("%w: %q", ErrNoCoordinates, r.cluster)
}

// clusterCoord resolves one representative coordinate per cluster id, used
// by the cluster-level calculators: the fixed mapping first, then the
// first observed raw coordinate, then a geohash cluster id.
func clusterCoord(series Series, opts Options, cluster string) (spatial.Point, error) {
	if opts.ClusterCoords != nil {
		p, ok := opts.ClusterCoords[cluster]
		if !ok {
			return spatial.Point{}, fmt.Errorf("%w: %q", ErrClusterNotMapped, cluster)
		}
		return p, nil
	}

	for _, o := range series {
		if o.Cluster == cluster && o.HasCoords() {
			return spatial.Point{Lat: o.Lat, Lon: o.Lon}, nil
		}
	}
	if p, ok := spatial.DecodeGeohash(cluster); ok {
		return p, nil
	}
	return spatial.Point{}, fmt.Errorf("%w: %q", ErrNoCoordinates, cluster)
}
