package models

// Feature names stored in feature_results and returned by the API
const (
	FeatureGyrationRadius    = "gyration_radius"
	FeatureNumTrips          = "num_trips"
	FeatureNumClusters       = "num_clusters"
	FeatureMaxClusterDist    = "max_dist_between_clusters"
	FeatureTotalDistance     = "total_distance"
	FeatureEntropy           = "entropy"
	FeatureNormalizedEntropy = "normalized_entropy"
	FeatureLocationVariance  = "location_variance"
	FeatureHomeStay          = "home_stay"
	FeatureTransTime         = "trans_time"
)

// FeatureSet is the full derived-feature output for one series. Missing
// features (degenerate input) are null, never an error.
type FeatureSet struct {
	SeriesID string `json:"seriesId"`

	GyrationRadius         Metric `json:"gyrationRadius"`
	NumTrips               Metric `json:"numTrips"`
	NumClusters            int    `json:"numClusters"`
	MaxDistBetweenClusters Metric `json:"maxDistBetweenClusters"`
	TotalDistance          Metric `json:"totalDistance"`
	Entropy                Metric `json:"entropy"`
	NormalizedEntropy      Metric `json:"normalizedEntropy"`
	LocationVariance       Metric `json:"locationVariance"`
	HomeStay               Metric `json:"homeStay"`
	TransTime              Metric `json:"transTime"`

	// Segmenter output, returned alongside the scalars so callers can
	// reuse it without recomputation
	WaitTimes  []int64          `json:"waitTimes,omitempty"`
	DwellTimes map[string]int64 `json:"dwellTimes,omitempty"`

	AlgoVersion string `json:"algoVersion,omitempty"`
	ComputedAt  string `json:"computedAt,omitempty"`
}

// Named flattens the scalar features into name/value pairs for storage
func (fs *FeatureSet) Named() map[string]Metric {
	return map[string]Metric{
		FeatureGyrationRadius:    fs.GyrationRadius,
		FeatureNumTrips:          fs.NumTrips,
		FeatureNumClusters:       Metric(float64(fs.NumClusters)),
		FeatureMaxClusterDist:    fs.MaxDistBetweenClusters,
		FeatureTotalDistance:     fs.TotalDistance,
		FeatureEntropy:           fs.Entropy,
		FeatureNormalizedEntropy: fs.NormalizedEntropy,
		FeatureLocationVariance:  fs.LocationVariance,
		FeatureHomeStay:          fs.HomeStay,
		FeatureTransTime:         fs.TransTime,
	}
}
