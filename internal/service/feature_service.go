package service

import (
	"fmt"

	"github.com/jengzang/mobility-backend-go/internal/mobility"
	"github.com/jengzang/mobility-backend-go/internal/models"
	"github.com/jengzang/mobility-backend-go/internal/repository"
)

// FeatureService computes and persists the derived-feature set of stored
// observation series
type FeatureService struct {
	seriesRepo  *repository.SeriesRepository
	featureRepo *repository.FeatureRepository
	algoVersion string
}

// NewFeatureService creates a new feature service
func NewFeatureService(
	seriesRepo *repository.SeriesRepository,
	featureRepo *repository.FeatureRepository,
	algoVersion string,
) *FeatureService {
	return &FeatureService{
		seriesRepo:  seriesRepo,
		featureRepo: featureRepo,
		algoVersion: algoVersion,
	}
}

// ComputeFeatures loads a series and evaluates every calculator over it.
// The segmenter and extractor run once; their results are shared across
// all calculators that accept precomputed input.
func (s *FeatureService) ComputeFeatures(seriesID string) (*models.FeatureSet, error) {
	meta, err := s.seriesRepo.GetSeries(seriesID)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, nil
	}

	series, err := s.seriesRepo.GetObservations(seriesID)
	if err != nil {
		return nil, err
	}
	coords, err := s.seriesRepo.GetClusterCoords(seriesID)
	if err != nil {
		return nil, err
	}

	opts := mobility.Options{
		HomeCluster:   meta.HomeCluster,
		ClusterCoords: coords,
	}

	fs, err := computeFeatureSet(series, opts)
	if err != nil {
		return nil, fmt.Errorf("feature computation for series %s: %w", seriesID, err)
	}
	fs.SeriesID = seriesID
	fs.AlgoVersion = s.algoVersion
	return fs, nil
}

// ComputeAndStore computes the feature set and persists the scalar values
func (s *FeatureService) ComputeAndStore(seriesID string) (*models.FeatureSet, error) {
	fs, err := s.ComputeFeatures(seriesID)
	if err != nil || fs == nil {
		return nil, err
	}
	if err := s.featureRepo.SaveFeatures(seriesID, fs.Named(), s.algoVersion); err != nil {
		return nil, err
	}
	return fs, nil
}

// GetStoredFeatures returns the persisted feature rows of a series
func (s *FeatureService) GetStoredFeatures(seriesID string) (map[string]models.Metric, string, error) {
	return s.featureRepo.GetFeatures(seriesID)
}

// computeFeatureSet evaluates all calculators over one series, reusing the
// segmenter and extractor output. Degenerate data surfaces as missing
// values; only contract violations return an error.
func computeFeatureSet(series mobility.Series, opts mobility.Options) (*models.FeatureSet, error) {
	wt, err := mobility.WaitTime(series, opts)
	if err != nil {
		return nil, err
	}
	dispmnt, err := mobility.Displacement(series, opts)
	if err != nil {
		return nil, err
	}

	gyration, err := mobility.GyrationRadius(series, opts, 0)
	if err != nil {
		return nil, err
	}
	maxDist, err := mobility.MaxDistBetweenClusters(series, opts)
	if err != nil {
		return nil, err
	}
	totalDist, err := mobility.TotalDistance(series, opts, dispmnt)
	if err != nil {
		return nil, err
	}
	ent, nent, err := mobility.Entropy(series, opts, wt)
	if err != nil {
		return nil, err
	}
	transTime, err := mobility.TransTime(series, opts, wt)
	if err != nil {
		return nil, err
	}

	fs := &models.FeatureSet{
		GyrationRadius:         models.Metric(gyration),
		NumTrips:               models.Metric(mobility.NumTrips(series)),
		NumClusters:            mobility.NumClusters(series),
		MaxDistBetweenClusters: models.Metric(maxDist),
		TotalDistance:          models.Metric(totalDist),
		Entropy:                models.Metric(ent),
		NormalizedEntropy:      models.Metric(nent),
		LocationVariance:       models.Metric(mobility.LocationVariance(series)),
		TransTime:              models.Metric(transTime),
		WaitTimes:              wt.Waits,
		DwellTimes:             wt.Dwell,
	}

	// Home stay only applies to series with a configured home cluster
	if opts.HomeCluster != "" {
		homeStay, err := mobility.HomeStay(series, opts, wt)
		if err != nil {
			return nil, err
		}
		fs.HomeStay = models.Metric(homeStay)
	} else {
		fs.HomeStay = models.Metric(mobility.MissingValue())
	}

	return fs, nil
}
