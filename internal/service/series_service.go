package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/jengzang/mobility-backend-go/internal/mobility"
	"github.com/jengzang/mobility-backend-go/internal/models"
	"github.com/jengzang/mobility-backend-go/internal/repository"
)

// ErrInvalidInput marks malformed ingest payloads (missing required
// columns, untyped values), as opposed to server-side faults
var ErrInvalidInput = errors.New("invalid input")

// SeriesService handles ingestion and retrieval of observation series
type SeriesService struct {
	seriesRepo *repository.SeriesRepository
}

// NewSeriesService creates a new series service
func NewSeriesService(seriesRepo *repository.SeriesRepository) *SeriesService {
	return &SeriesService{seriesRepo: seriesRepo}
}

// CreateSeries parses the ingest records under the request's column
// mapping, validates the ordering contract, and stores the series.
// Returns the stored series metadata.
func (s *SeriesService) CreateSeries(req models.CreateSeriesRequest) (*models.LocationSeries, error) {
	columns := models.DefaultSeriesColumns()
	if req.Columns != nil {
		columns = req.Columns.WithDefaults()
	}

	series, err := parseRecords(req.Records, columns)
	if err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	if req.ClusterCoords != nil {
		for _, c := range series.Clusters() {
			if _, ok := req.ClusterCoords[c]; !ok {
				return nil, fmt.Errorf("%w: %q", mobility.ErrClusterNotMapped, c)
			}
		}
	}

	meta := models.LocationSeries{
		ID:               uuid.NewString(),
		Subject:          req.Subject,
		HomeCluster:      req.HomeCluster,
		ObservationCount: len(series),
	}

	if err := s.seriesRepo.CreateSeries(meta, series, req.ClusterCoords); err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetSeries returns series metadata, nil when unknown
func (s *SeriesService) GetSeries(id string) (*models.LocationSeries, error) {
	return s.seriesRepo.GetSeries(id)
}

// ListSeries returns a paginated series listing
func (s *SeriesService) ListSeries(filter models.SeriesFilter) (*models.SeriesResponse, error) {
	list, total, err := s.seriesRepo.ListSeries(filter)
	if err != nil {
		return nil, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return &models.SeriesResponse{
		Data:       list,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// DeleteSeries removes a series and everything derived from it
func (s *SeriesService) DeleteSeries(id string) error {
	return s.seriesRepo.DeleteSeries(id)
}

// parseRecords converts loosely typed ingest records into an observation
// series. A record without the time column is malformed input; a missing
// cluster column marks the sample as absent, and missing coordinates
// become NaN. Records are sorted by timestamp before validation so
// callers can submit unsorted but unique timestamps.
func parseRecords(records []map[string]interface{}, columns models.SeriesColumns) (mobility.Series, error) {
	series := make(mobility.Series, 0, len(records))
	for i, rec := range records {
		ts, ok := rec[columns.Time]
		if !ok {
			return nil, fmt.Errorf("%w: record %d: required column %q absent", ErrInvalidInput, i, columns.Time)
		}
		t, err := toTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: column %q: %v", ErrInvalidInput, i, columns.Time, err)
		}

		o := mobility.Observation{Time: t, Lat: math.NaN(), Lon: math.NaN()}
		if v, ok := rec[columns.Cluster]; ok && v != nil {
			cluster, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: record %d: column %q must be a string", ErrInvalidInput, i, columns.Cluster)
			}
			o.Cluster = cluster
		}

		lat, latOK, err := toCoord(rec[columns.Lat])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: column %q: %v", ErrInvalidInput, i, columns.Lat, err)
		}
		lon, lonOK, err := toCoord(rec[columns.Lon])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: column %q: %v", ErrInvalidInput, i, columns.Lon, err)
		}
		if latOK && lonOK {
			o.Lat = lat
			o.Lon = lon
		}

		series = append(series, o)
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Time < series[j].Time })
	return series, nil
}

func toTimestamp(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	default:
		return 0, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func toCoord(v interface{}) (float64, bool, error) {
	if v == nil {
		return 0, false, nil
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false, fmt.Errorf("unsupported coordinate type %T", v)
	}
	if math.IsNaN(f) {
		return 0, false, nil
	}
	return f, true, nil
}
