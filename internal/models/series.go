package models

import "github.com/jengzang/mobility-backend-go/internal/spatial"

// LocationSeries describes one stored observation series
type LocationSeries struct {
	ID               string `json:"id" db:"id"`
	Subject          string `json:"subject" db:"subject"`
	HomeCluster      string `json:"homeCluster,omitempty" db:"home_cluster"`
	ObservationCount int    `json:"observationCount" db:"observation_count"`
	CreatedAt        string `json:"createdAt,omitempty" db:"created_at"`
}

// SeriesColumns names the record fields of an ingest request. Callers with
// differently named columns configure the mapping here instead of renaming
// their data; zero values fall back to the defaults below.
type SeriesColumns struct {
	Time    string `json:"time"`
	Cluster string `json:"cluster"`
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
}

// DefaultSeriesColumns returns the default record field names
func DefaultSeriesColumns() SeriesColumns {
	return SeriesColumns{
		Time:    "time",
		Cluster: "cluster",
		Lat:     "latitude",
		Lon:     "longitude",
	}
}

// withDefaults fills unset column names
func (c SeriesColumns) WithDefaults() SeriesColumns {
	d := DefaultSeriesColumns()
	if c.Time == "" {
		c.Time = d.Time
	}
	if c.Cluster == "" {
		c.Cluster = d.Cluster
	}
	if c.Lat == "" {
		c.Lat = d.Lat
	}
	if c.Lon == "" {
		c.Lon = d.Lon
	}
	return c
}

// CreateSeriesRequest is the ingest payload: already-clustered location
// records plus optional fixed cluster coordinates
type CreateSeriesRequest struct {
	Subject       string                   `json:"subject" binding:"required"`
	HomeCluster   string                   `json:"homeCluster"`
	Columns       *SeriesColumns           `json:"columns"`
	Records       []map[string]interface{} `json:"records" binding:"required"`
	ClusterCoords map[string]spatial.Point `json:"clusterCoords"`
}

// SeriesFilter represents filter parameters for listing series
type SeriesFilter struct {
	Subject  string `form:"subject"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// SeriesResponse is a paginated listing of series
type SeriesResponse struct {
	Data       []LocationSeries `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}
