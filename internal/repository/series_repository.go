package repository

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/jengzang/mobility-backend-go/internal/mobility"
	"github.com/jengzang/mobility-backend-go/internal/models"
	"github.com/jengzang/mobility-backend-go/internal/spatial"
)

// SeriesRepository handles database operations for observation series
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a new series repository
func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// CreateSeries stores a series with its observations and optional fixed
// cluster coordinates in one transaction
func (r *SeriesRepository) CreateSeries(
	series models.LocationSeries,
	obs mobility.Series,
	coords map[string]spatial.Point,
) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO series (id, subject, home_cluster, observation_count) VALUES (?, ?, ?, ?)`,
		series.ID, series.Subject, series.HomeCluster, len(obs),
	)
	if err != nil {
		return fmt.Errorf("failed to insert series: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO observations (series_id, ts, cluster, lat, lon) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare observation insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range obs {
		var cluster sql.NullString
		if o.Cluster != "" {
			cluster = sql.NullString{String: o.Cluster, Valid: true}
		}
		var lat, lon sql.NullFloat64
		if o.HasCoords() {
			lat = sql.NullFloat64{Float64: o.Lat, Valid: true}
			lon = sql.NullFloat64{Float64: o.Lon, Valid: true}
		}
		if _, err := stmt.Exec(series.ID, o.Time, cluster, lat, lon); err != nil {
			return fmt.Errorf("failed to insert observation: %w", err)
		}
	}

	for cluster, p := range coords {
		_, err := tx.Exec(
			`INSERT INTO cluster_coords (series_id, cluster, lat, lon) VALUES (?, ?, ?, ?)`,
			series.ID, cluster, p.Lat, p.Lon,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cluster coordinate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSeries retrieves series metadata by id
func (r *SeriesRepository) GetSeries(id string) (*models.LocationSeries, error) {
	query := `
		SELECT id, subject, home_cluster, observation_count, created_at
		FROM series
		WHERE id = ?
	`

	var s models.LocationSeries
	err := r.db.QueryRow(query, id).Scan(
		&s.ID, &s.Subject, &s.HomeCluster, &s.ObservationCount, &s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	return &s, nil
}

// ListSeries retrieves series with filtering and pagination
func (r *SeriesRepository) ListSeries(filter models.SeriesFilter) ([]models.LocationSeries, int64, error) {
	query := `SELECT id, subject, home_cluster, observation_count, created_at FROM series`

	var conditions []string
	var args []interface{}

	if filter.Subject != "" {
		conditions = append(conditions, "subject = ?")
		args = append(args, filter.Subject)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM series"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count series: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	var list []models.LocationSeries
	for rows.Next() {
		var s models.LocationSeries
		if err := rows.Scan(&s.ID, &s.Subject, &s.HomeCluster, &s.ObservationCount, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan series: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// ListSeriesIDs returns all series ids in insertion order, for batch runs
func (r *SeriesRepository) ListSeriesIDs() ([]string, error) {
	rows, err := r.db.Query("SELECT id FROM series ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query series ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan series id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetObservations loads the ordered observation series. NULL clusters map
// to the absent marker and NULL coordinates to NaN.
func (r *SeriesRepository) GetObservations(seriesID string) (mobility.Series, error) {
	query := `
		SELECT ts, cluster, lat, lon
		FROM observations
		WHERE series_id = ?
		ORDER BY ts
	`

	rows, err := r.db.Query(query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var series mobility.Series
	for rows.Next() {
		var (
			ts       int64
			cluster  sql.NullString
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(&ts, &cluster, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}

		o := mobility.Observation{Time: ts, Lat: math.NaN(), Lon: math.NaN()}
		if cluster.Valid {
			o.Cluster = cluster.String
		}
		if lat.Valid && lon.Valid {
			o.Lat = lat.Float64
			o.Lon = lon.Float64
		}
		series = append(series, o)
	}
	return series, rows.Err()
}

// GetClusterCoords loads the fixed cluster coordinate mapping of a series.
// Returns nil when the series has none, which selects centroid resolution.
func (r *SeriesRepository) GetClusterCoords(seriesID string) (map[string]spatial.Point, error) {
	rows, err := r.db.Query(
		"SELECT cluster, lat, lon FROM cluster_coords WHERE series_id = ?",
		seriesID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cluster coordinates: %w", err)
	}
	defer rows.Close()

	var coords map[string]spatial.Point
	for rows.Next() {
		var (
			cluster  string
			lat, lon float64
		)
		if err := rows.Scan(&cluster, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan cluster coordinate: %w", err)
		}
		if coords == nil {
			coords = make(map[string]spatial.Point)
		}
		coords[cluster] = spatial.Point{Lat: lat, Lon: lon}
	}
	return coords, rows.Err()
}

// DeleteSeries removes a series and its dependent rows
func (r *SeriesRepository) DeleteSeries(id string) error {
	if _, err := r.db.Exec("DELETE FROM series WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	return nil
}
