package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/mobility-backend-go/internal/models"
)

// FeatureRepository handles database operations for computed features
type FeatureRepository struct {
	db *sql.DB
}

// NewFeatureRepository creates a new feature repository
func NewFeatureRepository(db *sql.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// SaveFeatures upserts the named feature values of a series. Missing
// values are stored as NULL.
func (r *FeatureRepository) SaveFeatures(seriesID string, features map[string]models.Metric, algoVersion string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO feature_results (series_id, feature, value, algo_version, computed_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare feature insert: %w", err)
	}
	defer stmt.Close()

	for name, value := range features {
		if _, err := stmt.Exec(seriesID, name, value.NullFloat64(), algoVersion); err != nil {
			return fmt.Errorf("failed to insert feature %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetFeatures loads the stored feature values of a series. NULL values
// come back as the missing sentinel.
func (r *FeatureRepository) GetFeatures(seriesID string) (map[string]models.Metric, string, error) {
	rows, err := r.db.Query(
		"SELECT feature, value, computed_at FROM feature_results WHERE series_id = ?",
		seriesID,
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	features := make(map[string]models.Metric)
	var computedAt string
	for rows.Next() {
		var (
			name  string
			value sql.NullFloat64
		)
		if err := rows.Scan(&name, &value, &computedAt); err != nil {
			return nil, "", fmt.Errorf("failed to scan feature: %w", err)
		}
		features[name] = models.MetricFromNull(value)
	}
	return features, computedAt, rows.Err()
}
