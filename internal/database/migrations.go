package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a single schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in version order; each version runs exactly once
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_series",
		SQL: `
			CREATE TABLE IF NOT EXISTS series (
				id TEXT PRIMARY KEY,
				subject TEXT NOT NULL,
				home_cluster TEXT NOT NULL DEFAULT '',
				observation_count INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_series_subject ON series(subject);
		`,
	},
	{
		Version: 2,
		Name:    "create_observations",
		SQL: `
			CREATE TABLE IF NOT EXISTS observations (
				series_id TEXT NOT NULL REFERENCES series(id) ON DELETE CASCADE,
				ts INTEGER NOT NULL,
				cluster TEXT,
				lat REAL,
				lon REAL,
				PRIMARY KEY (series_id, ts)
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_cluster_coords",
		SQL: `
			CREATE TABLE IF NOT EXISTS cluster_coords (
				series_id TEXT NOT NULL REFERENCES series(id) ON DELETE CASCADE,
				cluster TEXT NOT NULL,
				lat REAL NOT NULL,
				lon REAL NOT NULL,
				PRIMARY KEY (series_id, cluster)
			);
		`,
	},
	{
		Version: 4,
		Name:    "create_feature_results",
		SQL: `
			CREATE TABLE IF NOT EXISTS feature_results (
				series_id TEXT NOT NULL REFERENCES series(id) ON DELETE CASCADE,
				feature TEXT NOT NULL,
				value REAL,
				algo_version TEXT NOT NULL DEFAULT 'v1',
				computed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (series_id, feature)
			);
		`,
	},
	{
		Version: 5,
		Name:    "create_analysis_tasks",
		SQL: `
			CREATE TABLE IF NOT EXISTS analysis_tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				skill_name TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				progress_percent REAL NOT NULL DEFAULT 0,
				total_series INTEGER NOT NULL DEFAULT 0,
				processed_series INTEGER NOT NULL DEFAULT 0,
				failed_series INTEGER NOT NULL DEFAULT 0,
				error_message TEXT,
				result_summary TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				started_at TIMESTAMP,
				completed_at TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
}

// Migrate applies all pending migrations
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec(
			"INSERT INTO migrations (version, name) VALUES (?, ?)",
			m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
