package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/mobility-backend-go/internal/models"
)

// TaskRepository handles database operations for analysis tasks
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTask inserts a pending task and returns its id
func (r *TaskRepository) CreateTask(skillName string) (int64, error) {
	res, err := r.db.Exec(
		"INSERT INTO analysis_tasks (skill_name, status) VALUES (?, 'pending')",
		skillName,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read task id: %w", err)
	}
	return id, nil
}

// GetTask retrieves a task by id
func (r *TaskRepository) GetTask(id int64) (*models.AnalysisTask, error) {
	query := `
		SELECT id, skill_name, status, progress_percent,
		       total_series, processed_series, failed_series,
		       COALESCE(error_message, ''), COALESCE(result_summary, ''),
		       created_at, started_at, completed_at
		FROM analysis_tasks
		WHERE id = ?
	`

	var (
		t                      models.AnalysisTask
		startedAt, completedAt sql.NullString
	)
	err := r.db.QueryRow(query, id).Scan(
		&t.ID, &t.SkillName, &t.Status, &t.ProgressPercent,
		&t.TotalSeries, &t.ProcessedSeries, &t.FailedSeries,
		&t.ErrorMessage, &t.ResultSummary,
		&t.CreatedAt, &startedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	if startedAt.Valid {
		t.StartedAt = &startedAt.String
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.String
	}
	return &t, nil
}

// ListTasks retrieves the most recent tasks, newest first
func (r *TaskRepository) ListTasks(limit int) ([]models.AnalysisTask, error) {
	if limit < 1 {
		limit = 50
	}

	query := `
		SELECT id, skill_name, status, progress_percent,
		       total_series, processed_series, failed_series,
		       COALESCE(error_message, ''), COALESCE(result_summary, ''),
		       created_at, started_at, completed_at
		FROM analysis_tasks
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.AnalysisTask
	for rows.Next() {
		var (
			t                      models.AnalysisTask
			startedAt, completedAt sql.NullString
		)
		if err := rows.Scan(
			&t.ID, &t.SkillName, &t.Status, &t.ProgressPercent,
			&t.TotalSeries, &t.ProcessedSeries, &t.FailedSeries,
			&t.ErrorMessage, &t.ResultSummary,
			&t.CreatedAt, &startedAt, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if startedAt.Valid {
			t.StartedAt = &startedAt.String
		}
		if completedAt.Valid {
			t.CompletedAt = &completedAt.String
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
