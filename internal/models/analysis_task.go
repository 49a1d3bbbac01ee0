package models

// AnalysisTask tracks one batch feature-extraction run
type AnalysisTask struct {
	ID              int64   `json:"id" db:"id"`
	SkillName       string  `json:"skillName" db:"skill_name"`
	Status          string  `json:"status" db:"status"` // pending, running, completed, failed
	ProgressPercent float64 `json:"progressPercent" db:"progress_percent"`
	TotalSeries     int64   `json:"totalSeries" db:"total_series"`
	ProcessedSeries int64   `json:"processedSeries" db:"processed_series"`
	FailedSeries    int64   `json:"failedSeries" db:"failed_series"`
	ErrorMessage    string  `json:"errorMessage,omitempty" db:"error_message"`
	ResultSummary   string  `json:"resultSummary,omitempty" db:"result_summary"`
	CreatedAt       string  `json:"createdAt,omitempty" db:"created_at"`
	StartedAt       *string `json:"startedAt,omitempty" db:"started_at"`
	CompletedAt     *string `json:"completedAt,omitempty" db:"completed_at"`
}

// CreateTaskRequest starts a batch analysis run
type CreateTaskRequest struct {
	SkillName string `json:"skillName" binding:"required"`
	Mode      string `json:"mode"` // "full" or "incremental", default full
}
