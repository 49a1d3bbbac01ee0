package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jengzang/mobility-backend-go/internal/analysis"
	"github.com/jengzang/mobility-backend-go/internal/models"
	"github.com/jengzang/mobility-backend-go/internal/repository"
)

// TaskService starts and tracks batch analysis tasks
type TaskService struct {
	db       *sql.DB
	taskRepo *repository.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(db *sql.DB, taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{db: db, taskRepo: taskRepo}
}

// StartTask creates a task row and runs the named analyzer in the
// background. Unknown skill names are an input error.
func (s *TaskService) StartTask(req models.CreateTaskRequest) (*models.AnalysisTask, error) {
	analyzer := analysis.GetAnalyzer(req.SkillName, s.db)
	if analyzer == nil {
		return nil, fmt.Errorf("unknown analysis skill %q", req.SkillName)
	}

	mode := req.Mode
	if mode == "" {
		mode = "full"
	}

	taskID, err := s.taskRepo.CreateTask(req.SkillName)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := analyzer.Analyze(context.Background(), taskID, mode); err != nil {
			log.Printf("[TaskService] Task %d (%s) failed: %v", taskID, req.SkillName, err)
		}
	}()

	return s.taskRepo.GetTask(taskID)
}

// GetTask returns a task by id, nil when unknown
func (s *TaskService) GetTask(id int64) (*models.AnalysisTask, error) {
	return s.taskRepo.GetTask(id)
}

// ListTasks returns the most recent tasks
func (s *TaskService) ListTasks(limit int) ([]models.AnalysisTask, error) {
	return s.taskRepo.ListTasks(limit)
}
