package features

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jengzang/mobility-backend-go/internal/analysis"
	"github.com/jengzang/mobility-backend-go/internal/mobility"
	"github.com/jengzang/mobility-backend-go/internal/repository"
	"github.com/jengzang/mobility-backend-go/internal/service"
)

// algoVersion stamps feature rows written by this analyzer; bump it when a
// calculator's semantics change so incremental runs recompute everything
const algoVersion = "v1"

// FeatureAnalyzer batch-computes the full mobility feature set for stored
// observation series. Series with degenerate data produce missing feature
// values; only contract violations count a series as failed, and a failed
// series never aborts the batch.
type FeatureAnalyzer struct {
	*analysis.BaseAnalyzer
	seriesRepo *repository.SeriesRepository
	features   *service.FeatureService
}

// NewFeatureAnalyzer creates a new mobility feature analyzer
func NewFeatureAnalyzer(db *sql.DB) analysis.Analyzer {
	seriesRepo := repository.NewSeriesRepository(db)
	featureRepo := repository.NewFeatureRepository(db)
	return &FeatureAnalyzer{
		BaseAnalyzer: analysis.NewBaseAnalyzer(db, "mobility_features"),
		seriesRepo:   seriesRepo,
		features:     service.NewFeatureService(seriesRepo, featureRepo, algoVersion),
	}
}

// Analyze computes features for every series, or only for series without
// current-version feature rows in incremental mode
func (a *FeatureAnalyzer) Analyze(ctx context.Context, taskID int64, mode string) error {
	log.Printf("[FeatureAnalyzer] Starting analysis (task_id=%d, mode=%s)", taskID, mode)

	if err := a.MarkTaskAsRunning(taskID); err != nil {
		return fmt.Errorf("failed to mark task as running: %w", err)
	}

	ids, err := a.pendingSeries(ctx, mode)
	if err != nil {
		a.MarkTaskAsFailed(taskID, err.Error())
		return err
	}

	total := int64(len(ids))
	log.Printf("[FeatureAnalyzer] Processing %d series", total)
	if err := a.UpdateTaskProgress(taskID, total, 0, 0); err != nil {
		return fmt.Errorf("failed to update task progress: %w", err)
	}

	var processed, failed int64
	for _, id := range ids {
		select {
		case <-ctx.Done():
			a.MarkTaskAsFailed(taskID, ctx.Err().Error())
			return ctx.Err()
		default:
		}

		if _, err := a.features.ComputeAndStore(id); err != nil {
			// Contract violations (bad timestamps, unmapped clusters) are
			// per-series input errors; log and keep going.
			if isContractViolation(err) {
				log.Printf("[FeatureAnalyzer] Series %s rejected: %v", id, err)
				failed++
			} else {
				a.MarkTaskAsFailed(taskID, err.Error())
				return err
			}
		}

		processed++
		if processed%100 == 0 {
			if err := a.UpdateTaskProgress(taskID, total, processed, failed); err != nil {
				return fmt.Errorf("failed to update progress: %w", err)
			}
			log.Printf("[FeatureAnalyzer] Processed %d/%d series", processed, total)
		}
	}

	if err := a.UpdateTaskProgress(taskID, total, processed, failed); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	summary, _ := json.Marshal(map[string]interface{}{
		"total_series":     total,
		"processed_series": processed,
		"failed_series":    failed,
	})
	if err := a.MarkTaskAsCompleted(taskID, string(summary)); err != nil {
		return fmt.Errorf("failed to mark task as completed: %w", err)
	}

	log.Printf("[FeatureAnalyzer] Analysis completed: %d series processed, %d failed", processed, failed)
	return nil
}

// pendingSeries lists the series ids the run should cover
func (a *FeatureAnalyzer) pendingSeries(ctx context.Context, mode string) ([]string, error) {
	if mode != "incremental" {
		return a.seriesRepo.ListSeriesIDs()
	}

	query := `
		SELECT id FROM series
		WHERE id NOT IN (
			SELECT DISTINCT series_id FROM feature_results WHERE algo_version = ?
		)
		ORDER BY created_at, id
	`
	rows, err := a.DB.QueryContext(ctx, query, algoVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending series: %w", err)
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

func isContractViolation(err error) bool {
	return errors.Is(err, mobility.ErrNonMonotonicTime) ||
		errors.Is(err, mobility.ErrClusterNotMapped) ||
		errors.Is(err, mobility.ErrNoCoordinates) ||
		errors.Is(err, mobility.ErrNoHomeCluster)
}

// Register the analyzer
func init() {
	analysis.RegisterAnalyzer("mobility_features", NewFeatureAnalyzer)
}
