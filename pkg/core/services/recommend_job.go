package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldservehq/crewplan/pkg/core/recommend"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
	"github.com/fieldservehq/crewplan/pkg/db"
)

// RecommendJobStore is the read surface for a single-job recommendation.
type RecommendJobStore interface {
	SnapshotStore
	db.JobStore
}

// RecommendJobResult holds the ranked candidates for one job.
type RecommendJobResult struct {
	Job             schedule.Job
	Week            schedule.Interval
	Recommendations []schedule.Recommendation
}

// RecommendJob fetches the week's snapshot and ranks candidate assignments
// for one job. An empty recommendation list is a normal outcome.
func RecommendJob(
	ctx context.Context,
	database RecommendJobStore,
	logger *zap.Logger,
	engine *recommend.Engine,
	jobID string,
	week schedule.Interval,
) (*RecommendJobResult, error) {
	job, err := database.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	snap, err := LoadSnapshot(ctx, database, logger, week)
	if err != nil {
		return nil, err
	}

	recs, err := engine.Recommend(job, snap.Store, snap.Assignments, week)
	if err != nil {
		return nil, fmt.Errorf("recommendation failed for job %s: %w", jobID, err)
	}

	logger.Info("Recommendations computed",
		zap.String("job_id", jobID),
		zap.Int("candidates", len(recs)))

	return &RecommendJobResult{Job: job, Week: week, Recommendations: recs}, nil
}
