package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldservehq/crewplan/pkg/core/recommend"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
	"github.com/fieldservehq/crewplan/pkg/db"
)

// PlanWeekStore is the store surface for batch planning.
type PlanWeekStore interface {
	SnapshotStore
	db.JobStore
	InsertAssignment(ctx context.Context, a schedule.Assignment) error
}

// PlannedJob records the outcome for one job in a batch plan.
type PlannedJob struct {
	Job            schedule.Job
	Recommendation schedule.Recommendation
}

// PlanWeekResult reports the outcome of a batch planning run.
type PlanWeekResult struct {
	Week      schedule.Interval
	Placed    []PlannedJob
	Unplaced  []schedule.Job
	Committed bool
}

// PlanWeek assigns every unscheduled job that fits the week. Jobs are
// planned hardest-first (longest duration, then ID) and each pick joins the
// in-memory assignment set before the next job is planned, so later picks
// see earlier ones. The caller-owned snapshot is never mutated. With dryRun
// set, nothing is written back.
func PlanWeek(
	ctx context.Context,
	database PlanWeekStore,
	logger *zap.Logger,
	engine *recommend.Engine,
	week schedule.Interval,
	dryRun bool,
) (*PlanWeekResult, error) {
	jobs, err := database.ListUnscheduledJobs(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unscheduled jobs: %w", err)
	}
	logger.Info("Planning week",
		zap.Time("week_start", week.Start),
		zap.Int("jobs", len(jobs)),
		zap.Bool("dry_run", dryRun))

	snap, err := LoadSnapshot(ctx, database, logger, week)
	if err != nil {
		return nil, err
	}

	// Longest jobs are the hardest to place; plan them first.
	ordered := make([]schedule.Job, len(jobs))
	copy(ordered, jobs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Duration != ordered[j].Duration {
			return ordered[i].Duration > ordered[j].Duration
		}
		return ordered[i].ID < ordered[j].ID
	})

	result := &PlanWeekResult{Week: week, Committed: !dryRun}

	working := make([]schedule.Assignment, len(snap.Assignments))
	copy(working, snap.Assignments)

	for _, job := range ordered {
		recs, err := engine.Recommend(job, snap.Store, working, week)
		if err != nil {
			return nil, fmt.Errorf("recommendation failed for job %s: %w", job.ID, err)
		}
		if len(recs) == 0 {
			logger.Warn("No placement found", zap.String("job_id", job.ID))
			result.Unplaced = append(result.Unplaced, job)
			continue
		}

		pick := recs[0]
		pick.Assignment.ID = uuid.NewString()
		working = append(working, pick.Assignment)
		result.Placed = append(result.Placed, PlannedJob{Job: job, Recommendation: pick})

		logger.Debug("Job placed",
			zap.String("job_id", job.ID),
			zap.String("worker_id", pick.Assignment.WorkerID),
			zap.Time("start", pick.Assignment.Interval.Start),
			zap.Float64("score", pick.Score))
	}

	if dryRun {
		return result, nil
	}

	for _, planned := range result.Placed {
		if err := database.InsertAssignment(ctx, planned.Recommendation.Assignment); err != nil {
			return nil, fmt.Errorf("failed to save assignment for job %s: %w", planned.Job.ID, err)
		}
	}
	logger.Info("Week planned",
		zap.Int("placed", len(result.Placed)),
		zap.Int("unplaced", len(result.Unplaced)))

	return result, nil
}
