package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldservehq/crewplan/pkg/core/conflict"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// CommitStore is the store surface for committing one assignment.
type CommitStore interface {
	SnapshotStore
	InsertAssignment(ctx context.Context, a schedule.Assignment) error
}

// CommitAssignment re-checks a chosen candidate against the current
// snapshot and writes it back when clean. The conflict list is returned
// instead of an error so the caller can show it to the dispatcher.
func CommitAssignment(
	ctx context.Context,
	database CommitStore,
	logger *zap.Logger,
	candidate schedule.Assignment,
	week schedule.Interval,
) ([]conflict.Conflict, error) {
	snap, err := LoadSnapshot(ctx, database, logger, week)
	if err != nil {
		return nil, err
	}

	conflicts := conflict.Find(candidate, snap.Assignments, snap.Store)
	if len(conflicts) > 0 {
		logger.Warn("Commit rejected",
			zap.String("job_id", candidate.JobID),
			zap.String("worker_id", candidate.WorkerID),
			zap.Int("conflicts", len(conflicts)))
		return conflicts, nil
	}

	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	if err := database.InsertAssignment(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	logger.Info("Assignment committed",
		zap.String("assignment_id", candidate.ID),
		zap.String("job_id", candidate.JobID),
		zap.String("worker_id", candidate.WorkerID))
	return nil, nil
}
