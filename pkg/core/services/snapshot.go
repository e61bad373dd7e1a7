// Package services orchestrates snapshot loading, the pure scheduling core,
// and write-back of committed assignments.
package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
	"github.com/fieldservehq/crewplan/pkg/db"
)

// WeekOf returns the 7-day horizon starting at the Monday of t's week, at
// midnight in t's location.
func WeekOf(t time.Time) schedule.Interval {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	return schedule.Interval{Start: start, End: start.AddDate(0, 0, 7)}
}

// SnapshotStore is the read surface needed to assemble a scheduling
// snapshot for one week.
type SnapshotStore interface {
	db.WorkerStore
	ListAssignments(ctx context.Context, week schedule.Interval) ([]schedule.Assignment, error)
}

// Snapshot is the immutable input to one planning or render pass.
type Snapshot struct {
	Week        schedule.Interval
	Store       *availability.Store
	Assignments []schedule.Assignment
}

// LoadSnapshot performs the single fetch at the collaborator boundary: the
// roster, availability windows, and committed assignments for the week. The
// pure core runs on the result with no further I/O.
func LoadSnapshot(ctx context.Context, database SnapshotStore, logger *zap.Logger, week schedule.Interval) (*Snapshot, error) {
	logger.Debug("Loading scheduling snapshot",
		zap.Time("week_start", week.Start),
		zap.Time("week_end", week.End))

	workers, err := database.ListWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}

	windows, err := database.ListAvailabilityWindows(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability windows: %w", err)
	}

	assignments, err := database.ListAssignments(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	logger.Debug("Snapshot loaded",
		zap.Int("workers", len(workers)),
		zap.Int("assignments", len(assignments)))

	return &Snapshot{
		Week:        week,
		Store:       availability.NewStore(availability.Snapshot{Workers: workers, Windows: windows}),
		Assignments: assignments,
	}, nil
}
