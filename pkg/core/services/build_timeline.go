package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/fieldservehq/crewplan/pkg/core/conflict"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
	"github.com/fieldservehq/crewplan/pkg/core/timeline"
)

// BuildTimeline fetches the week's snapshot and derives the timeline view
// model at the controller's current granularity.
func BuildTimeline(
	ctx context.Context,
	database SnapshotStore,
	logger *zap.Logger,
	controller *timeline.Controller,
	week schedule.Interval,
) (timeline.ViewModel, error) {
	snap, err := LoadSnapshot(ctx, database, logger, week)
	if err != nil {
		return timeline.ViewModel{}, err
	}

	vm, err := controller.Rebuild(snap.Store.Workers(), snap.Assignments, snap.Store)
	if err != nil {
		return timeline.ViewModel{}, err
	}

	logger.Debug("Timeline built",
		zap.String("granularity", string(vm.Granularity)),
		zap.Int("rows", len(vm.Rows)))
	return vm, nil
}

// FindWeekConflicts audits the week's committed assignments against each
// other and against availability.
func FindWeekConflicts(
	ctx context.Context,
	database SnapshotStore,
	logger *zap.Logger,
	week schedule.Interval,
) ([]conflict.Conflict, error) {
	snap, err := LoadSnapshot(ctx, database, logger, week)
	if err != nil {
		return nil, err
	}

	conflicts := conflict.Audit(snap.Assignments, snap.Store)
	if len(conflicts) > 0 {
		logger.Warn("Schedule has conflicts", zap.Int("count", len(conflicts)))
	}
	return conflicts, nil
}
