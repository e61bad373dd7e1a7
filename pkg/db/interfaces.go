// Package db defines the store contracts the scheduling services depend on.
// The core engine never touches a store directly; services fetch an
// immutable snapshot up front and hand it to the pure packages.
package db

import (
	"context"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// WorkerStore provides the roster and availability windows.
type WorkerStore interface {
	ListWorkers(ctx context.Context) ([]schedule.Worker, error)

	// ListAvailabilityWindows returns worker ID -> day key -> windows for
	// every worker with availability inside the week.
	ListAvailabilityWindows(ctx context.Context, week schedule.Interval) (map[string]map[string][]schedule.Interval, error)
}

// JobStore provides job descriptors.
type JobStore interface {
	GetJob(ctx context.Context, id string) (schedule.Job, error)

	// ListUnscheduledJobs returns jobs whose envelope overlaps the week and
	// that have no committed assignment yet.
	ListUnscheduledJobs(ctx context.Context, week schedule.Interval) ([]schedule.Job, error)
}

// AssignmentStore provides committed assignments and accepts new ones.
type AssignmentStore interface {
	ListAssignments(ctx context.Context, week schedule.Interval) ([]schedule.Assignment, error)
	InsertAssignment(ctx context.Context, a schedule.Assignment) error
}

// Database is the full store surface the CLI wires up.
type Database interface {
	WorkerStore
	JobStore
	AssignmentStore
}
