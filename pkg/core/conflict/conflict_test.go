package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

func iv(t *testing.T, start, end string) schedule.Interval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	assert.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	assert.NoError(t, err)
	return schedule.Interval{Start: s, End: e}
}

func testStore(t *testing.T) *availability.Store {
	t.Helper()
	return availability.NewStore(availability.Snapshot{
		Workers: []schedule.Worker{{ID: "w1"}, {ID: "w2"}},
		Windows: map[string]map[string][]schedule.Interval{
			"w1": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T17:00:00Z")}},
			"w2": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T17:00:00Z")}},
		},
	})
}

func TestFind_TouchingAssignmentsDoNotConflict(t *testing.T) {
	store := testStore(t)
	existing := []schedule.Assignment{
		{ID: "a1", JobID: "j1", WorkerID: "w1", Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")},
	}
	candidate := schedule.Assignment{
		ID: "a2", JobID: "j2", WorkerID: "w1",
		Interval: iv(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"),
	}

	assert.Empty(t, Find(candidate, existing, store))
}

func TestFind_OverlapSameWorker(t *testing.T) {
	store := testStore(t)
	existing := []schedule.Assignment{
		{ID: "a1", JobID: "j1", WorkerID: "w1", Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z")},
	}
	candidate := schedule.Assignment{
		ID: "a2", JobID: "j2", WorkerID: "w1",
		Interval: iv(t, "2026-03-02T10:00:00Z", "2026-03-02T12:00:00Z"),
	}

	conflicts := Find(candidate, existing, store)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, KindOverlap, conflicts[0].Kind)
	assert.Equal(t, "w1", conflicts[0].WorkerID)
	assert.Equal(t, "j1", conflicts[0].Other.JobID)
}

func TestFind_DifferentWorkersNeverConflict(t *testing.T) {
	store := testStore(t)
	existing := []schedule.Assignment{
		{ID: "a1", JobID: "j1", WorkerID: "w2", Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z")},
	}
	candidate := schedule.Assignment{
		ID: "a2", JobID: "j2", WorkerID: "w1",
		Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z"),
	}

	assert.Empty(t, Find(candidate, existing, store))
}

func TestFind_OutsideAvailability(t *testing.T) {
	store := testStore(t)
	candidate := schedule.Assignment{
		ID: "a1", JobID: "j1", WorkerID: "w1",
		Interval: iv(t, "2026-03-02T16:00:00Z", "2026-03-02T18:00:00Z"),
	}

	conflicts := Find(candidate, nil, store)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, KindAvailability, conflicts[0].Kind)
	assert.Nil(t, conflicts[0].Other)
}

func TestFind_UnknownWorkerIsAvailabilityConflict(t *testing.T) {
	store := testStore(t)
	candidate := schedule.Assignment{
		ID: "a1", JobID: "j1", WorkerID: "ghost",
		Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z"),
	}

	conflicts := Find(candidate, nil, store)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, KindAvailability, conflicts[0].Kind)
}

func TestFind_OrderIndependent(t *testing.T) {
	store := testStore(t)
	a := schedule.Assignment{ID: "a1", JobID: "j1", WorkerID: "w1", Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z")}
	b := schedule.Assignment{ID: "a2", JobID: "j2", WorkerID: "w1", Interval: iv(t, "2026-03-02T10:30:00Z", "2026-03-02T12:00:00Z")}
	candidate := schedule.Assignment{
		ID: "a3", JobID: "j3", WorkerID: "w1",
		Interval: iv(t, "2026-03-02T10:00:00Z", "2026-03-02T11:30:00Z"),
	}

	forward := Find(candidate, []schedule.Assignment{a, b}, store)
	reversed := Find(candidate, []schedule.Assignment{b, a}, store)
	assert.Equal(t, forward, reversed)
	assert.Len(t, forward, 2)
}

func TestFind_IgnoresSelf(t *testing.T) {
	store := testStore(t)
	self := schedule.Assignment{
		ID: "a1", JobID: "j1", WorkerID: "w1",
		Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z"),
	}

	assert.Empty(t, Find(self, []schedule.Assignment{self}, store))
}

func TestAudit_ReportsEachPairOnce(t *testing.T) {
	store := testStore(t)
	assignments := []schedule.Assignment{
		{ID: "a1", JobID: "j1", WorkerID: "w1", Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z")},
		{ID: "a2", JobID: "j2", WorkerID: "w1", Interval: iv(t, "2026-03-02T10:00:00Z", "2026-03-02T12:00:00Z")},
		{ID: "a3", JobID: "j3", WorkerID: "w2", Interval: iv(t, "2026-03-02T10:00:00Z", "2026-03-02T12:00:00Z")},
	}

	conflicts := Audit(assignments, store)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, KindOverlap, conflicts[0].Kind)
	assert.Equal(t, "j1", conflicts[0].Assignment.JobID)
	assert.Equal(t, "j2", conflicts[0].Other.JobID)
}

func TestAudit_CleanScheduleHasNoConflicts(t *testing.T) {
	store := testStore(t)
	assignments := []schedule.Assignment{
		{ID: "a1", JobID: "j1", WorkerID: "w1", Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")},
		{ID: "a2", JobID: "j2", WorkerID: "w1", Interval: iv(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z")},
	}

	assert.Empty(t, Audit(assignments, store))
}
