package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func iv(t *testing.T, start, end string) schedule.Interval {
	t.Helper()
	return schedule.Interval{Start: at(t, start), End: at(t, end)}
}

// Week of Monday 2026-03-02.
func week(t *testing.T) schedule.Interval {
	t.Helper()
	return iv(t, "2026-03-02T00:00:00Z", "2026-03-09T00:00:00Z")
}

func storeWith(t *testing.T, windows map[string]map[string][]schedule.Interval, workers ...schedule.Worker) *availability.Store {
	t.Helper()
	return availability.NewStore(availability.Snapshot{Workers: workers, Windows: windows})
}

func TestRecommend_EarliestFitInWindow(t *testing.T) {
	// Worker W1 available Mon 09:00-12:00; job needs 2h, envelope Mon 08:00-17:00.
	store := storeWith(t,
		map[string]map[string][]schedule.Interval{
			"w1": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T12:00:00Z")}},
		},
		schedule.Worker{ID: "w1", Skills: []string{"electrical"}},
	)
	job := schedule.Job{
		ID:             "j1",
		RequiredSkills: []string{"electrical"},
		Duration:       2 * time.Hour,
		EarliestStart:  at(t, "2026-03-02T08:00:00Z"),
		LatestFinish:   at(t, "2026-03-02T17:00:00Z"),
	}

	recs, err := NewEngine(DefaultWeights()).Recommend(job, store, nil, week(t))
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	best := recs[0]
	assert.Equal(t, "w1", best.Assignment.WorkerID)
	assert.Equal(t, at(t, "2026-03-02T09:00:00Z"), best.Assignment.Interval.Start)
	assert.Equal(t, at(t, "2026-03-02T11:00:00Z"), best.Assignment.Interval.End)
	assert.NotEmpty(t, best.Reasons)
}

func TestRecommend_InvalidJob(t *testing.T) {
	store := storeWith(t, nil, schedule.Worker{ID: "w1"})

	_, err := NewEngine(DefaultWeights()).Recommend(schedule.Job{
		ID:            "j1",
		Duration:      0,
		EarliestStart: at(t, "2026-03-02T08:00:00Z"),
		LatestFinish:  at(t, "2026-03-02T17:00:00Z"),
	}, store, nil, week(t))
	assert.ErrorIs(t, err, schedule.ErrInvalidJob)

	_, err = NewEngine(DefaultWeights()).Recommend(schedule.Job{
		ID:            "j2",
		Duration:      time.Hour,
		EarliestStart: at(t, "2026-03-02T17:00:00Z"),
		LatestFinish:  at(t, "2026-03-02T08:00:00Z"),
	}, store, nil, week(t))
	assert.ErrorIs(t, err, schedule.ErrInvalidJob)
}

func TestRecommend_NoSolutionIsEmptyNotError(t *testing.T) {
	store := storeWith(t,
		map[string]map[string][]schedule.Interval{
			"w1": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z")}},
		},
		schedule.Worker{ID: "w1", Skills: []string{"plumbing"}},
	)
	job := schedule.Job{
		ID:             "j1",
		RequiredSkills: []string{"hvac"}, // nobody has it
		Duration:       time.Hour,
		EarliestStart:  at(t, "2026-03-02T08:00:00Z"),
		LatestFinish:   at(t, "2026-03-02T17:00:00Z"),
	}

	recs, err := NewEngine(DefaultWeights()).Recommend(job, store, nil, week(t))
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_DurationBoundary(t *testing.T) {
	store := storeWith(t,
		map[string]map[string][]schedule.Interval{
			"w1": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T12:00:00Z")}},
		},
		schedule.Worker{ID: "w1"},
	)
	job := schedule.Job{
		ID:            "j1",
		Duration:      3 * time.Hour, // exactly the window length
		EarliestStart: at(t, "2026-03-02T08:00:00Z"),
		LatestFinish:  at(t, "2026-03-02T17:00:00Z"),
	}

	engine := NewEngine(DefaultWeights())

	recs, err := engine.Recommend(job, store, nil, week(t))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, at(t, "2026-03-02T12:00:00Z"), recs[0].Assignment.Interval.End)

	job.Duration = 3*time.Hour + time.Minute
	recs, err = engine.Recommend(job, store, nil, week(t))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_Deterministic(t *testing.T) {
	store := storeWith(t,
		map[string]map[string][]schedule.Interval{
			"w1": {
				"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T17:00:00Z")},
				"2026-03-03": {iv(t, "2026-03-03T09:00:00Z", "2026-03-03T17:00:00Z")},
			},
			"w2": {
				"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T17:00:00Z")},
			},
		},
		schedule.Worker{ID: "w1"}, schedule.Worker{ID: "w2"},
	)
	existing := []schedule.Assignment{
		{ID: "a1", JobID: "j0", WorkerID: "w1", Interval: iv(t, "2026-03-02T10:00:00Z", "2026-03-02T12:00:00Z")},
	}
	job := schedule.Job{
		ID:            "j1",
		Duration:      2 * time.Hour,
		EarliestStart: at(t, "2026-03-02T08:00:00Z"),
		LatestFinish:  at(t, "2026-03-06T17:00:00Z"),
	}

	engine := NewEngine(DefaultWeights())
	first, err := engine.Recommend(job, store, existing, week(t))
	require.NoError(t, err)
	second, err := engine.Recommend(job, store, existing, week(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommend_TieBrokenByLowestWorkerID(t *testing.T) {
	// Two identical workers, identical windows: scores tie, w1 must rank first.
	windows := map[string]map[string][]schedule.Interval{
		"w1": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T12:00:00Z")}},
		"w2": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T12:00:00Z")}},
	}
	store := storeWith(t, windows, schedule.Worker{ID: "w2"}, schedule.Worker{ID: "w1"})
	job := schedule.Job{
		ID:            "j1",
		Duration:      time.Hour,
		EarliestStart: at(t, "2026-03-02T08:00:00Z"),
		LatestFinish:  at(t, "2026-03-02T17:00:00Z"),
	}

	recs, err := NewEngine(DefaultWeights()).Recommend(job, store, nil, week(t))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "w1", recs[0].Assignment.WorkerID)
	assert.Equal(t, "w2", recs[1].Assignment.WorkerID)
	assert.Equal(t, recs[0].Score, recs[1].Score)
}

func TestRecommend_ExactFitScoresAtLeastAsHighAsLooseFit(t *testing.T) {
	// Same start time for both workers so earliness is equal; w1's window is an
	// exact fit, w2's leaves idle time.
	windows := map[string]map[string][]schedule.Interval{
		"w1": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z")}},
		"w2": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T15:00:00Z")}},
	}
	store := storeWith(t, windows, schedule.Worker{ID: "w1"}, schedule.Worker{ID: "w2"})
	job := schedule.Job{
		ID:            "j1",
		Duration:      2 * time.Hour,
		EarliestStart: at(t, "2026-03-02T09:00:00Z"),
		LatestFinish:  at(t, "2026-03-02T17:00:00Z"),
	}

	recs, err := NewEngine(DefaultWeights()).Recommend(job, store, nil, week(t))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "w1", recs[0].Assignment.WorkerID)
	assert.GreaterOrEqual(t, recs[0].Score, recs[1].Score)
	assert.Contains(t, recs[0].Reasons, "exact fit")
}

func TestRecommend_EarlierStartRankedFirstInSameWindow(t *testing.T) {
	// An existing assignment splits the window; the gap at 09:00 should beat
	// the later gap when weights favor earliness.
	store := storeWith(t,
		map[string]map[string][]schedule.Interval{
			"w1": {"2026-03-02": {iv(t, "2026-03-02T09:00:00Z", "2026-03-02T17:00:00Z")}},
		},
		schedule.Worker{ID: "w1"},
	)
	existing := []schedule.Assignment{
		{ID: "a1", JobID: "j0", WorkerID: "w1", Interval: iv(t, "2026-03-02T11:00:00Z", "2026-03-02T13:00:00Z")},
	}
	job := schedule.Job{
		ID:            "j1",
		Duration:      2 * time.Hour,
		EarliestStart: at(t, "2026-03-02T08:00:00Z"),
		LatestFinish:  at(t, "2026-03-02T17:00:00Z"),
	}

	recs, err := NewEngine(Weights{Fit: 0.0, Earliness: 1.0, Balance: 0.0}).Recommend(job, store, existing, week(t))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, at(t, "2026-03-02T09:00:00Z"), recs[0].Assignment.Interval.Start)
	assert.Equal(t, at(t, "2026-03-02T13:00:00Z"), recs[1].Assignment.Interval.Start)
}

func TestRecommend_BalancePrefersLessLoadedWorker(t *testing.T) {
	windows := map[string]map[string][]schedule.Interval{
		"w1": {"2026-03-03": {iv(t, "2026-03-03T09:00:00Z", "2026-03-03T12:00:00Z")}},
		"w2": {"2026-03-03": {iv(t, "2026-03-03T09:00:00Z", "2026-03-03T12:00:00Z")}},
	}
	store := storeWith(t, windows, schedule.Worker{ID: "w1"}, schedule.Worker{ID: "w2"})
	existing := []schedule.Assignment{
		{ID: "a1", JobID: "j0", WorkerID: "w1", Interval: iv(t, "2026-03-02T09:00:00Z", "2026-03-02T11:00:00Z")},
	}
	job := schedule.Job{
		ID:            "j1",
		Duration:      time.Hour,
		EarliestStart: at(t, "2026-03-03T08:00:00Z"),
		LatestFinish:  at(t, "2026-03-03T17:00:00Z"),
	}

	recs, err := NewEngine(Weights{Fit: 0.0, Earliness: 0.0, Balance: 1.0}).Recommend(job, store, existing, week(t))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "w2", recs[0].Assignment.WorkerID)
}

func TestRecommend_RespectsEnvelopeClipping(t *testing.T) {
	store := storeWith(t,
		map[string]map[string][]schedule.Interval{
			"w1": {"2026-03-02": {iv(t, "2026-03-02T06:00:00Z", "2026-03-02T20:00:00Z")}},
		},
		schedule.Worker{ID: "w1"},
	)
	job := schedule.Job{
		ID:            "j1",
		Duration:      2 * time.Hour,
		EarliestStart: at(t, "2026-03-02T10:00:00Z"),
		LatestFinish:  at(t, "2026-03-02T14:00:00Z"),
	}

	recs, err := NewEngine(DefaultWeights()).Recommend(job, store, nil, week(t))
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.Equal(t, at(t, "2026-03-02T10:00:00Z"), recs[0].Assignment.Interval.Start)
	for _, rec := range recs {
		assert.False(t, rec.Assignment.Interval.End.After(at(t, "2026-03-02T14:00:00Z")))
	}
}

func TestSubtract(t *testing.T) {
	window := iv(t, "2026-03-02T09:00:00Z", "2026-03-02T17:00:00Z")
	busy := []schedule.Interval{
		iv(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"),
		iv(t, "2026-03-02T13:00:00Z", "2026-03-02T15:00:00Z"),
	}

	free := subtract(window, busy)
	assert.Equal(t, []schedule.Interval{
		iv(t, "2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z"),
		iv(t, "2026-03-02T11:00:00Z", "2026-03-02T13:00:00Z"),
		iv(t, "2026-03-02T15:00:00Z", "2026-03-02T17:00:00Z"),
	}, free)
}

func TestSubtract_BusyCoversWindow(t *testing.T) {
	window := iv(t, "2026-03-02T09:00:00Z", "2026-03-02T12:00:00Z")
	busy := []schedule.Interval{iv(t, "2026-03-02T08:00:00Z", "2026-03-02T13:00:00Z")}

	assert.Empty(t, subtract(window, busy))
}
