package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

func TestExpandTemplates_WeekdayPattern(t *testing.T) {
	// Week of Monday 2026-03-02.
	week := schedule.Interval{
		Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	windows, err := ExpandTemplates([]Template{
		{WorkerID: "w1", RRule: "FREQ=WEEKLY;BYDAY=MO,WE,FR", WindowStart: "09:00", WindowEnd: "17:00"},
	}, week)
	assert.NoError(t, err)

	days := windows["w1"]
	assert.Len(t, days, 3)
	assert.Contains(t, days, "2026-03-02")
	assert.Contains(t, days, "2026-03-04")
	assert.Contains(t, days, "2026-03-06")

	monday := days["2026-03-02"]
	assert.Len(t, monday, 1)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), monday[0].Start)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), monday[0].End)
}

func TestExpandTemplates_MultipleTemplatesSameWorker(t *testing.T) {
	week := schedule.Interval{
		Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	windows, err := ExpandTemplates([]Template{
		{WorkerID: "w1", RRule: "FREQ=WEEKLY;BYDAY=MO", WindowStart: "09:00", WindowEnd: "12:00"},
		{WorkerID: "w1", RRule: "FREQ=WEEKLY;BYDAY=MO", WindowStart: "13:00", WindowEnd: "17:00"},
	}, week)
	assert.NoError(t, err)
	assert.Len(t, windows["w1"]["2026-03-02"], 2)

	// Store normalization keeps them ordered and distinct.
	store := NewStore(Snapshot{Workers: []schedule.Worker{{ID: "w1"}}, Windows: windows})
	day, err := store.Windows("w1", "2026-03-02")
	assert.NoError(t, err)
	assert.Len(t, day, 2)
	assert.True(t, day[0].End.Before(day[1].Start))
}

func TestExpandTemplates_BadRRule(t *testing.T) {
	week := schedule.Interval{
		Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	_, err := ExpandTemplates([]Template{
		{WorkerID: "w1", RRule: "FREQ=NOPE", WindowStart: "09:00", WindowEnd: "17:00"},
	}, week)
	assert.Error(t, err)
}

func TestExpandTemplates_EmptyWindowRejected(t *testing.T) {
	week := schedule.Interval{
		Start: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	_, err := ExpandTemplates([]Template{
		{WorkerID: "w1", RRule: "FREQ=WEEKLY;BYDAY=MO", WindowStart: "17:00", WindowEnd: "09:00"},
	}, week)
	assert.Error(t, err)
}
