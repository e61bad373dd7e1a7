package timeline

import (
	"sort"
	"time"

	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/conflict"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// Granularity selects the visible time span of the view.
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

// Block is one positioned assignment on a worker row.
type Block struct {
	AssignmentID string
	JobID        string
	Interval     schedule.Interval
	Rect         Rect
}

// Tick marks a day boundary on the horizontal axis.
type Tick struct {
	Day string
	X   float64
}

// WorkerRow holds one worker's positioned blocks and any conflicts
// overlapping that row, for visual highlighting.
type WorkerRow struct {
	WorkerID  string
	Name      string
	Index     int
	Blocks    []Block
	Conflicts []conflict.Conflict
}

// ViewModel is the renderable structure for one render pass. Building it
// twice from equal inputs yields an equal structure, so view layers can
// diff cheaply.
type ViewModel struct {
	Space       Space
	Granularity Granularity
	RowHeight   float64
	Rows        []WorkerRow
	DayTicks    []Tick
}

// Build assembles the view model: one row per worker (ordered by ID), a
// positioned block per assignment inside the visible range, day boundary
// ticks, and conflict markers per row.
func Build(workers []schedule.Worker, assignments []schedule.Assignment, store *availability.Store, space Space, granularity Granularity, rowHeight float64) ViewModel {
	ordered := make([]schedule.Worker, len(workers))
	copy(ordered, workers)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	visible := space.Range()
	conflicts := conflict.Audit(assignments, store)

	rows := make([]WorkerRow, 0, len(ordered))
	for i, worker := range ordered {
		row := WorkerRow{WorkerID: worker.ID, Name: worker.Name, Index: i}

		for _, a := range assignments {
			if a.WorkerID != worker.ID || !a.Interval.Overlaps(visible) {
				continue
			}
			row.Blocks = append(row.Blocks, Block{
				AssignmentID: a.ID,
				JobID:        a.JobID,
				Interval:     a.Interval,
				Rect:         space.IntervalToRect(a.Interval, i, rowHeight),
			})
		}
		sort.SliceStable(row.Blocks, func(a, b int) bool {
			return row.Blocks[a].Interval.Start.Before(row.Blocks[b].Interval.Start)
		})

		for _, c := range conflicts {
			if c.WorkerID == worker.ID && c.Assignment.Interval.Overlaps(visible) {
				row.Conflicts = append(row.Conflicts, c)
			}
		}

		rows = append(rows, row)
	}

	return ViewModel{
		Space:       space,
		Granularity: granularity,
		RowHeight:   rowHeight,
		Rows:        rows,
		DayTicks:    dayTicks(space),
	}
}

// dayTicks places a tick at each midnight inside the visible range,
// including the range start.
func dayTicks(space Space) []Tick {
	var ticks []Tick
	day := time.Date(space.RangeStart.Year(), space.RangeStart.Month(), space.RangeStart.Day(),
		0, 0, 0, 0, space.RangeStart.Location())
	if day.Before(space.RangeStart) {
		day = day.AddDate(0, 0, 1)
	}
	for day.Before(space.RangeEnd) {
		ticks = append(ticks, Tick{Day: day.Format(schedule.DayLayout), X: space.TimeToPosition(day)})
		day = day.AddDate(0, 0, 1)
	}
	return ticks
}
