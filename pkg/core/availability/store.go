// Package availability holds the read-only view over worker availability
// windows used by conflict detection and recommendation.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// Snapshot is an immutable availability snapshot: the roster plus each
// worker's availability windows keyed by calendar day.
type Snapshot struct {
	Workers []schedule.Worker

	// Windows maps worker ID -> day key -> windows for that day.
	Windows map[string]map[string][]schedule.Interval
}

// Store provides pure reads over an availability snapshot. Windows are
// normalized on construction: sorted by start and merged when overlapping,
// so the per-day ordering invariant holds regardless of input order.
type Store struct {
	workers []schedule.Worker
	known   map[string]bool
	windows map[string]map[string][]schedule.Interval
}

// NewStore builds a store from a snapshot. The snapshot is copied; later
// mutation of the caller's maps does not affect the store.
func NewStore(snap Snapshot) *Store {
	s := &Store{
		workers: make([]schedule.Worker, len(snap.Workers)),
		known:   make(map[string]bool, len(snap.Workers)),
		windows: make(map[string]map[string][]schedule.Interval, len(snap.Windows)),
	}
	copy(s.workers, snap.Workers)
	sort.Slice(s.workers, func(i, j int) bool { return s.workers[i].ID < s.workers[j].ID })
	for _, w := range s.workers {
		s.known[w.ID] = true
	}

	for workerID, days := range snap.Windows {
		s.known[workerID] = true
		normalized := make(map[string][]schedule.Interval, len(days))
		for day, windows := range days {
			normalized[day] = normalize(windows)
		}
		s.windows[workerID] = normalized
	}
	return s
}

// Workers returns the roster ordered by worker ID.
func (s *Store) Workers() []schedule.Worker {
	out := make([]schedule.Worker, len(s.workers))
	copy(out, s.workers)
	return out
}

// Known reports whether the worker appears in the snapshot.
func (s *Store) Known(workerID string) bool {
	return s.known[workerID]
}

// Windows returns the worker's availability windows for a day, ordered by
// start time. An empty slice means the worker has no availability that day.
func (s *Store) Windows(workerID, day string) ([]schedule.Interval, error) {
	if !s.known[workerID] {
		return nil, fmt.Errorf("%w: %s", schedule.ErrNotFound, workerID)
	}
	days, ok := s.windows[workerID]
	if !ok {
		return nil, nil
	}
	windows := days[day]
	out := make([]schedule.Interval, len(windows))
	copy(out, windows)
	return out, nil
}

// IsAvailable reports whether the worker is available at the given instant.
// Unknown workers are simply unavailable.
func (s *Store) IsAvailable(workerID string, at time.Time) bool {
	windows, err := s.Windows(workerID, schedule.DayOf(at))
	if err != nil {
		return false
	}
	for _, w := range windows {
		if w.ContainsInstant(at) {
			return true
		}
	}
	return false
}

// Covers reports whether some single availability window fully contains the
// interval. This is the containment rule conflict detection relies on.
func (s *Store) Covers(workerID string, iv schedule.Interval) bool {
	windows, err := s.Windows(workerID, iv.Day())
	if err != nil {
		return false
	}
	for _, w := range windows {
		if w.Contains(iv) {
			return true
		}
	}
	return false
}

// Intersect returns the sub-windows of the worker's availability for a day
// that overlap the given interval.
func (s *Store) Intersect(workerID, day string, iv schedule.Interval) ([]schedule.Interval, error) {
	windows, err := s.Windows(workerID, day)
	if err != nil {
		return nil, err
	}
	var out []schedule.Interval
	for _, w := range windows {
		if clipped, ok := w.Clip(iv); ok {
			out = append(out, clipped)
		}
	}
	return out, nil
}

// normalize sorts windows by start time and merges any that overlap or touch.
func normalize(windows []schedule.Interval) []schedule.Interval {
	if len(windows) == 0 {
		return nil
	}
	sorted := make([]schedule.Interval, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	merged := sorted[:1]
	for _, w := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !w.Start.After(last.End) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}
