// Package conflict implements deterministic conflict detection between
// assignments and against worker availability.
package conflict

import (
	"fmt"
	"sort"

	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// Kind distinguishes the two conflict shapes.
type Kind string

const (
	// KindOverlap is two assignments for the same worker with overlapping
	// intervals.
	KindOverlap Kind = "overlap"

	// KindAvailability is an assignment whose interval is not fully
	// contained by any single availability window.
	KindAvailability Kind = "availability"
)

// Conflict is produced on demand and never stored.
type Conflict struct {
	Kind     Kind
	WorkerID string

	// Assignment is the offending assignment.
	Assignment schedule.Assignment

	// Other is the existing assignment overlapped, nil for availability
	// conflicts.
	Other *schedule.Assignment
}

func (c Conflict) String() string {
	if c.Kind == KindOverlap && c.Other != nil {
		return fmt.Sprintf("worker %s: job %s %s overlaps job %s %s",
			c.WorkerID, c.Assignment.JobID, c.Assignment.Interval, c.Other.JobID, c.Other.Interval)
	}
	return fmt.Sprintf("worker %s: job %s %s falls outside availability",
		c.WorkerID, c.Assignment.JobID, c.Assignment.Interval)
}

// Find returns every conflict between the candidate and the existing set,
// plus a synthetic availability conflict when no window fully contains the
// candidate's interval. The result is independent of the iteration order of
// existing: it is returned in canonical order (availability first, then
// overlaps by the other assignment's start time, then job ID).
func Find(candidate schedule.Assignment, existing []schedule.Assignment, store *availability.Store) []Conflict {
	var conflicts []Conflict

	if !store.Covers(candidate.WorkerID, candidate.Interval) {
		conflicts = append(conflicts, Conflict{
			Kind:       KindAvailability,
			WorkerID:   candidate.WorkerID,
			Assignment: candidate,
		})
	}

	for i := range existing {
		other := existing[i]
		if other.WorkerID != candidate.WorkerID {
			continue
		}
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if candidate.Interval.Overlaps(other.Interval) {
			o := other
			conflicts = append(conflicts, Conflict{
				Kind:       KindOverlap,
				WorkerID:   candidate.WorkerID,
				Assignment: candidate,
				Other:      &o,
			})
		}
	}

	sortCanonical(conflicts)
	return conflicts
}

// Audit runs pairwise overlap detection plus availability containment over a
// whole assignment set. Each overlapping pair is reported once.
func Audit(assignments []schedule.Assignment, store *availability.Store) []Conflict {
	var conflicts []Conflict

	for i := range assignments {
		a := assignments[i]
		if !store.Covers(a.WorkerID, a.Interval) {
			conflicts = append(conflicts, Conflict{
				Kind:       KindAvailability,
				WorkerID:   a.WorkerID,
				Assignment: a,
			})
		}
		for j := i + 1; j < len(assignments); j++ {
			b := assignments[j]
			if a.WorkerID != b.WorkerID || !a.Interval.Overlaps(b.Interval) {
				continue
			}
			first, second := a, b
			if second.Interval.Start.Before(first.Interval.Start) ||
				(second.Interval.Start.Equal(first.Interval.Start) && second.JobID < first.JobID) {
				first, second = second, first
			}
			o := second
			conflicts = append(conflicts, Conflict{
				Kind:       KindOverlap,
				WorkerID:   a.WorkerID,
				Assignment: first,
				Other:      &o,
			})
		}
	}

	sortCanonical(conflicts)
	return conflicts
}

// sortCanonical orders conflicts for display: by the offending assignment's
// start, then worker ID, then kind (availability before overlap), then the
// other assignment's start.
func sortCanonical(conflicts []Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if !a.Assignment.Interval.Start.Equal(b.Assignment.Interval.Start) {
			return a.Assignment.Interval.Start.Before(b.Assignment.Interval.Start)
		}
		if a.WorkerID != b.WorkerID {
			return a.WorkerID < b.WorkerID
		}
		if a.Kind != b.Kind {
			return a.Kind == KindAvailability
		}
		if a.Other != nil && b.Other != nil {
			return a.Other.Interval.Start.Before(b.Other.Interval.Start)
		}
		return false
	})
}
