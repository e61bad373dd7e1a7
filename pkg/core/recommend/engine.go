// Package recommend ranks candidate (worker, slot) assignments for
// unscheduled jobs against availability and existing assignments.
package recommend

import (
	"sort"

	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// Engine produces ranked assignment recommendations. An Engine is immutable
// after construction and safe for concurrent use: every call reads only the
// snapshots passed in.
type Engine struct {
	weights Weights
}

// NewEngine creates an engine with the given scoring weights.
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Recommend returns candidate assignments for the job over the week range,
// best first. An empty result means no candidate satisfies the constraints;
// that is a normal outcome, not an error. The ordering is fully
// deterministic for a given snapshot: candidates are generated worker by
// worker (ascending ID), day by day, gap by gap, and sorted by score with a
// stable sort so ties keep generation order.
func (e *Engine) Recommend(job schedule.Job, store *availability.Store, existing []schedule.Assignment, week schedule.Interval) ([]schedule.Recommendation, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	envelope, ok := week.Clip(job.Envelope())
	if !ok {
		return nil, nil
	}

	var recs []schedule.Recommendation
	for _, worker := range store.Workers() {
		if !worker.HasSkills(job.RequiredSkills) {
			continue
		}

		busy := assignmentsFor(worker.ID, existing)
		load := weekLoad(busy, week)

		for _, day := range week.Days() {
			windows, err := store.Windows(worker.ID, day)
			if err != nil {
				return nil, err
			}
			for _, window := range windows {
				usable, ok := window.Clip(envelope)
				if !ok {
					continue
				}
				for _, gap := range subtract(usable, busy) {
					if gap.Duration() < job.Duration {
						continue
					}
					// Earliest-fit: the candidate starts at the gap's start.
					candidate := schedule.Assignment{
						JobID:    job.ID,
						WorkerID: worker.ID,
						Interval: schedule.Interval{Start: gap.Start, End: gap.Start.Add(job.Duration)},
					}
					score, reasons := e.score(job, candidate, gap, load)
					recs = append(recs, schedule.Recommendation{
						Assignment: candidate,
						Score:      score,
						Reasons:    reasons,
					})
				}
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	return recs, nil
}

// score computes the weighted sum of the three scorers, each in [0, 1], and
// the rationale tags ordered by their weighted contribution.
func (e *Engine) score(job schedule.Job, candidate schedule.Assignment, gap schedule.Interval, load int) (float64, []string) {
	fit := float64(job.Duration) / float64(gap.Duration())

	earliness := 1.0
	latestStart := job.LatestFinish.Add(-job.Duration)
	if slack := latestStart.Sub(job.EarliestStart); slack > 0 {
		offset := candidate.Interval.Start.Sub(job.EarliestStart)
		earliness = 1.0 - float64(offset)/float64(slack)
		if earliness < 0 {
			earliness = 0
		}
	}

	balance := 1.0 / float64(1+load)

	type contribution struct {
		tag   string
		value float64
	}
	fitTag := "fills gap"
	if fit >= 0.999 {
		fitTag = "exact fit"
	} else if fit >= 0.75 {
		fitTag = "tight fit"
	}
	contributions := []contribution{
		{fitTag, fit * e.weights.Fit},
		{"early start", earliness * e.weights.Earliness},
		{"light load", balance * e.weights.Balance},
	}
	sort.SliceStable(contributions, func(i, j int) bool { return contributions[i].value > contributions[j].value })

	total := 0.0
	reasons := make([]string, 0, len(contributions)+1)
	for _, c := range contributions {
		total += c.value
		reasons = append(reasons, c.tag)
	}
	if len(job.RequiredSkills) > 0 {
		reasons = append(reasons, "skill match")
	}
	return total, reasons
}

// assignmentsFor filters the existing set down to one worker, ordered by
// start time.
func assignmentsFor(workerID string, existing []schedule.Assignment) []schedule.Interval {
	var busy []schedule.Interval
	for _, a := range existing {
		if a.WorkerID == workerID {
			busy = append(busy, a.Interval)
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	return busy
}

// weekLoad counts busy intervals overlapping the week.
func weekLoad(busy []schedule.Interval, week schedule.Interval) int {
	count := 0
	for _, iv := range busy {
		if iv.Overlaps(week) {
			count++
		}
	}
	return count
}

// subtract removes the busy intervals from the window, returning the free
// sub-intervals in ascending order.
func subtract(window schedule.Interval, busy []schedule.Interval) []schedule.Interval {
	free := []schedule.Interval{window}
	for _, b := range busy {
		var next []schedule.Interval
		for _, f := range free {
			if !f.Overlaps(b) {
				next = append(next, f)
				continue
			}
			if b.Start.After(f.Start) {
				next = append(next, schedule.Interval{Start: f.Start, End: b.Start})
			}
			if b.End.Before(f.End) {
				next = append(next, schedule.Interval{Start: b.End, End: f.End})
			}
		}
		free = next
	}
	return free
}
