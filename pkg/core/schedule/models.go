package schedule

import (
	"fmt"
	"time"
)

// Worker represents a field-service worker on the roster.
type Worker struct {
	ID     string
	Name   string
	Skills []string
}

// HasSkills reports whether the worker's skill set is a superset of required.
func (w Worker) HasSkills(required []string) bool {
	for _, need := range required {
		found := false
		for _, have := range w.Skills {
			if have == need {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Job is a unit of work to be placed on the week.
type Job struct {
	ID             string
	Description    string
	RequiredSkills []string
	Duration       time.Duration

	// EarliestStart and LatestFinish bound the scheduling envelope.
	EarliestStart time.Time
	LatestFinish  time.Time
}

// Envelope returns the job's scheduling envelope as an interval.
func (j Job) Envelope() Interval {
	return Interval{Start: j.EarliestStart, End: j.LatestFinish}
}

// Validate checks the scheduling envelope.
func (j Job) Validate() error {
	if j.Duration <= 0 {
		return fmt.Errorf("%w: job %s has duration %s", ErrInvalidJob, j.ID, j.Duration)
	}
	if !j.LatestFinish.After(j.EarliestStart) {
		return fmt.Errorf("%w: job %s envelope %s..%s", ErrInvalidJob, j.ID,
			j.EarliestStart.Format(time.RFC3339), j.LatestFinish.Format(time.RFC3339))
	}
	return nil
}

// Assignment binds a job to a worker over a concrete interval.
// End always equals Start + job duration.
type Assignment struct {
	ID       string
	JobID    string
	WorkerID string
	Interval Interval
}

// Recommendation is a scored, not-yet-committed candidate assignment.
type Recommendation struct {
	Assignment Assignment
	Score      float64

	// Reasons holds rationale tags ordered by their contribution to the score.
	Reasons []string
}
