package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// ListWorkers returns the full roster ordered by ID.
func (db *DB) ListWorkers(ctx context.Context) ([]schedule.Worker, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, name, skills
		FROM worker
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []schedule.Worker
	for rows.Next() {
		var w schedule.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Skills); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}
	return workers, nil
}

// ListAvailabilityWindows returns every availability window overlapping the
// week, grouped by worker and day.
func (db *DB) ListAvailabilityWindows(ctx context.Context, week schedule.Interval) (map[string]map[string][]schedule.Interval, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT worker_id, window_start, window_end
		FROM availability_window
		WHERE window_start < $2 AND window_end > $1
		ORDER BY worker_id, window_start
	`, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability windows: %w", err)
	}
	defer rows.Close()

	windows := make(map[string]map[string][]schedule.Interval)
	for rows.Next() {
		var workerID string
		var start, end time.Time
		if err := rows.Scan(&workerID, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan availability window: %w", err)
		}
		iv := schedule.Interval{Start: start, End: end}
		if windows[workerID] == nil {
			windows[workerID] = make(map[string][]schedule.Interval)
		}
		day := iv.Day()
		windows[workerID][day] = append(windows[workerID][day], iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability windows: %w", err)
	}
	return windows, nil
}

// GetJob fetches one job descriptor.
func (db *DB) GetJob(ctx context.Context, id string) (schedule.Job, error) {
	var job schedule.Job
	var durationMinutes int
	err := db.pool.QueryRow(ctx, `
		SELECT id, description, required_skills, duration_minutes, earliest_start, latest_finish
		FROM job
		WHERE id = $1
	`, id).Scan(&job.ID, &job.Description, &job.RequiredSkills, &durationMinutes,
		&job.EarliestStart, &job.LatestFinish)
	if errors.Is(err, pgx.ErrNoRows) {
		return schedule.Job{}, fmt.Errorf("job %s: %w", id, schedule.ErrNotFound)
	}
	if err != nil {
		return schedule.Job{}, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	job.Duration = time.Duration(durationMinutes) * time.Minute
	return job, nil
}

// ListUnscheduledJobs returns jobs overlapping the week that have no
// committed assignment.
func (db *DB) ListUnscheduledJobs(ctx context.Context, week schedule.Interval) ([]schedule.Job, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT j.id, j.description, j.required_skills, j.duration_minutes, j.earliest_start, j.latest_finish
		FROM job j
		LEFT JOIN assignment a ON a.job_id = j.id
		WHERE a.id IS NULL
		  AND j.earliest_start < $2 AND j.latest_finish > $1
		ORDER BY j.id
	`, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query unscheduled jobs: %w", err)
	}
	defer rows.Close()

	var jobs []schedule.Job
	for rows.Next() {
		var job schedule.Job
		var durationMinutes int
		if err := rows.Scan(&job.ID, &job.Description, &job.RequiredSkills, &durationMinutes,
			&job.EarliestStart, &job.LatestFinish); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.Duration = time.Duration(durationMinutes) * time.Minute
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jobs: %w", err)
	}
	return jobs, nil
}

// ListAssignments returns committed assignments overlapping the week.
func (db *DB) ListAssignments(ctx context.Context, week schedule.Interval) ([]schedule.Assignment, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, job_id, worker_id, start_at, end_at
		FROM assignment
		WHERE start_at < $2 AND end_at > $1
		ORDER BY worker_id, start_at
	`, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []schedule.Assignment
	for rows.Next() {
		var a schedule.Assignment
		if err := rows.Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Interval.Start, &a.Interval.End); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}

// InsertAssignment durably records a committed assignment.
func (db *DB) InsertAssignment(ctx context.Context, a schedule.Assignment) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO assignment (id, job_id, worker_id, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.JobID, a.WorkerID, a.Interval.Start, a.Interval.End)
	if err != nil {
		return fmt.Errorf("failed to insert assignment %s: %w", a.ID, err)
	}
	return nil
}
