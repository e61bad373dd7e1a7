package schedule

import "errors"

var (
	// ErrInvalidRange is returned when a coordinate space or time range has
	// an end that is not after its start.
	ErrInvalidRange = errors.New("invalid time range: end must be after start")

	// ErrInvalidJob is returned when a job's scheduling envelope is malformed.
	ErrInvalidJob = errors.New("invalid job: duration must be positive and earliest start must precede latest finish")

	// ErrNotFound is returned when a worker reference cannot be resolved.
	ErrNotFound = errors.New("worker not found")
)
