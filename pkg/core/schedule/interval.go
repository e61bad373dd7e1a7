package schedule

import (
	"fmt"
	"time"
)

// DayLayout is the date format used to key availability windows and
// assignments to a calendar day.
const DayLayout = "2006-01-02"

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval, rejecting inverted or empty ranges.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: start=%s end=%s", ErrInvalidRange, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals overlap.
// Touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies fully within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// ContainsInstant reports whether t falls inside the half-open interval.
func (iv Interval) ContainsInstant(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Clip returns the intersection of two intervals. The second return value
// is false when the intervals do not overlap.
func (iv Interval) Clip(other Interval) (Interval, bool) {
	start := iv.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := iv.End
	if other.End.Before(end) {
		end = other.End
	}
	if !end.After(start) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Day returns the calendar day key of the interval's start.
func (iv Interval) Day() string {
	return iv.Start.Format(DayLayout)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// DayOf returns the calendar day key for an instant.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// Days returns the day keys covered by the interval, in order. A day is
// covered if any part of it intersects the interval.
func (iv Interval) Days() []string {
	var days []string
	day := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 0, 0, 0, 0, iv.Start.Location())
	for day.Before(iv.End) {
		days = append(days, day.Format(DayLayout))
		day = day.AddDate(0, 0, 1)
	}
	return days
}
