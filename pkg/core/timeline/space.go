// Package timeline maps time-based entities onto a 2-D visual timeline and
// assembles the renderable structure for daily and weekly views.
package timeline

import (
	"fmt"
	"time"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// Space is an immutable coordinate space for one render pass. It is
// recreated whenever the visible range or container width changes, never
// mutated in place.
type Space struct {
	RangeStart time.Time
	RangeEnd   time.Time
	PixelWidth float64
}

// NewSpace validates and builds a coordinate space.
func NewSpace(rangeStart, rangeEnd time.Time, pixelWidth float64) (Space, error) {
	if !rangeEnd.After(rangeStart) {
		return Space{}, fmt.Errorf("%w: range %s..%s", schedule.ErrInvalidRange,
			rangeStart.Format(time.RFC3339), rangeEnd.Format(time.RFC3339))
	}
	if pixelWidth <= 0 {
		return Space{}, fmt.Errorf("%w: pixel width %v", schedule.ErrInvalidRange, pixelWidth)
	}
	return Space{RangeStart: rangeStart, RangeEnd: rangeEnd, PixelWidth: pixelWidth}, nil
}

// Range returns the visible range as an interval.
func (s Space) Range() schedule.Interval {
	return schedule.Interval{Start: s.RangeStart, End: s.RangeEnd}
}

// TimeToPosition maps an instant to a horizontal offset in pixels.
// Instants outside the range map proportionally beyond the edges.
func (s Space) TimeToPosition(t time.Time) float64 {
	total := float64(s.RangeEnd.Sub(s.RangeStart))
	return float64(t.Sub(s.RangeStart)) / total * s.PixelWidth
}

// PositionToTime is the exact inverse of TimeToPosition within
// floating-point tolerance.
func (s Space) PositionToTime(px float64) time.Time {
	total := float64(s.RangeEnd.Sub(s.RangeStart))
	return s.RangeStart.Add(time.Duration(px / s.PixelWidth * total))
}

// Rect is a positioned block in the timeline plane.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IntervalToRect composes the point mapping with a fixed per-worker row
// height to position an interval as a block on the given row.
func (s Space) IntervalToRect(iv schedule.Interval, rowIndex int, rowHeight float64) Rect {
	x := s.TimeToPosition(iv.Start)
	return Rect{
		X:      x,
		Y:      float64(rowIndex) * rowHeight,
		Width:  s.TimeToPosition(iv.End) - x,
		Height: rowHeight,
	}
}
