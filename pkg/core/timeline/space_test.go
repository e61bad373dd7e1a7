package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

func monday(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func TestNewSpace_InvalidRange(t *testing.T) {
	mon := monday(t)

	_, err := NewSpace(mon, mon, 1440)
	assert.ErrorIs(t, err, schedule.ErrInvalidRange)

	_, err = NewSpace(mon, mon.Add(-time.Hour), 1440)
	assert.ErrorIs(t, err, schedule.ErrInvalidRange)

	_, err = NewSpace(mon, mon.Add(24*time.Hour), 0)
	assert.ErrorIs(t, err, schedule.ErrInvalidRange)
}

func TestSpace_TimeToPosition_MidnightToNoon(t *testing.T) {
	// Mon 00:00..Mon 24:00 over 1440px: noon maps to 720.
	mon := monday(t)
	space, err := NewSpace(mon, mon.Add(24*time.Hour), 1440)
	require.NoError(t, err)

	assert.InDelta(t, 720, space.TimeToPosition(mon.Add(12*time.Hour)), 1e-9)
	assert.InDelta(t, 0, space.TimeToPosition(mon), 1e-9)
	assert.InDelta(t, 1440, space.TimeToPosition(mon.Add(24*time.Hour)), 1e-9)
}

func TestSpace_RoundTrip(t *testing.T) {
	mon := monday(t)
	space, err := NewSpace(mon, mon.AddDate(0, 0, 7), 1280)
	require.NoError(t, err)

	instants := []time.Time{
		mon,
		mon.Add(90 * time.Minute),
		mon.Add(3*24*time.Hour + 17*time.Minute),
		mon.AddDate(0, 0, 7).Add(-time.Minute),
	}
	for _, instant := range instants {
		back := space.PositionToTime(space.TimeToPosition(instant))
		assert.WithinDuration(t, instant, back, time.Millisecond)
	}
}

func TestSpace_StableUnderReconstruction(t *testing.T) {
	mon := monday(t)

	a, err := NewSpace(mon, mon.AddDate(0, 0, 7), 1024)
	require.NoError(t, err)
	b, err := NewSpace(mon, mon.AddDate(0, 0, 7), 1024)
	require.NoError(t, err)

	instant := mon.Add(36 * time.Hour)
	assert.Equal(t, a.TimeToPosition(instant), b.TimeToPosition(instant))
	assert.Equal(t, a, b)
}

func TestSpace_IntervalToRect(t *testing.T) {
	mon := monday(t)
	space, err := NewSpace(mon, mon.Add(24*time.Hour), 1440)
	require.NoError(t, err)

	rect := space.IntervalToRect(schedule.Interval{
		Start: mon.Add(9 * time.Hour),
		End:   mon.Add(11 * time.Hour),
	}, 2, 30)

	assert.InDelta(t, 540, rect.X, 1e-9)
	assert.InDelta(t, 60, rect.Y, 1e-9)
	assert.InDelta(t, 120, rect.Width, 1e-9)
	assert.InDelta(t, 30, rect.Height, 1e-9)
}
