package availability

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// ClockLayout is the format for template window times of day.
const ClockLayout = "15:04"

// Template describes a recurring weekly availability pattern for a worker,
// e.g. every Monday, Wednesday and Friday from 09:00 to 17:00.
type Template struct {
	WorkerID string

	// RRule is an RFC 5545 recurrence rule selecting the days the window
	// applies to, e.g. "FREQ=WEEKLY;BYDAY=MO,WE,FR".
	RRule string

	// WindowStart and WindowEnd are times of day in ClockLayout format.
	WindowStart string
	WindowEnd   string
}

// ExpandTemplates materializes recurring templates into concrete dated
// windows over the given range. Windows from multiple templates for the same
// worker/day are merged by the store's normalization on construction.
func ExpandTemplates(templates []Template, over schedule.Interval) (map[string]map[string][]schedule.Interval, error) {
	windows := make(map[string]map[string][]schedule.Interval)

	for i, tpl := range templates {
		startClock, err := time.Parse(ClockLayout, tpl.WindowStart)
		if err != nil {
			return nil, fmt.Errorf("template %d: bad window start %q: %w", i, tpl.WindowStart, err)
		}
		endClock, err := time.Parse(ClockLayout, tpl.WindowEnd)
		if err != nil {
			return nil, fmt.Errorf("template %d: bad window end %q: %w", i, tpl.WindowEnd, err)
		}

		rule, err := rrule.StrToRRule(tpl.RRule)
		if err != nil {
			return nil, fmt.Errorf("template %d: bad rrule %q: %w", i, tpl.RRule, err)
		}
		rule.DTStart(over.Start)

		for _, occurrence := range rule.Between(over.Start.Add(-24*time.Hour), over.End, true) {
			day := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(), 0, 0, 0, 0, over.Start.Location())
			window := schedule.Interval{
				Start: day.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute),
				End:   day.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute),
			}
			if !window.End.After(window.Start) {
				return nil, fmt.Errorf("template %d: window %s..%s is empty", i, tpl.WindowStart, tpl.WindowEnd)
			}
			if !window.Overlaps(over) {
				continue
			}

			if windows[tpl.WorkerID] == nil {
				windows[tpl.WorkerID] = make(map[string][]schedule.Interval)
			}
			key := window.Day()
			windows[tpl.WorkerID][key] = append(windows[tpl.WorkerID][key], window)
		}
	}

	return windows, nil
}
