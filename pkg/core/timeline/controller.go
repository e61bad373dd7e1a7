package timeline

import (
	"time"

	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// Controller is the two-state daily/weekly view machine. The only
// transition is an explicit Toggle; toggling recomputes the coordinate
// space for the new granularity and rebuilds the view model.
type Controller struct {
	granularity Granularity
	anchor      time.Time
	pixelWidth  float64
	rowHeight   float64
}

// NewController creates a controller anchored at the start of the visible
// range. The initial granularity is configuration-supplied.
func NewController(initial Granularity, anchor time.Time, pixelWidth, rowHeight float64) *Controller {
	if initial != GranularityDay {
		initial = GranularityWeek
	}
	return &Controller{
		granularity: initial,
		anchor:      anchor,
		pixelWidth:  pixelWidth,
		rowHeight:   rowHeight,
	}
}

// Granularity returns the current view granularity.
func (c *Controller) Granularity() Granularity {
	return c.granularity
}

// Toggle switches between the daily and weekly states.
func (c *Controller) Toggle() {
	if c.granularity == GranularityDay {
		c.granularity = GranularityWeek
	} else {
		c.granularity = GranularityDay
	}
}

// Space computes the coordinate space for the current granularity: one day
// from the anchor in daily view, seven in weekly view.
func (c *Controller) Space() (Space, error) {
	end := c.anchor.AddDate(0, 0, 7)
	if c.granularity == GranularityDay {
		end = c.anchor.AddDate(0, 0, 1)
	}
	return NewSpace(c.anchor, end, c.pixelWidth)
}

// Rebuild derives the view model at the current granularity.
func (c *Controller) Rebuild(workers []schedule.Worker, assignments []schedule.Assignment, store *availability.Store) (ViewModel, error) {
	space, err := c.Space()
	if err != nil {
		return ViewModel{}, err
	}
	return Build(workers, assignments, store, space, c.granularity, c.rowHeight), nil
}
