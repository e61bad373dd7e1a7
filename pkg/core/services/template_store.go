package services

import (
	"context"
	"fmt"

	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
	"github.com/fieldservehq/crewplan/pkg/db"
)

// TemplateStore decorates a database with recurring availability templates
// from configuration. Template windows for the requested range are expanded
// and merged with the stored windows; the availability store's
// normalization collapses any overlap between the two sources.
type TemplateStore struct {
	db.Database
	templates []availability.Template
}

func NewTemplateStore(base db.Database, templates []availability.Template) *TemplateStore {
	return &TemplateStore{Database: base, templates: templates}
}

func (s *TemplateStore) ListAvailabilityWindows(ctx context.Context, week schedule.Interval) (map[string]map[string][]schedule.Interval, error) {
	windows, err := s.Database.ListAvailabilityWindows(ctx, week)
	if err != nil {
		return nil, err
	}

	expanded, err := availability.ExpandTemplates(s.templates, week)
	if err != nil {
		return nil, fmt.Errorf("failed to expand availability templates: %w", err)
	}

	// Merge into a fresh map; the wrapped store keeps ownership of its own.
	merged := make(map[string]map[string][]schedule.Interval, len(windows))
	for workerID, byDay := range windows {
		dst := make(map[string][]schedule.Interval, len(byDay))
		for day, ivs := range byDay {
			dst[day] = append([]schedule.Interval(nil), ivs...)
		}
		merged[workerID] = dst
	}

	for workerID, byDay := range expanded {
		if merged[workerID] == nil {
			merged[workerID] = make(map[string][]schedule.Interval)
		}
		for day, ivs := range byDay {
			merged[workerID][day] = append(merged[workerID][day], ivs...)
		}
	}
	return merged, nil
}
