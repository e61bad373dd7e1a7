package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fieldservehq/crewplan/internal/advisor"
	"github.com/fieldservehq/crewplan/internal/config"
	"github.com/fieldservehq/crewplan/pkg/core/recommend"
	"github.com/fieldservehq/crewplan/pkg/core/schedule"
	"github.com/fieldservehq/crewplan/pkg/core/services"
	"github.com/fieldservehq/crewplan/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Engine   *recommend.Engine
	Advisor  advisor.Advisor
	Logger   *zap.Logger
	Ctx      context.Context
}

// weekFromFlag resolves the --week flag into a Monday-anchored horizon.
// An empty value means the current week.
func weekFromFlag(value string) (schedule.Interval, error) {
	if value == "" {
		return services.WeekOf(time.Now()), nil
	}
	day, err := time.Parse(schedule.DayLayout, value)
	if err != nil {
		return schedule.Interval{}, fmt.Errorf("week must be a %s date: %w", schedule.DayLayout, err)
	}
	return services.WeekOf(day), nil
}
