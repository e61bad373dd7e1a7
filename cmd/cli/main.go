package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldservehq/crewplan/cmd/cli/commands"
	"github.com/fieldservehq/crewplan/internal/advisor"
	"github.com/fieldservehq/crewplan/internal/config"
	"github.com/fieldservehq/crewplan/pkg/core/availability"
	"github.com/fieldservehq/crewplan/pkg/core/recommend"
	"github.com/fieldservehq/crewplan/pkg/core/services"
	"github.com/fieldservehq/crewplan/pkg/postgres"
	"github.com/fieldservehq/crewplan/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
	pg      *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewplan",
		Short: "CrewPlan - weekly field-service planning",
		Long:  `A CLI for planning a field-service crew's week: rank candidate assignments, batch-plan unscheduled jobs, audit conflicts, and render the schedule timeline.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pg != nil {
				pg.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name (prefixes log files)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.ListWorkersCmd(app))
	rootCmd.AddCommand(commands.RecommendCmd(app))
	rootCmd.AddCommand(commands.PlanWeekCmd(app))
	rootCmd.AddCommand(commands.CommitCmd(app))
	rootCmd.AddCommand(commands.ConflictsCmd(app))
	rootCmd.AddCommand(commands.TimelineCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, engine, and advisor. The shared
// AppContext is allocated up front so command constructors can capture it
// before it is populated.
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	pg, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pg.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = pg
	app.Logger.Info("Database initialized successfully")

	if len(app.Cfg.AvailabilityTemplates) > 0 {
		templates := make([]availability.Template, 0, len(app.Cfg.AvailabilityTemplates))
		for _, tpl := range app.Cfg.AvailabilityTemplates {
			templates = append(templates, availability.Template{
				WorkerID:    tpl.Worker,
				RRule:       tpl.RRule,
				WindowStart: tpl.WindowStart,
				WindowEnd:   tpl.WindowEnd,
			})
		}
		app.Database = services.NewTemplateStore(app.Database, templates)
		app.Logger.Debug("Availability templates enabled", zap.Int("templates", len(templates)))
	}

	app.Engine = recommend.NewEngine(recommend.Weights{
		Fit:       app.Cfg.Recommend.FitWeight,
		Earliness: app.Cfg.Recommend.EarlinessWeight,
		Balance:   app.Cfg.Recommend.BalanceWeight,
	})

	if app.Cfg.Advisor.Enabled {
		app.Advisor = advisor.New(os.Getenv("OPENAI_API_KEY"), app.Cfg.Advisor.Model)
	} else {
		app.Advisor = advisor.OfflineAdvisor{}
	}

	return nil
}

func init() {
	app = &commands.AppContext{}
}
