package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldservehq/crewplan/pkg/core/services"
)

// PlanWeekCmd creates the planWeek command
func PlanWeekCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planWeek",
		Short: "Place every unscheduled job that fits the week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weekFlag, _ := cmd.Flags().GetString("week")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			week, err := weekFromFlag(weekFlag)
			if err != nil {
				return err
			}

			result, err := services.PlanWeek(app.Ctx, app.Database, app.Logger, app.Engine, week, dryRun)
			if err != nil {
				return err
			}

			header := fmt.Sprintf("Week of %s", week.Start.Format("2006-01-02"))
			if dryRun {
				header += " (dry run)"
			}
			fmt.Println(titleStyle.Render(header))

			for _, planned := range result.Placed {
				a := planned.Recommendation.Assignment
				fmt.Printf("%s job %s -> worker %s  %s - %s\n",
					successStyle.Render("✓"),
					planned.Job.ID,
					a.WorkerID,
					a.Interval.Start.Format("Mon 15:04"),
					a.Interval.End.Format("Mon 15:04"))
			}
			for _, job := range result.Unplaced {
				fmt.Printf("%s job %s could not be placed\n", errorStyle.Render("✗"), job.ID)
			}

			fmt.Println()
			summary := fmt.Sprintf("%d placed, %d unplaced", len(result.Placed), len(result.Unplaced))
			if result.Committed {
				summary += ", saved"
			} else {
				summary += ", nothing saved"
			}
			fmt.Println(dimStyle.Render(summary))

			return nil
		},
	}

	cmd.Flags().String("week", "", "Week to plan (any date in the week, YYYY-MM-DD)")
	cmd.Flags().Bool("dry-run", false, "Plan without saving to database")

	return cmd
}
