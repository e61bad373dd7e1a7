package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldservehq/crewplan/pkg/core/services"
)

// RecommendCmd creates the recommend command
func RecommendCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <job_id>",
		Short: "Rank candidate assignments for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekFlag, _ := cmd.Flags().GetString("week")
			limit, _ := cmd.Flags().GetInt("limit")
			explain, _ := cmd.Flags().GetBool("explain")

			week, err := weekFromFlag(weekFlag)
			if err != nil {
				return err
			}

			result, err := services.RecommendJob(app.Ctx, app.Database, app.Logger, app.Engine, args[0], week)
			if err != nil {
				return err
			}

			if len(result.Recommendations) == 0 {
				fmt.Println(warningStyle.Render("No feasible placement for this job in the selected week."))
				return nil
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("Candidates for job %s", result.Job.ID)))
			shown := result.Recommendations
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for i, rec := range shown {
				line := fmt.Sprintf("%2d. worker %s  %s - %s  score %.3f",
					i+1,
					rec.Assignment.WorkerID,
					rec.Assignment.Interval.Start.Format("Mon 15:04"),
					rec.Assignment.Interval.End.Format("Mon 15:04"),
					rec.Score)
				if i == 0 {
					line = highlightStyle.Render(line)
				}
				fmt.Println(line)
				fmt.Println(dimStyle.Render("    " + strings.Join(rec.Reasons, ", ")))
			}

			if explain {
				briefing, err := app.Advisor.Narrate(app.Ctx, result.Job, result.Recommendations)
				if err != nil {
					return fmt.Errorf("failed to build briefing: %w", err)
				}
				fmt.Println()
				fmt.Println(briefing)
			}

			return nil
		},
	}

	cmd.Flags().String("week", "", "Week to schedule into (any date in the week, YYYY-MM-DD)")
	cmd.Flags().Int("limit", 5, "Maximum candidates to show")
	cmd.Flags().Bool("explain", false, "Add a dispatcher briefing for the ranking")

	return cmd
}
