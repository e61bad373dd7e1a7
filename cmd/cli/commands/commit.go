package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
	"github.com/fieldservehq/crewplan/pkg/core/services"
)

const startLayout = "2006-01-02T15:04"

// CommitCmd creates the commit command
func CommitCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit <job_id> <worker_id> <start>",
		Short: "Commit an assignment after a final conflict check",
		Long: `Commit an assignment for a job, worker and start time. The end time comes
from the job's duration. The candidate is re-checked against the current
schedule first; a conflicting candidate is rejected and the conflicts shown.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, workerID := args[0], args[1]
			start, err := time.Parse(startLayout, args[2])
			if err != nil {
				return fmt.Errorf("start must be a %s timestamp: %w", startLayout, err)
			}

			job, err := app.Database.GetJob(app.Ctx, jobID)
			if err != nil {
				return fmt.Errorf("failed to fetch job: %w", err)
			}

			candidate := schedule.Assignment{
				JobID:    jobID,
				WorkerID: workerID,
				Interval: schedule.Interval{Start: start, End: start.Add(job.Duration)},
			}

			conflicts, err := services.CommitAssignment(
				app.Ctx, app.Database, app.Logger, candidate, services.WeekOf(start))
			if err != nil {
				return err
			}

			if len(conflicts) > 0 {
				fmt.Println(errorStyle.Render("Commit rejected:"))
				for _, c := range conflicts {
					fmt.Printf("  - %s\n", c)
				}
				return nil
			}

			fmt.Println(successStyle.Render(fmt.Sprintf(
				"Committed job %s to worker %s, %s - %s",
				jobID, workerID,
				candidate.Interval.Start.Format("Mon 15:04"),
				candidate.Interval.End.Format("Mon 15:04"))))
			return nil
		},
	}

	return cmd
}
