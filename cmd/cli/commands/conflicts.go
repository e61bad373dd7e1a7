package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldservehq/crewplan/pkg/core/services"
)

// ConflictsCmd creates the conflicts command
func ConflictsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Audit the week's schedule for overlaps and availability breaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weekFlag, _ := cmd.Flags().GetString("week")
			week, err := weekFromFlag(weekFlag)
			if err != nil {
				return err
			}

			conflicts, err := services.FindWeekConflicts(app.Ctx, app.Database, app.Logger, week)
			if err != nil {
				return err
			}

			if len(conflicts) == 0 {
				fmt.Println(successStyle.Render("Schedule is clean."))
				return nil
			}

			fmt.Println(errorStyle.Render(fmt.Sprintf("%d conflicts:", len(conflicts))))
			for _, c := range conflicts {
				fmt.Printf("  - %s\n", c)
			}
			return nil
		},
	}

	cmd.Flags().String("week", "", "Week to audit (any date in the week, YYYY-MM-DD)")

	return cmd
}
