package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListWorkersCmd creates the listWorkers command
func ListWorkersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listWorkers",
		Short: "List the worker roster with skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := app.Database.ListWorkers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list workers: %w", err)
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("Found %d workers", len(workers))))
			for _, w := range workers {
				skills := dimStyle.Render("(no skills recorded)")
				if len(w.Skills) > 0 {
					skills = strings.Join(w.Skills, ", ")
				}
				fmt.Printf("- %s (%s) - %s\n", w.Name, w.ID, skills)
			}

			return nil
		},
	}
}
