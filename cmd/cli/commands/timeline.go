package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldservehq/crewplan/pkg/core/services"
	"github.com/fieldservehq/crewplan/pkg/core/timeline"
)

// TimelineCmd creates the timeline command
func TimelineCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Render the week's schedule as a per-worker timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weekFlag, _ := cmd.Flags().GetString("week")
			view, _ := cmd.Flags().GetString("view")
			width, _ := cmd.Flags().GetFloat64("width")

			week, err := weekFromFlag(weekFlag)
			if err != nil {
				return err
			}

			if view == "" {
				view = app.Cfg.Timeline.InitialView
			}
			granularity := timeline.Granularity(view)
			if granularity != timeline.GranularityDay && granularity != timeline.GranularityWeek {
				return fmt.Errorf("view must be %q or %q", timeline.GranularityDay, timeline.GranularityWeek)
			}
			if width <= 0 {
				width = app.Cfg.Timeline.PixelWidth
			}

			controller := timeline.NewController(granularity, week.Start, width, app.Cfg.Timeline.RowHeight)
			vm, err := services.BuildTimeline(app.Ctx, app.Database, app.Logger, controller, week)
			if err != nil {
				return err
			}

			fmt.Println(renderTimeline(vm))
			return nil
		},
	}

	cmd.Flags().String("week", "", "Week to render (any date in the week, YYYY-MM-DD)")
	cmd.Flags().String("view", "", "Granularity: day or week (default from config)")
	cmd.Flags().Float64("width", 0, "Timeline width in columns (default from config)")

	return cmd
}

// renderTimeline draws the view model as fixed-width text: a tick header,
// then one strip per worker with assignment blocks laid out by their
// computed positions. Blocks on rows with conflicts are drawn in the
// conflict style.
func renderTimeline(vm timeline.ViewModel) string {
	width := int(vm.Space.PixelWidth)
	var sb strings.Builder

	r := vm.Space.Range()
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s - %s",
		r.Start.Format("Mon 02 Jan"), r.End.Format("Mon 02 Jan"))))
	sb.WriteByte('\n')

	// Day boundary header.
	header := make([]byte, width)
	for i := range header {
		header[i] = ' '
	}
	for _, tick := range vm.DayTicks {
		x := int(tick.X)
		label := tick.Day[5:] // MM-DD
		for i := 0; i < len(label) && x+i < width; i++ {
			header[x+i] = label[i]
		}
	}
	sb.WriteString(dimStyle.Render(string(header)))
	sb.WriteByte('\n')

	for _, row := range vm.Rows {
		sb.WriteString(fmt.Sprintf("%-12.12s ", row.Name))
		sb.WriteString(renderRow(row, width))
		sb.WriteByte('\n')
		if len(row.Conflicts) > 0 {
			for _, c := range row.Conflicts {
				sb.WriteString(errorStyle.Render(fmt.Sprintf("%13s! %s", "", c)))
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}

func renderRow(row timeline.WorkerRow, width int) string {
	strip := make([]byte, width)
	for i := range strip {
		strip[i] = '.'
	}
	for _, block := range row.Blocks {
		from := int(block.Rect.X)
		to := int(block.Rect.X + block.Rect.Width)
		if to <= from {
			to = from + 1 // short assignments still get one cell
		}
		// Blocks straddling the range edges are clamped to the strip.
		if from < 0 {
			from = 0
		}
		label := block.JobID
		for i := from; i < to && i < width; i++ {
			ch := byte('#')
			if i-from < len(label) {
				ch = label[i-from]
			}
			strip[i] = ch
		}
	}

	style := blockStyle
	if len(row.Conflicts) > 0 {
		style = conflictBlockStyle
	}

	// Style only the filled cells so the idle track stays dim.
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if strip[i] == '.' {
			sb.WriteByte('.')
		} else {
			sb.WriteString(style.Render(string(strip[i])))
		}
	}
	return sb.String()
}
