package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// OfflineAdvisor builds the briefing from the recommendation reasons alone.
// It is the default when no API key is configured and the output is
// deterministic for a given input.
type OfflineAdvisor struct{}

func (OfflineAdvisor) Narrate(_ context.Context, job schedule.Job, recs []schedule.Recommendation) (string, error) {
	if len(recs) == 0 {
		return fmt.Sprintf("No feasible placement for job %s within its window. Widen the window, relax required skills, or add availability.", job.ID), nil
	}

	var sb strings.Builder
	top := recs[0]
	fmt.Fprintf(&sb, "Assign job %s to worker %s, %s to %s.\n",
		job.ID,
		top.Assignment.WorkerID,
		top.Assignment.Interval.Start.Format("Mon 15:04"),
		top.Assignment.Interval.End.Format("Mon 15:04"))
	for _, reason := range top.Reasons {
		fmt.Fprintf(&sb, "- %s\n", reason)
	}

	if len(recs) > 1 {
		next := recs[1]
		fmt.Fprintf(&sb, "Runner-up: worker %s at %s (score %.3f vs %.3f).\n",
			next.Assignment.WorkerID,
			next.Assignment.Interval.Start.Format("Mon 15:04"),
			next.Score,
			top.Score)
	}
	return strings.TrimSpace(sb.String()), nil
}
