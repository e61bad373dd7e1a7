// Package advisor turns ranked recommendations into a short plain-text
// briefing a dispatcher can read before committing an assignment.
package advisor

import (
	"context"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

// Advisor narrates a job's ranked candidates.
type Advisor interface {
	Narrate(ctx context.Context, job schedule.Job, recs []schedule.Recommendation) (string, error)
}

// New returns an OpenAI-backed advisor when an API key is configured, and
// the offline narrator otherwise.
func New(apiKey, model string) Advisor {
	if apiKey == "" {
		return OfflineAdvisor{}
	}
	return NewOpenAIAdvisor(apiKey, model)
}
