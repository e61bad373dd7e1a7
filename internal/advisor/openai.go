package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fieldservehq/crewplan/pkg/core/schedule"
)

const defaultModel = "gpt-4o-mini"

// Chat request/response structs for OpenAI's /v1/chat/completions.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = `You are a concise field-service dispatch assistant.

Given a job and its ranked candidate assignments, you must:

1) Recommend the top candidate in 1-2 sentences, naming the worker and start time.
2) Note in one sentence what separates it from the runner-up, if there is one.
3) Flag anything the dispatcher should double-check before committing.

Return plain text, no JSON, no markdown headings. Use bullets with a simple dash "-".`

// OpenAIAdvisor narrates recommendations via the chat completions API.
type OpenAIAdvisor struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

func NewOpenAIAdvisor(apiKey, model string) *OpenAIAdvisor {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIAdvisor{
		apiKey: apiKey,
		model:  model,
		url:    "https://api.openai.com/v1/chat/completions",
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

func (a *OpenAIAdvisor) Narrate(ctx context.Context, job schedule.Job, recs []schedule.Recommendation) (string, error) {
	if len(recs) == 0 {
		return OfflineAdvisor{}.Narrate(ctx, job, recs)
	}

	reqBody := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: describe(job, recs)},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call OpenAI: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("OpenAI HTTP %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode OpenAI response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// describe serializes the job and its top candidates into the user prompt.
// At most five candidates are sent.
func describe(job schedule.Job, recs []schedule.Recommendation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Job %s: %s\n", job.ID, job.Description)
	fmt.Fprintf(&sb, "Duration: %s\n", job.Duration)
	if len(job.RequiredSkills) > 0 {
		fmt.Fprintf(&sb, "Required skills: %s\n", strings.Join(job.RequiredSkills, ", "))
	}
	fmt.Fprintf(&sb, "Window: %s to %s\n\nCandidates:\n",
		job.EarliestStart.Format(time.RFC1123), job.LatestFinish.Format(time.RFC1123))

	limit := len(recs)
	if limit > 5 {
		limit = 5
	}
	for i, rec := range recs[:limit] {
		fmt.Fprintf(&sb, "%d. Worker %s, %s to %s, score %.3f (%s)\n",
			i+1,
			rec.Assignment.WorkerID,
			rec.Assignment.Interval.Start.Format(time.RFC1123),
			rec.Assignment.Interval.End.Format(time.RFC1123),
			rec.Score,
			strings.Join(rec.Reasons, ", "))
	}
	return sb.String()
}
