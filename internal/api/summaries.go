package api

import (
	"context"

	"github.com/synapsehq/synapse-mcp/internal/domain/summary"
)

// ListSummaries fetches the generated summaries for a team.
func (c *Client) ListSummaries(ctx context.Context, teamID string) ([]summary.Summary, error) {
	var summaries []summary.Summary
	if err := c.get(ctx, "/summaries/team/"+teamID, &summaries); err != nil {
		return nil, err
	}
	for _, s := range summaries {
		if err := s.Validate(); err != nil {
			return nil, &DecodeError{Entity: "summary", Err: err}
		}
	}
	return summaries, nil
}

// GenerateSummary asks the backend to generate a new summary from recent
// messages. Generation is synchronous on the backend side and can take a
// while; callers should pass a context with an appropriate deadline.
func (c *Client) GenerateSummary(ctx context.Context, req summary.GenerateRequest) (summary.Summary, error) {
	var created summary.Summary
	if err := c.post(ctx, "/summaries/generate", req, &created); err != nil {
		return summary.Summary{}, err
	}
	if err := created.Validate(); err != nil {
		return summary.Summary{}, &DecodeError{Entity: "summary", Err: err}
	}
	return created, nil
}

// DeleteSummary removes a summary by ID.
func (c *Client) DeleteSummary(ctx context.Context, summaryID string) error {
	return c.delete(ctx, "/summaries/"+summaryID)
}
