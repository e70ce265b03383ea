package api

import (
	"context"

	"github.com/synapsehq/synapse-mcp/internal/domain/team"
)

// ListTeams fetches every team the authenticated user belongs to.
func (c *Client) ListTeams(ctx context.Context) ([]team.Team, error) {
	var teams []team.Team
	if err := c.get(ctx, "/teams/", &teams); err != nil {
		return nil, err
	}
	for _, t := range teams {
		if err := t.Validate(); err != nil {
			return nil, &DecodeError{Entity: "team", Err: err}
		}
	}
	return teams, nil
}
