package api

import (
	"context"

	"github.com/synapsehq/synapse-mcp/internal/domain/message"
)

// ListMessages fetches the full chronological message list for a team.
func (c *Client) ListMessages(ctx context.Context, teamID string) ([]message.Message, error) {
	var messages []message.Message
	if err := c.get(ctx, "/messages/"+teamID, &messages); err != nil {
		return nil, err
	}
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return nil, &DecodeError{Entity: "message", Err: err}
		}
	}
	return messages, nil
}

// SendMessage posts a new chat message and returns the server's record.
func (c *Client) SendMessage(ctx context.Context, req message.CreateRequest) (message.Message, error) {
	if req.Metadata == nil {
		req.Metadata = map[string]any{}
	}
	var created message.Message
	if err := c.post(ctx, "/messages/", req, &created); err != nil {
		return message.Message{}, err
	}
	if err := created.Validate(); err != nil {
		return message.Message{}, &DecodeError{Entity: "message", Err: err}
	}
	return created, nil
}
