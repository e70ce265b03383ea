package api

import (
	"context"
	"net/url"

	"github.com/synapsehq/synapse-mcp/internal/domain/assistant"
)

// AssistantChat sends a message to the AI assistant.
func (c *Client) AssistantChat(ctx context.Context, req assistant.ChatRequest) (assistant.ChatResponse, error) {
	var resp assistant.ChatResponse
	if err := c.post(ctx, "/api/assistant/chat", req, &resp); err != nil {
		return assistant.ChatResponse{}, err
	}
	return resp, nil
}

// AssistantHistory fetches the stored conversation for a project context.
func (c *Client) AssistantHistory(ctx context.Context, projectContext string) ([]assistant.HistoryEntry, error) {
	var history []assistant.HistoryEntry
	path := "/api/assistant/history?project_context=" + url.QueryEscape(projectContext)
	if err := c.get(ctx, path, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ClearAssistantHistory deletes the stored conversation for a project context.
func (c *Client) ClearAssistantHistory(ctx context.Context, projectContext string) error {
	path := "/api/assistant/clear-history?project_context=" + url.QueryEscape(projectContext)
	return c.post(ctx, path, nil, nil)
}
