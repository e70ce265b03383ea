package mcp

import "github.com/google/jsonschema-go/jsonschema"

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	if props == nil {
		props = map[string]*jsonschema.Schema{}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Teams
		{
			Name:        "list_teams",
			Description: "List the teams the authenticated user belongs to, refreshed from the backend",
			InputSchema: objectSchema(nil),
		},
		{
			Name:        "select_team",
			Description: "Select the active team; its messages, todos, and summaries start syncing immediately",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"team_id": {
					Type:        "string",
					Description: "Team identifier from list_teams",
				},
			}, "team_id"),
		},
		{
			Name:        "deselect_team",
			Description: "Clear the team selection and stop the per-team sync",
			InputSchema: objectSchema(nil),
		},

		// Messages
		{
			Name:        "list_messages",
			Description: "List the selected team's chat messages, oldest first",
			InputSchema: objectSchema(nil),
		},
		{
			Name:        "send_message",
			Description: "Send a chat message to the selected team. The message appears locally at once; delivery finishes in the background and a failure shows up in get_sync_status",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"content": {
					Type:        "string",
					Description: "Message text; leading and trailing whitespace is trimmed",
				},
			}, "content"),
		},

		// Todos
		{
			Name:        "list_todos",
			Description: "List the selected team's todos",
			InputSchema: objectSchema(nil),
		},
		{
			Name:        "create_todo",
			Description: "Create a todo for the selected team. It appears locally at once; creation finishes in the background",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"title": {
					Type:        "string",
					Description: "Todo title",
				},
				"description": {
					Type:        "string",
					Description: "Optional details",
				},
				"deadline": {
					Type:        "string",
					Description: "Optional RFC 3339 deadline, e.g. 2026-09-15T17:00:00Z",
				},
				"priority": {
					Type:        "string",
					Description: "Priority (defaults to medium)",
					Enum:        []any{"low", "medium", "high", "urgent"},
				},
				"status": {
					Type:        "string",
					Description: "Initial status (defaults to pending)",
					Enum:        []any{"pending", "in_progress", "completed", "cancelled"},
				},
				"assigned_user_emails": {
					Type:        "array",
					Description: "Emails of members to assign",
					Items:       &jsonschema.Schema{Type: "string"},
				},
			}, "title"),
		},
		{
			Name:        "delete_todo",
			Description: "Delete a todo by ID",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"todo_id": {
					Type:        "string",
					Description: "Todo identifier from list_todos",
				},
			}, "todo_id"),
		},

		// Summaries
		{
			Name:        "list_summaries",
			Description: "List the selected team's conversation summaries",
			InputSchema: objectSchema(nil),
		},
		{
			Name:        "generate_summary",
			Description: "Generate an AI summary of the selected team's recent conversation",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"message_count": {
					Type:        "integer",
					Description: "How many recent messages to include (0 lets the backend pick)",
				},
			}),
		},
		{
			Name:        "delete_summary",
			Description: "Delete a summary by ID",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"summary_id": {
					Type:        "string",
					Description: "Summary identifier from list_summaries",
				},
			}, "summary_id"),
		},

		// Assistant
		{
			Name:        "ask_assistant",
			Description: "Ask the team assistant a question, scoped to the selected team or 'general' when none is selected",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"message": {
					Type:        "string",
					Description: "Question text",
				},
				"use_rag": {
					Type:        "boolean",
					Description: "Ground the answer in the team's stored documents",
				},
			}, "message"),
		},
		{
			Name:        "get_assistant_history",
			Description: "Get the stored assistant conversation for the current project context",
			InputSchema: objectSchema(nil),
		},
		{
			Name:        "clear_assistant_history",
			Description: "Clear the stored assistant conversation for the current project context",
			InputSchema: objectSchema(nil),
		},

		// Diagnostics
		{
			Name:        "get_sync_status",
			Description: "Report the sync state of every resource: selected team, per-resource status, offline flag, and any pending send error",
			InputSchema: objectSchema(nil),
		},
	}
}
