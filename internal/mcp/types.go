package mcp

import (
	"time"

	"github.com/synapsehq/synapse-mcp/internal/domain/assistant"
	"github.com/synapsehq/synapse-mcp/internal/domain/message"
	"github.com/synapsehq/synapse-mcp/internal/domain/summary"
	"github.com/synapsehq/synapse-mcp/internal/domain/team"
	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
	"github.com/synapsehq/synapse-mcp/internal/sync"
)

// Tool parameter types

type SelectTeamParams struct {
	TeamID string `json:"team_id"`
}

type SendMessageParams struct {
	Content string `json:"content"`
}

type CreateTodoParams struct {
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Deadline           string   `json:"deadline,omitempty"`
	Priority           string   `json:"priority,omitempty"`
	Status             string   `json:"status,omitempty"`
	AssignedUserEmails []string `json:"assigned_user_emails,omitempty"`
}

type DeleteTodoParams struct {
	TodoID string `json:"todo_id"`
}

type GenerateSummaryParams struct {
	MessageCount int `json:"message_count,omitempty"`
}

type DeleteSummaryParams struct {
	SummaryID string `json:"summary_id"`
}

type AskAssistantParams struct {
	Message string `json:"message"`
	UseRAG  bool   `json:"use_rag,omitempty"`
}

// Tool response types

// SnapshotMeta describes the sync state a list response was served under.
// Agents should check offline before acting on the data.
type SnapshotMeta struct {
	Status    string     `json:"status"`
	Scope     string     `json:"scope,omitempty"`
	Offline   bool       `json:"offline"`
	Error     string     `json:"error,omitempty"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
}

func snapshotMeta[T any](snap sync.Snapshot[T]) SnapshotMeta {
	meta := SnapshotMeta{
		Status:  string(snap.Status),
		Scope:   snap.Scope,
		Offline: snap.Offline,
	}
	if snap.Err != nil {
		meta.Error = snap.Err.Error()
	}
	if !snap.FetchedAt.IsZero() {
		t := snap.FetchedAt
		meta.FetchedAt = &t
	}
	return meta
}

type TeamsResponse struct {
	Sync  SnapshotMeta `json:"sync"`
	Teams []team.Team  `json:"teams"`
}

type SelectTeamResponse struct {
	SelectedTeam string     `json:"selected_team"`
	Team         *team.Team `json:"team,omitempty"`
}

// MessageView is a message with its sender's display label resolved, so
// agents do not have to pick between sender_name and sender_email.
type MessageView struct {
	message.Message
	Sender string `json:"sender"`
}

type MessagesResponse struct {
	Sync     SnapshotMeta  `json:"sync"`
	Messages []MessageView `json:"messages"`
}

func messageViews(items []message.Message) []MessageView {
	views := make([]MessageView, len(items))
	for i, m := range items {
		views[i] = MessageView{Message: m, Sender: m.SenderLabel()}
	}
	return views
}

type TodosResponse struct {
	Sync         SnapshotMeta `json:"sync"`
	Todos        []todo.Todo  `json:"todos"`
	OverdueCount int          `json:"overdue_count"`
}

type SummariesResponse struct {
	Sync      SnapshotMeta      `json:"sync"`
	Summaries []summary.Summary `json:"summaries"`
}

// SubmitResponse acknowledges an optimistic mutation. Accepted means the
// provisional record is visible locally; delivery completes in the
// background and failures surface via get_sync_status.
type SubmitResponse struct {
	Accepted bool   `json:"accepted"`
	Detail   string `json:"detail,omitempty"`
}

type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

type GenerateSummaryResponse struct {
	Summary summary.Summary `json:"summary"`
}

type AskAssistantResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []string  `json:"sources,omitempty"`
}

type AssistantHistoryResponse struct {
	ProjectContext string                   `json:"project_context"`
	History        []assistant.HistoryEntry `json:"history"`
}

type ClearHistoryResponse struct {
	Cleared        bool   `json:"cleared"`
	ProjectContext string `json:"project_context"`
}
