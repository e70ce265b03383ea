package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/synapsehq/synapse-mcp/internal/domain/assistant"
	"github.com/synapsehq/synapse-mcp/internal/domain/message"
	"github.com/synapsehq/synapse-mcp/internal/domain/summary"
	"github.com/synapsehq/synapse-mcp/internal/domain/team"
	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
	"github.com/synapsehq/synapse-mcp/internal/sync"
	"github.com/synapsehq/synapse-mcp/internal/workspace"
)

// WorkspaceService defines the workspace operations needed by MCP.
type WorkspaceService interface {
	SelectTeam(teamID string) error
	DeselectTeam()
	SelectedTeam() string
	Teams(ctx context.Context) sync.Snapshot[team.Team]
	Messages(ctx context.Context) sync.Snapshot[message.Message]
	Todos(ctx context.Context) sync.Snapshot[todo.Todo]
	Summaries(ctx context.Context) sync.Snapshot[summary.Summary]
	SendMessage(text string) error
	CreateTodo(req todo.CreateRequest) error
	DeleteTodo(ctx context.Context, todoID string) error
	GenerateSummary(ctx context.Context, messageCount int) (summary.Summary, error)
	DeleteSummary(ctx context.Context, summaryID string) error
	AskAssistant(ctx context.Context, text string, useRAG bool) (assistant.ChatResponse, error)
	AssistantHistory(ctx context.Context) ([]assistant.HistoryEntry, error)
	ClearAssistantHistory(ctx context.Context) error
	Status() workspace.SyncStatus
}

// Handler dispatches MCP tool calls to the workspace.
type Handler struct {
	ws WorkspaceService
}

// NewHandler creates a new MCP handler.
func NewHandler(ws WorkspaceService) *Handler {
	return &Handler{ws: ws}
}

// Handle dispatches a tool call by name.
func (h *Handler) Handle(ctx context.Context, tool string, params json.RawMessage) (any, error) {
	switch tool {
	case "list_teams":
		snap := h.ws.Teams(ctx)
		return TeamsResponse{Sync: snapshotMeta(snap), Teams: snap.Items}, nil

	case "select_team":
		var req SelectTeamParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.ws.SelectTeam(req.TeamID); err != nil {
			return nil, mapError(err)
		}
		resp := SelectTeamResponse{SelectedTeam: req.TeamID}
		for _, tm := range h.ws.Teams(ctx).Items {
			if tm.ID == req.TeamID {
				found := tm
				resp.Team = &found
				break
			}
		}
		return resp, nil

	case "deselect_team":
		h.ws.DeselectTeam()
		return SelectTeamResponse{}, nil

	case "list_messages":
		if h.ws.SelectedTeam() == "" {
			return nil, mapError(workspace.ErrNoTeamSelected)
		}
		snap := h.ws.Messages(ctx)
		return MessagesResponse{Sync: snapshotMeta(snap), Messages: messageViews(snap.Items)}, nil

	case "send_message":
		var req SendMessageParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.ws.SendMessage(req.Content); err != nil {
			return nil, mapError(err)
		}
		return SubmitResponse{Accepted: true, Detail: "message visible locally; delivery completes in the background"}, nil

	case "list_todos":
		if h.ws.SelectedTeam() == "" {
			return nil, mapError(workspace.ErrNoTeamSelected)
		}
		snap := h.ws.Todos(ctx)
		now := time.Now().UTC()
		overdue := 0
		for _, t := range snap.Items {
			if t.Overdue(now) {
				overdue++
			}
		}
		return TodosResponse{Sync: snapshotMeta(snap), Todos: snap.Items, OverdueCount: overdue}, nil

	case "create_todo":
		var req CreateTodoParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		create, err := buildCreateRequest(req)
		if err != nil {
			return nil, err
		}
		if err := h.ws.CreateTodo(create); err != nil {
			return nil, mapError(err)
		}
		return SubmitResponse{Accepted: true, Detail: "todo visible locally; creation completes in the background"}, nil

	case "delete_todo":
		var req DeleteTodoParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.TodoID == "" {
			return nil, &APIError{Code: "INVALID_INPUT", Message: "todo_id is required"}
		}
		if err := h.ws.DeleteTodo(ctx, req.TodoID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResponse{Deleted: true, ID: req.TodoID}, nil

	case "list_summaries":
		if h.ws.SelectedTeam() == "" {
			return nil, mapError(workspace.ErrNoTeamSelected)
		}
		snap := h.ws.Summaries(ctx)
		return SummariesResponse{Sync: snapshotMeta(snap), Summaries: snap.Items}, nil

	case "generate_summary":
		var req GenerateSummaryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.ws.GenerateSummary(ctx, req.MessageCount)
		if err != nil {
			return nil, mapError(err)
		}
		return GenerateSummaryResponse{Summary: result}, nil

	case "delete_summary":
		var req DeleteSummaryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.SummaryID == "" {
			return nil, &APIError{Code: "INVALID_INPUT", Message: "summary_id is required"}
		}
		if err := h.ws.DeleteSummary(ctx, req.SummaryID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResponse{Deleted: true, ID: req.SummaryID}, nil

	case "ask_assistant":
		var req AskAssistantParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		resp, err := h.ws.AskAssistant(ctx, req.Message, req.UseRAG)
		if err != nil {
			return nil, mapError(err)
		}
		return AskAssistantResponse{
			Response:  resp.Response,
			Timestamp: resp.Timestamp,
			Sources:   resp.Sources,
		}, nil

	case "get_assistant_history":
		history, err := h.ws.AssistantHistory(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		if history == nil {
			history = []assistant.HistoryEntry{}
		}
		return AssistantHistoryResponse{
			ProjectContext: h.projectContext(),
			History:        history,
		}, nil

	case "clear_assistant_history":
		if err := h.ws.ClearAssistantHistory(ctx); err != nil {
			return nil, mapError(err)
		}
		return ClearHistoryResponse{Cleared: true, ProjectContext: h.projectContext()}, nil

	case "get_sync_status":
		return h.ws.Status(), nil

	default:
		return nil, &APIError{Code: "UNKNOWN_TOOL", Message: fmt.Sprintf("unknown tool %q", tool)}
	}
}

func (h *Handler) projectContext() string {
	if scope := h.ws.SelectedTeam(); scope != "" {
		return scope
	}
	return assistant.ContextGeneral
}

// buildCreateRequest converts wire params to a todo create request, applying
// the same defaults the original creation form used.
func buildCreateRequest(req CreateTodoParams) (todo.CreateRequest, error) {
	create := todo.CreateRequest{
		Title:              req.Title,
		Description:        req.Description,
		Priority:           todo.Priority(req.Priority),
		Status:             todo.Status(req.Status),
		AssignedUserEmails: req.AssignedUserEmails,
	}
	if create.Priority == "" {
		create.Priority = todo.PriorityMedium
	}
	if create.Status == "" {
		create.Status = todo.StatusPending
	}
	if req.Deadline != "" {
		deadline, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return todo.CreateRequest{}, &APIError{
				Code:    "INVALID_INPUT",
				Message: fmt.Sprintf("deadline must be RFC 3339, got %q", req.Deadline),
			}
		}
		create.Deadline = &deadline
	}
	return create, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error()}
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
