package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/synapsehq/synapse-mcp/internal/api"
	"github.com/synapsehq/synapse-mcp/internal/domain/assistant"
	"github.com/synapsehq/synapse-mcp/internal/domain/message"
	"github.com/synapsehq/synapse-mcp/internal/domain/summary"
	"github.com/synapsehq/synapse-mcp/internal/domain/team"
	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
	"github.com/synapsehq/synapse-mcp/internal/sync"
	"github.com/synapsehq/synapse-mcp/internal/workspace"
)

type mockWorkspace struct {
	mock.Mock
}

func (m *mockWorkspace) SelectTeam(teamID string) error {
	return m.Called(teamID).Error(0)
}

func (m *mockWorkspace) DeselectTeam() {
	m.Called()
}

func (m *mockWorkspace) SelectedTeam() string {
	return m.Called().String(0)
}

func (m *mockWorkspace) Teams(ctx context.Context) sync.Snapshot[team.Team] {
	return m.Called(ctx).Get(0).(sync.Snapshot[team.Team])
}

func (m *mockWorkspace) Messages(ctx context.Context) sync.Snapshot[message.Message] {
	return m.Called(ctx).Get(0).(sync.Snapshot[message.Message])
}

func (m *mockWorkspace) Todos(ctx context.Context) sync.Snapshot[todo.Todo] {
	return m.Called(ctx).Get(0).(sync.Snapshot[todo.Todo])
}

func (m *mockWorkspace) Summaries(ctx context.Context) sync.Snapshot[summary.Summary] {
	return m.Called(ctx).Get(0).(sync.Snapshot[summary.Summary])
}

func (m *mockWorkspace) SendMessage(text string) error {
	return m.Called(text).Error(0)
}

func (m *mockWorkspace) CreateTodo(req todo.CreateRequest) error {
	return m.Called(req).Error(0)
}

func (m *mockWorkspace) DeleteTodo(ctx context.Context, todoID string) error {
	return m.Called(ctx, todoID).Error(0)
}

func (m *mockWorkspace) GenerateSummary(ctx context.Context, messageCount int) (summary.Summary, error) {
	args := m.Called(ctx, messageCount)
	return args.Get(0).(summary.Summary), args.Error(1)
}

func (m *mockWorkspace) DeleteSummary(ctx context.Context, summaryID string) error {
	return m.Called(ctx, summaryID).Error(0)
}

func (m *mockWorkspace) AskAssistant(ctx context.Context, text string, useRAG bool) (assistant.ChatResponse, error) {
	args := m.Called(ctx, text, useRAG)
	return args.Get(0).(assistant.ChatResponse), args.Error(1)
}

func (m *mockWorkspace) AssistantHistory(ctx context.Context) ([]assistant.HistoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]assistant.HistoryEntry), args.Error(1)
}

func (m *mockWorkspace) ClearAssistantHistory(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockWorkspace) Status() workspace.SyncStatus {
	return m.Called().Get(0).(workspace.SyncStatus)
}

func rawParams(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestHandler_ListTeams(t *testing.T) {
	ws := new(mockWorkspace)
	snap := sync.Snapshot[team.Team]{
		Status:    sync.StatusPopulated,
		Scope:     "all",
		Items:     []team.Team{{ID: "team-1", Name: "Platform"}},
		FetchedAt: time.Now(),
	}
	ws.On("Teams", mock.Anything).Return(snap)

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "list_teams", nil)
	require.NoError(t, err)

	resp, ok := result.(TeamsResponse)
	require.True(t, ok)
	require.Equal(t, "populated", resp.Sync.Status)
	require.Len(t, resp.Teams, 1)
	ws.AssertExpectations(t)
}

func TestHandler_SelectTeamReturnsTeamRecord(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("SelectTeam", "team-1").Return(nil)
	ws.On("Teams", mock.Anything).Return(sync.Snapshot[team.Team]{
		Status: sync.StatusPopulated,
		Items:  []team.Team{{ID: "team-1", Name: "Platform"}},
	})

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "select_team", rawParams(t, SelectTeamParams{TeamID: "team-1"}))
	require.NoError(t, err)

	resp := result.(SelectTeamResponse)
	require.Equal(t, "team-1", resp.SelectedTeam)
	require.NotNil(t, resp.Team)
	require.Equal(t, "Platform", resp.Team.Name)
}

func TestHandler_ListMessagesRequiresSelection(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("SelectedTeam").Return("")

	h := NewHandler(ws)
	_, err := h.Handle(context.Background(), "list_messages", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "NO_TEAM_SELECTED", apiErr.Code)
	ws.AssertNotCalled(t, "Messages", mock.Anything)
}

func TestHandler_ListMessagesIncludesSenderLabel(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("SelectedTeam").Return("team-1")
	ws.On("Messages", mock.Anything).Return(sync.Snapshot[message.Message]{
		Status: sync.StatusPopulated,
		Scope:  "team-1",
		Items: []message.Message{
			{ID: "m1", TeamID: "team-1", SenderName: "Ana", SenderEmail: "ana@synapse.dev", Content: "hi"},
			{ID: "m2", TeamID: "team-1", SenderEmail: "bo@synapse.dev", Content: "hey"},
		},
	})

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "list_messages", nil)
	require.NoError(t, err)

	resp := result.(MessagesResponse)
	require.Len(t, resp.Messages, 2)
	require.Equal(t, "Ana", resp.Messages[0].Sender)
	require.Equal(t, "bo@synapse.dev", resp.Messages[1].Sender)
}

func TestHandler_SendMessageAccepted(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("SendMessage", "hello").Return(nil)

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "send_message", rawParams(t, SendMessageParams{Content: "hello"}))
	require.NoError(t, err)
	require.True(t, result.(SubmitResponse).Accepted)
}

func TestHandler_SendMessageErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"empty", workspace.ErrEmptyInput, "EMPTY_INPUT"},
		{"demo", workspace.ErrDemoScope, "DEMO_SCOPE"},
		{"in flight", workspace.ErrMutationInFlight, "SEND_IN_FLIGHT"},
		{"no team", workspace.ErrNoTeamSelected, "NO_TEAM_SELECTED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := new(mockWorkspace)
			ws.On("SendMessage", "x").Return(tt.err)

			h := NewHandler(ws)
			_, err := h.Handle(context.Background(), "send_message", rawParams(t, SendMessageParams{Content: "x"}))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestHandler_CreateTodoDefaults(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("CreateTodo", mock.MatchedBy(func(req todo.CreateRequest) bool {
		return req.Title == "ship it" &&
			req.Priority == todo.PriorityMedium &&
			req.Status == todo.StatusPending
	})).Return(nil)

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "create_todo", rawParams(t, CreateTodoParams{Title: "ship it"}))
	require.NoError(t, err)
	require.True(t, result.(SubmitResponse).Accepted)
	ws.AssertExpectations(t)
}

func TestHandler_CreateTodoDeadlineParsing(t *testing.T) {
	ws := new(mockWorkspace)
	deadline := time.Date(2026, 9, 15, 17, 0, 0, 0, time.UTC)
	ws.On("CreateTodo", mock.MatchedBy(func(req todo.CreateRequest) bool {
		return req.Deadline != nil && req.Deadline.Equal(deadline)
	})).Return(nil)

	h := NewHandler(ws)
	_, err := h.Handle(context.Background(), "create_todo", rawParams(t, CreateTodoParams{
		Title:    "ship it",
		Deadline: "2026-09-15T17:00:00Z",
	}))
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), "create_todo", rawParams(t, CreateTodoParams{
		Title:    "ship it",
		Deadline: "next tuesday",
	}))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_INPUT", apiErr.Code)
}

func TestHandler_DeleteTodoRequiresID(t *testing.T) {
	ws := new(mockWorkspace)
	h := NewHandler(ws)

	_, err := h.Handle(context.Background(), "delete_todo", rawParams(t, DeleteTodoParams{}))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_INPUT", apiErr.Code)
	ws.AssertNotCalled(t, "DeleteTodo", mock.Anything, mock.Anything)
}

func TestHandler_GenerateSummary(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("GenerateSummary", mock.Anything, 50).Return(summary.Summary{ID: "s1", TeamID: "team-1", Content: "digest"}, nil)

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "generate_summary", rawParams(t, GenerateSummaryParams{MessageCount: 50}))
	require.NoError(t, err)
	require.Equal(t, "s1", result.(GenerateSummaryResponse).Summary.ID)
}

func TestHandler_AskAssistant(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("AskAssistant", mock.Anything, "what changed?", true).Return(assistant.ChatResponse{Response: "answer"}, nil)

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "ask_assistant", rawParams(t, AskAssistantParams{Message: "what changed?", UseRAG: true}))
	require.NoError(t, err)
	require.Equal(t, "answer", result.(AskAssistantResponse).Response)
}

func TestHandler_AssistantHistoryNeverNil(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("AssistantHistory", mock.Anything).Return(nil, nil)
	ws.On("SelectedTeam").Return("")

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "get_assistant_history", nil)
	require.NoError(t, err)

	resp := result.(AssistantHistoryResponse)
	require.NotNil(t, resp.History)
	require.Equal(t, assistant.ContextGeneral, resp.ProjectContext)
}

func TestHandler_GetSyncStatus(t *testing.T) {
	ws := new(mockWorkspace)
	ws.On("Status").Return(workspace.SyncStatus{SelectedTeam: "team-1", ComposerError: "network error: boom"})

	h := NewHandler(ws)
	result, err := h.Handle(context.Background(), "get_sync_status", nil)
	require.NoError(t, err)
	require.Equal(t, "team-1", result.(workspace.SyncStatus).SelectedTeam)
}

func TestHandler_UnknownTool(t *testing.T) {
	h := NewHandler(new(mockWorkspace))
	_, err := h.Handle(context.Background(), "bogus_tool", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "UNKNOWN_TOOL", apiErr.Code)
}

func TestMapError_BackendTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"unauthorized", api.ErrUnauthorized, "AUTH_FAILED"},
		{"not found", api.ErrNotFound, "NOT_FOUND"},
		{"network", &api.NetworkError{Err: errors.New("refused")}, "NETWORK_ERROR"},
		{"server", &api.ServerError{StatusCode: 503, Detail: "overloaded"}, "SERVER_ERROR"},
		{"rejected", &api.StatusError{StatusCode: 400, Detail: "bad"}, "REQUEST_REJECTED"},
		{"decode", &api.DecodeError{Entity: "team", Err: errors.New("missing id")}, "DECODE_ERROR"},
		{"invalid todo", todo.ErrInvalidInput, "INVALID_INPUT"},
		{"unknown", errors.New("weird"), "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, MapError(tt.err).Code)
		})
	}
}

func TestToolCatalogMatchesHandler(t *testing.T) {
	ws := new(mockWorkspace)
	h := NewHandler(ws)

	// Every cataloged tool must dispatch somewhere; reaching the workspace
	// mock (panic on unexpected call) or an input validation error both
	// prove the route exists.
	for _, def := range buildToolCatalog() {
		t.Run(def.Name, func(t *testing.T) {
			defer func() { recover() }()
			_, err := h.Handle(context.Background(), def.Name, nil)
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				require.NotEqual(t, "UNKNOWN_TOOL", apiErr.Code)
			}
		})
	}
}
