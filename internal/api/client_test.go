package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/synapsehq/synapse-mcp/internal/api"
	"github.com/synapsehq/synapse-mcp/internal/auth"
	"github.com/synapsehq/synapse-mcp/internal/domain/assistant"
	"github.com/synapsehq/synapse-mcp/internal/domain/message"
	"github.com/synapsehq/synapse-mcp/internal/domain/summary"
	"github.com/synapsehq/synapse-mcp/internal/domain/team"
	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
	"github.com/synapsehq/synapse-mcp/internal/testserver"
)

const testToken = "secret-token"

func newClient(t *testing.T, ts *testserver.TestServer) *api.Client {
	t.Helper()
	session := auth.NewStaticSession(testToken, auth.User{ID: "user-1", Email: "test@example.com", Name: "Test User"})
	return api.New(ts.URL(), session, api.Options{})
}

func seedTeam(ts *testserver.TestServer, id, name string) {
	ts.SeedTeam(team.Team{ID: id, Name: name, Members: []team.Member{}, CreatedAt: time.Now().UTC()})
}

func TestClient_ListTeams(t *testing.T) {
	ts := testserver.New(t, testToken)
	seedTeam(ts, "team-1", "Platform")
	seedTeam(ts, "team-2", "Research")

	client := newClient(t, ts)
	teams, err := client.ListTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, "Platform", teams[0].Name)
}

func TestClient_BadTokenIsUnauthorized(t *testing.T) {
	ts := testserver.New(t, testToken)

	session := auth.NewStaticSession("wrong-token", auth.User{})
	client := api.New(ts.URL(), session, api.Options{})

	_, err := client.ListTeams(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestClient_MissingTokenIsUnauthorized(t *testing.T) {
	ts := testserver.New(t, testToken)

	session := auth.NewStaticSession("", auth.User{})
	client := api.New(ts.URL(), session, api.Options{})

	_, err := client.ListTeams(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestClient_UnknownTeamIsNotFound(t *testing.T) {
	ts := testserver.New(t, testToken)
	client := newClient(t, ts)

	_, err := client.ListMessages(context.Background(), "nope")
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestClient_ServerErrorCarriesDetail(t *testing.T) {
	ts := testserver.New(t, testToken)
	ts.ForceStatus(503)
	client := newClient(t, ts)

	_, err := client.ListTeams(context.Background())
	var serverErr *api.ServerError
	require.ErrorAs(t, err, &serverErr)
	require.Equal(t, 503, serverErr.StatusCode)
}

func TestClient_ValidationRejectionIsStatusError(t *testing.T) {
	ts := testserver.New(t, testToken)
	client := newClient(t, ts)

	_, err := client.SendMessage(context.Background(), message.CreateRequest{TeamID: "team-1"})
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 400, statusErr.StatusCode)
	require.Contains(t, statusErr.Detail, "content")
}

func TestClient_UnreachableBackendIsNetworkError(t *testing.T) {
	ts := testserver.New(t, testToken)
	client := newClient(t, ts)
	ts.Close()

	_, err := client.ListTeams(context.Background())
	require.True(t, api.IsNetwork(err), "got %v", err)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ts := testserver.New(t, testToken)
	client := newClient(t, ts)
	ts.Close()

	for i := 0; i < 6; i++ {
		_, err := client.ListTeams(context.Background())
		require.True(t, api.IsNetwork(err), "attempt %d: got %v", i, err)
	}

	// With the breaker open, failures are still classified as network
	// errors; callers keep degrading to fallback data.
	start := time.Now()
	_, err := client.ListTeams(context.Background())
	require.True(t, api.IsNetwork(err))
	require.Less(t, time.Since(start), time.Second)
}

func TestClient_InvalidTeamRecordIsDecodeError(t *testing.T) {
	ts := testserver.New(t, testToken)
	ts.SeedTeam(team.Team{ID: "", Name: "Broken"})
	client := newClient(t, ts)

	_, err := client.ListTeams(context.Background())
	var decodeErr *api.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, "team", decodeErr.Entity)
}

func TestClient_SendMessageRoundTrip(t *testing.T) {
	ts := testserver.New(t, testToken)
	seedTeam(ts, "team-1", "Platform")
	client := newClient(t, ts)

	msg, err := client.SendMessage(context.Background(), message.CreateRequest{
		TeamID:  "team-1",
		Content: "hello",
		Type:    message.TypeText,
	})
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)
	require.Equal(t, "hello", msg.Content)

	stored := ts.Messages("team-1")
	require.Len(t, stored, 1)
	require.Equal(t, msg.ID, stored[0].ID)
}

func TestClient_CreateTodoValidatesLocally(t *testing.T) {
	ts := testserver.New(t, testToken)
	client := newClient(t, ts)

	_, err := client.CreateTodo(context.Background(), todo.CreateRequest{
		Title:    "  ",
		TeamID:   "team-1",
		Priority: todo.PriorityLow,
		Status:   todo.StatusPending,
	})
	require.ErrorIs(t, err, todo.ErrInvalidInput)
}

func TestClient_TodoLifecycle(t *testing.T) {
	ts := testserver.New(t, testToken)
	seedTeam(ts, "team-1", "Platform")
	client := newClient(t, ts)
	ctx := context.Background()

	created, err := client.CreateTodo(ctx, todo.CreateRequest{
		Title:    "ship it",
		TeamID:   "team-1",
		Priority: todo.PriorityHigh,
		Status:   todo.StatusPending,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	todos, err := client.ListTodos(ctx, "team-1")
	require.NoError(t, err)
	require.Len(t, todos, 1)

	require.NoError(t, client.DeleteTodo(ctx, created.ID))

	todos, err = client.ListTodos(ctx, "team-1")
	require.NoError(t, err)
	require.Empty(t, todos)

	require.ErrorIs(t, client.DeleteTodo(ctx, created.ID), api.ErrNotFound)
}

func TestClient_SummaryLifecycle(t *testing.T) {
	ts := testserver.New(t, testToken)
	seedTeam(ts, "team-1", "Platform")
	client := newClient(t, ts)
	ctx := context.Background()

	ts.SeedMessage(message.Message{ID: "m1", TeamID: "team-1", SenderID: "u1", Content: "hi", Type: message.TypeText, CreatedAt: time.Now().UTC()})

	s, err := client.GenerateSummary(ctx, summary.GenerateRequest{TeamID: "team-1", MessageCount: 10})
	require.NoError(t, err)
	require.Equal(t, 1, s.TotalMessages)

	sums, err := client.ListSummaries(ctx, "team-1")
	require.NoError(t, err)
	require.Len(t, sums, 1)

	require.NoError(t, client.DeleteSummary(ctx, s.ID))

	sums, err = client.ListSummaries(ctx, "team-1")
	require.NoError(t, err)
	require.Empty(t, sums)
}

func TestClient_AssistantRoundTrip(t *testing.T) {
	ts := testserver.New(t, testToken)
	client := newClient(t, ts)
	ctx := context.Background()

	resp, err := client.AssistantChat(ctx, assistant.ChatRequest{Message: "what changed?", ProjectContext: "team-1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Response)

	history, err := client.AssistantHistory(ctx, "team-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "user", history[0].Role)

	// History is scoped per project context.
	other, err := client.AssistantHistory(ctx, "general")
	require.NoError(t, err)
	require.Empty(t, other)

	require.NoError(t, client.ClearAssistantHistory(ctx, "team-1"))
	history, err = client.AssistantHistory(ctx, "team-1")
	require.NoError(t, err)
	require.Empty(t, history)
}
