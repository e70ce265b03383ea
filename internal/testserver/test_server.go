// Package testserver runs an in-process fake of the Synapse REST backend
// for client and integration tests.
package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	stdsync "sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/synapsehq/synapse-mcp/internal/domain/assistant"
	"github.com/synapsehq/synapse-mcp/internal/domain/message"
	"github.com/synapsehq/synapse-mcp/internal/domain/summary"
	"github.com/synapsehq/synapse-mcp/internal/domain/team"
	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
)

// TestServer is an in-memory Synapse backend. All state is guarded by one
// mutex; handlers are intentionally simple.
type TestServer struct {
	Server *httptest.Server
	Token  string

	mu        stdsync.Mutex
	nextID    int
	forced    int  // non-zero: every request answers with this status
	offline   bool // drop connections without a response
	teams     []team.Team
	messages  map[string][]message.Message
	todos     map[string][]todo.Todo
	summaries map[string][]summary.Summary
	history   map[string][]assistant.HistoryEntry
}

// New starts the fake backend and registers cleanup.
func New(t *testing.T, token string) *TestServer {
	t.Helper()

	ts := &TestServer{
		Token:     token,
		messages:  map[string][]message.Message{},
		todos:     map[string][]todo.Todo{},
		summaries: map[string][]summary.Summary{},
		history:   map[string][]assistant.HistoryEntry{},
	}

	router := chi.NewRouter()
	router.Use(ts.authenticate)

	router.Get("/teams/", ts.handleListTeams)
	router.Get("/messages/{teamID}", ts.handleListMessages)
	router.Post("/messages/", ts.handleSendMessage)
	router.Get("/todos/team/{teamID}", ts.handleListTodos)
	router.Post("/todos/", ts.handleCreateTodo)
	router.Delete("/todos/{todoID}", ts.handleDeleteTodo)
	router.Get("/summaries/team/{teamID}", ts.handleListSummaries)
	router.Post("/summaries/generate", ts.handleGenerateSummary)
	router.Delete("/summaries/{summaryID}", ts.handleDeleteSummary)
	router.Post("/api/assistant/chat", ts.handleAssistantChat)
	router.Get("/api/assistant/history", ts.handleAssistantHistory)
	router.Post("/api/assistant/clear-history", ts.handleAssistantClear)

	ts.Server = httptest.NewServer(router)
	t.Cleanup(ts.Server.Close)

	return ts
}

// URL returns the backend base URL.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// Close stops the server immediately, simulating an unreachable backend.
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// ForceStatus makes every subsequent request answer with the given status.
// Zero restores normal behavior.
func (ts *TestServer) ForceStatus(status int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.forced = status
}

// SetOffline makes the server abort every connection mid-request, which
// clients observe as a transport failure rather than an HTTP error.
func (ts *TestServer) SetOffline(offline bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.offline = offline
}

// SeedTeam adds a team.
func (ts *TestServer) SeedTeam(tm team.Team) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.teams = append(ts.teams, tm)
	if _, ok := ts.messages[tm.ID]; !ok {
		ts.messages[tm.ID] = []message.Message{}
	}
	if _, ok := ts.todos[tm.ID]; !ok {
		ts.todos[tm.ID] = []todo.Todo{}
	}
	if _, ok := ts.summaries[tm.ID]; !ok {
		ts.summaries[tm.ID] = []summary.Summary{}
	}
}

// SeedMessage adds a message to a team.
func (ts *TestServer) SeedMessage(msg message.Message) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.messages[msg.TeamID] = append(ts.messages[msg.TeamID], msg)
}

// SeedTodo adds a todo to a team.
func (ts *TestServer) SeedTodo(td todo.Todo) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.todos[td.TeamID] = append(ts.todos[td.TeamID], td)
}

// Messages returns a copy of a team's stored messages.
func (ts *TestServer) Messages(teamID string) []message.Message {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]message.Message(nil), ts.messages[teamID]...)
}

// Todos returns a copy of a team's stored todos.
func (ts *TestServer) Todos(teamID string) []todo.Todo {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]todo.Todo(nil), ts.todos[teamID]...)
}

func (ts *TestServer) id(prefix string) string {
	ts.nextID++
	return fmt.Sprintf("%s-%d", prefix, ts.nextID)
}

func (ts *TestServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		forced := ts.forced
		offline := ts.offline
		ts.mu.Unlock()
		if offline {
			panic(http.ErrAbortHandler)
		}
		if forced != 0 {
			writeDetail(w, forced, http.StatusText(forced))
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+ts.Token {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (ts *TestServer) handleListTeams(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	teams := ts.teams
	if teams == nil {
		teams = []team.Team{}
	}
	writeJSON(w, http.StatusOK, teams)
}

func (ts *TestServer) handleListMessages(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	msgs, ok := ts.messages[teamID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Team not found")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (ts *TestServer) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req message.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" || req.TeamID == "" {
		writeDetail(w, http.StatusBadRequest, "team_id and content are required")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	msg := message.Message{
		ID:          ts.id("msg"),
		TeamID:      req.TeamID,
		SenderID:    "user-1",
		SenderName:  "Test User",
		SenderEmail: "test@example.com",
		Content:     req.Content,
		Type:        req.Type,
		CreatedAt:   time.Now().UTC(),
	}
	ts.messages[req.TeamID] = append(ts.messages[req.TeamID], msg)
	writeJSON(w, http.StatusCreated, msg)
}

func (ts *TestServer) handleListTodos(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	todos, ok := ts.todos[teamID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Team not found")
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (ts *TestServer) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req todo.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.TeamID == "" {
		writeDetail(w, http.StatusBadRequest, "title and team_id are required")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	now := time.Now().UTC()
	td := todo.Todo{
		ID:            ts.id("todo"),
		TeamID:        req.TeamID,
		Title:         req.Title,
		Description:   req.Description,
		Deadline:      req.Deadline,
		Priority:      req.Priority,
		Status:        req.Status,
		CreatedBy:     "user-1",
		CreatorEmail:  "test@example.com",
		CreatorName:   "Test User",
		AssignedUsers: []todo.AssignedUser{},
		CreatedAt:     now,
	}
	ts.todos[req.TeamID] = append(ts.todos[req.TeamID], td)
	writeJSON(w, http.StatusCreated, td)
}

func (ts *TestServer) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID := chi.URLParam(r, "todoID")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for teamID, todos := range ts.todos {
		for i, td := range todos {
			if td.ID == todoID {
				ts.todos[teamID] = append(todos[:i:i], todos[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted"})
				return
			}
		}
	}
	writeDetail(w, http.StatusNotFound, "Todo not found")
}

func (ts *TestServer) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	sums, ok := ts.summaries[teamID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Team not found")
		return
	}
	writeJSON(w, http.StatusOK, sums)
}

func (ts *TestServer) handleGenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req summary.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TeamID == "" {
		writeDetail(w, http.StatusBadRequest, "team_id is required")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	msgs := ts.messages[req.TeamID]
	s := summary.Summary{
		ID:               ts.id("summary"),
		TeamID:           req.TeamID,
		Content:          fmt.Sprintf("Summary of %d messages", len(msgs)),
		CreatorEmail:     "test@example.com",
		TotalMessages:    len(msgs),
		ParticipantCount: 1,
		Participants:     []string{"Test User"},
		CreatedAt:        time.Now().UTC(),
	}
	ts.summaries[req.TeamID] = append(ts.summaries[req.TeamID], s)
	writeJSON(w, http.StatusCreated, s)
}

func (ts *TestServer) handleDeleteSummary(w http.ResponseWriter, r *http.Request) {
	summaryID := chi.URLParam(r, "summaryID")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for teamID, sums := range ts.summaries {
		for i, s := range sums {
			if s.ID == summaryID {
				ts.summaries[teamID] = append(sums[:i:i], sums[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Summary deleted"})
				return
			}
		}
	}
	writeDetail(w, http.StatusNotFound, "Summary not found")
}

func (ts *TestServer) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	var req assistant.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		writeDetail(w, http.StatusBadRequest, "message is required")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	now := time.Now().UTC()
	ts.history[req.ProjectContext] = append(ts.history[req.ProjectContext],
		assistant.HistoryEntry{ID: ts.id("turn"), Role: "user", Content: req.Message, Timestamp: now},
		assistant.HistoryEntry{ID: ts.id("turn"), Role: "assistant", Content: "You asked: " + req.Message, Timestamp: now},
	)
	writeJSON(w, http.StatusOK, assistant.ChatResponse{
		Response:  "You asked: " + req.Message,
		Timestamp: now,
		Sources:   []string{},
	})
}

func (ts *TestServer) handleAssistantHistory(w http.ResponseWriter, r *http.Request) {
	projectContext := r.URL.Query().Get("project_context")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	history := ts.history[projectContext]
	if history == nil {
		history = []assistant.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (ts *TestServer) handleAssistantClear(w http.ResponseWriter, r *http.Request) {
	projectContext := r.URL.Query().Get("project_context")
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.history, projectContext)
	writeJSON(w, http.StatusOK, map[string]string{"message": "History cleared"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
