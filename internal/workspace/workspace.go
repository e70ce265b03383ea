// Package workspace composes the polled resources and optimistic mutators
// into one stateful session: a team list, a selected team, and that team's
// messages, todos, and summaries.
package workspace

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-mcp/internal/auth"
	"github.com/synapsehq/synapse-mcp/internal/domain/assistant"
	"github.com/synapsehq/synapse-mcp/internal/domain/message"
	"github.com/synapsehq/synapse-mcp/internal/domain/summary"
	"github.com/synapsehq/synapse-mcp/internal/domain/team"
	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
	"github.com/synapsehq/synapse-mcp/internal/fallback"
	"github.com/synapsehq/synapse-mcp/internal/sync"
)

// scopeAll is the scope used for the account-wide team list.
const scopeAll = "all"

// Snapshot cache kinds.
const (
	kindTeams     = "teams"
	kindMessages  = "messages"
	kindTodos     = "todos"
	kindSummaries = "summaries"
)

// Backend is the slice of the REST client the workspace depends on.
// Implemented by api.Client.
type Backend interface {
	ListTeams(ctx context.Context) ([]team.Team, error)
	ListMessages(ctx context.Context, teamID string) ([]message.Message, error)
	SendMessage(ctx context.Context, req message.CreateRequest) (message.Message, error)
	ListTodos(ctx context.Context, teamID string) ([]todo.Todo, error)
	CreateTodo(ctx context.Context, req todo.CreateRequest) (todo.Todo, error)
	DeleteTodo(ctx context.Context, todoID string) error
	ListSummaries(ctx context.Context, teamID string) ([]summary.Summary, error)
	GenerateSummary(ctx context.Context, req summary.GenerateRequest) (summary.Summary, error)
	DeleteSummary(ctx context.Context, summaryID string) error
	AssistantChat(ctx context.Context, req assistant.ChatRequest) (assistant.ChatResponse, error)
	AssistantHistory(ctx context.Context, projectContext string) ([]assistant.HistoryEntry, error)
	ClearAssistantHistory(ctx context.Context, projectContext string) error
}

// SnapshotCache persists last-good fetches across restarts. Implemented by
// store.SnapshotRepository.
type SnapshotCache interface {
	Put(ctx context.Context, kind, scope string, payload []byte) error
	Get(ctx context.Context, kind, scope string) ([]byte, time.Time, error)
}

// Options tunes a Workspace.
type Options struct {
	// Cache is optional; nil disables snapshot persistence.
	Cache SnapshotCache
	// Interval between background polls. Zero means sync.DefaultInterval.
	Interval time.Duration
	Logger   *slog.Logger
}

// Workspace owns the sync state for one authenticated session.
type Workspace struct {
	backend Backend
	session auth.Session
	cache   SnapshotCache
	logger  *slog.Logger

	teams     *sync.Resource[team.Team]
	messages  *sync.Resource[message.Message]
	todos     *sync.Resource[todo.Todo]
	summaries *sync.Resource[summary.Summary]

	composer  *sync.Mutator[string, message.Message]
	todoDraft *sync.Mutator[todo.CreateRequest, todo.Todo]

	mu       stdsync.Mutex
	selected string
	runCtx   context.Context
	cancel   context.CancelFunc
}

// New wires the resources and mutators. Call Start before use.
func New(backend Backend, session auth.Session, opts Options) *Workspace {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	w := &Workspace{
		backend: backend,
		session: session,
		cache:   opts.Cache,
		logger:  opts.Logger,
	}

	w.teams = sync.NewResource(sync.Config[team.Team]{
		Name:     kindTeams,
		Interval: opts.Interval,
		Fetch: func(ctx context.Context, _ string) ([]team.Team, error) {
			return backend.ListTeams(ctx)
		},
		Fallback:   offlineItems(w, kindTeams, func(string) []team.Team { return fallback.Teams() }),
		OnSnapshot: persistItems[team.Team](w, kindTeams),
		Logger:     opts.Logger,
	})

	w.messages = sync.NewResource(sync.Config[message.Message]{
		Name:     kindMessages,
		Interval: opts.Interval,
		Fetch:    backend.ListMessages,
		Fallback: offlineItems(w, kindMessages, func(scope string) []message.Message {
			return fallback.Messages(scope)
		}),
		OnSnapshot: persistItems[message.Message](w, kindMessages),
		Logger:     opts.Logger,
	})

	w.todos = sync.NewResource(sync.Config[todo.Todo]{
		Name:     kindTodos,
		Interval: opts.Interval,
		Fetch:    backend.ListTodos,
		Fallback: offlineItems(w, kindTodos, func(scope string) []todo.Todo {
			return fallback.Todos(scope)
		}),
		OnSnapshot: persistItems[todo.Todo](w, kindTodos),
		Logger:     opts.Logger,
	})

	w.summaries = sync.NewResource(sync.Config[summary.Summary]{
		Name:     kindSummaries,
		Interval: opts.Interval,
		Fetch:    backend.ListSummaries,
		Fallback: offlineItems(w, kindSummaries, func(scope string) []summary.Summary {
			return fallback.Summaries(scope)
		}),
		OnSnapshot: persistItems[summary.Summary](w, kindSummaries),
		Logger:     opts.Logger,
	})

	w.composer = sync.NewMutator(sync.MutatorConfig[string, message.Message]{
		Name: "composer",
		Normalize: func(in string) (string, bool) {
			trimmed := strings.TrimSpace(in)
			return trimmed, trimmed != ""
		},
		Provisional: func(scope, in string) message.Message {
			user := session.CurrentUser()
			return message.Message{
				ID:          localID(),
				TeamID:      scope,
				SenderID:    user.ID,
				SenderName:  user.Name,
				SenderEmail: user.Email,
				Content:     in,
				Type:        message.TypeText,
				CreatedAt:   time.Now(),
			}
		},
		Send: func(ctx context.Context, scope, in string) (message.Message, error) {
			return backend.SendMessage(ctx, message.CreateRequest{
				TeamID:  scope,
				Content: in,
				Type:    message.TypeText,
			})
		},
		Target: w.messages,
		Logger: opts.Logger,
	})

	w.todoDraft = sync.NewMutator(sync.MutatorConfig[todo.CreateRequest, todo.Todo]{
		Name: "todo-draft",
		Normalize: func(in todo.CreateRequest) (todo.CreateRequest, bool) {
			in.Title = strings.TrimSpace(in.Title)
			return in, todo.ValidateCreateInput(in) == nil
		},
		Provisional: func(scope string, in todo.CreateRequest) todo.Todo {
			user := session.CurrentUser()
			return todo.Todo{
				ID:            localID(),
				TeamID:        scope,
				Title:         in.Title,
				Description:   in.Description,
				Deadline:      in.Deadline,
				Priority:      in.Priority,
				Status:        in.Status,
				CreatedBy:     user.ID,
				CreatorEmail:  user.Email,
				CreatorName:   user.Name,
				AssignedUsers: []todo.AssignedUser{},
				CreatedAt:     time.Now(),
			}
		},
		Send: func(ctx context.Context, scope string, in todo.CreateRequest) (todo.Todo, error) {
			in.TeamID = scope
			return backend.CreateTodo(ctx, in)
		},
		Target: w.todos,
		Logger: opts.Logger,
	})

	return w
}

// localID fabricates an identifier for a provisional record. The next full
// fetch replaces it with the server-assigned one.
func localID() string {
	return "local-" + uuid.NewString()
}

// Start begins polling the team list. The context bounds all background
// work; cancelling it stops every poll loop.
func (w *Workspace) Start(ctx context.Context) {
	w.mu.Lock()
	w.runCtx, w.cancel = context.WithCancel(ctx)
	runCtx := w.runCtx
	w.mu.Unlock()

	w.teams.Select(runCtx, scopeAll)
}

// Stop cancels all polling and clears the selection.
func (w *Workspace) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.selected = ""
	w.mu.Unlock()

	w.messages.Deselect()
	w.todos.Deselect()
	w.summaries.Deselect()
	w.teams.Deselect()
}

func (w *Workspace) run() context.Context {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.runCtx == nil {
		return context.Background()
	}
	return w.runCtx
}

// SelectTeam switches the active team. The previous team's resources stop
// polling immediately and their data is dropped.
func (w *Workspace) SelectTeam(teamID string) error {
	if teamID == "" {
		return ErrNoTeamSelected
	}

	w.mu.Lock()
	w.selected = teamID
	w.mu.Unlock()

	runCtx := w.run()
	w.messages.Select(runCtx, teamID)
	w.todos.Select(runCtx, teamID)
	w.summaries.Select(runCtx, teamID)
	return nil
}

// DeselectTeam clears the selection and stops the per-team polls.
func (w *Workspace) DeselectTeam() {
	w.mu.Lock()
	w.selected = ""
	w.mu.Unlock()

	w.messages.Deselect()
	w.todos.Deselect()
	w.summaries.Deselect()
}

// SelectedTeam returns the active team ID, or "" when none is selected.
func (w *Workspace) SelectedTeam() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected
}

// Teams refreshes the team list in the foreground and returns the snapshot.
func (w *Workspace) Teams(ctx context.Context) sync.Snapshot[team.Team] {
	w.teams.Retry(ctx)
	return w.teams.Snapshot()
}

// Messages refreshes the selected team's messages in the foreground and
// returns the snapshot.
func (w *Workspace) Messages(ctx context.Context) sync.Snapshot[message.Message] {
	w.messages.Retry(ctx)
	return w.messages.Snapshot()
}

// Todos refreshes the selected team's todos in the foreground and returns
// the snapshot.
func (w *Workspace) Todos(ctx context.Context) sync.Snapshot[todo.Todo] {
	w.todos.Retry(ctx)
	return w.todos.Snapshot()
}

// Summaries refreshes the selected team's summaries in the foreground and
// returns the snapshot.
func (w *Workspace) Summaries(ctx context.Context) sync.Snapshot[summary.Summary] {
	w.summaries.Retry(ctx)
	return w.summaries.Snapshot()
}

// SendMessage submits a chat message optimistically. It returns as soon as
// the provisional record is visible; delivery continues in the background
// and a failure restores the draft, readable via SyncStatus.
func (w *Workspace) SendMessage(text string) error {
	scope := w.SelectedTeam()
	if scope == "" {
		return ErrNoTeamSelected
	}
	if fallback.IsDemoScope(scope) {
		return ErrDemoScope
	}
	if w.composer.InFlight() {
		return ErrMutationInFlight
	}

	w.composer.SetInput(text)
	if !w.composer.Submit(w.run(), scope) {
		if w.composer.InFlight() {
			return ErrMutationInFlight
		}
		return ErrEmptyInput
	}
	return nil
}

// CreateTodo submits a todo optimistically for the selected team.
func (w *Workspace) CreateTodo(req todo.CreateRequest) error {
	scope := w.SelectedTeam()
	if scope == "" {
		return ErrNoTeamSelected
	}
	if fallback.IsDemoScope(scope) {
		return ErrDemoScope
	}
	if w.todoDraft.InFlight() {
		return ErrMutationInFlight
	}

	req.TeamID = scope
	req.Title = strings.TrimSpace(req.Title)
	if err := todo.ValidateCreateInput(req); err != nil {
		return err
	}

	w.todoDraft.SetInput(req)
	if !w.todoDraft.Submit(w.run(), scope) {
		return ErrMutationInFlight
	}
	return nil
}

// DeleteTodo removes a todo and refreshes the list in the foreground.
func (w *Workspace) DeleteTodo(ctx context.Context, todoID string) error {
	if fallback.IsDemoID(todoID) {
		return ErrDemoScope
	}
	if err := w.backend.DeleteTodo(ctx, todoID); err != nil {
		return err
	}
	w.todos.Retry(ctx)
	return nil
}

// GenerateSummary asks the backend to summarize the selected team's recent
// conversation, then refreshes the summary list.
func (w *Workspace) GenerateSummary(ctx context.Context, messageCount int) (summary.Summary, error) {
	scope := w.SelectedTeam()
	if scope == "" {
		return summary.Summary{}, ErrNoTeamSelected
	}
	if fallback.IsDemoScope(scope) {
		return summary.Summary{}, ErrDemoScope
	}

	result, err := w.backend.GenerateSummary(ctx, summary.GenerateRequest{
		TeamID:       scope,
		MessageCount: messageCount,
	})
	if err != nil {
		return summary.Summary{}, err
	}
	w.summaries.Retry(ctx)
	return result, nil
}

// DeleteSummary removes a summary and refreshes the list.
func (w *Workspace) DeleteSummary(ctx context.Context, summaryID string) error {
	if fallback.IsDemoID(summaryID) {
		return ErrDemoScope
	}
	if err := w.backend.DeleteSummary(ctx, summaryID); err != nil {
		return err
	}
	w.summaries.Retry(ctx)
	return nil
}

// projectContext scopes assistant conversations to the selected team.
func (w *Workspace) projectContext() string {
	if scope := w.SelectedTeam(); scope != "" {
		return scope
	}
	return assistant.ContextGeneral
}

// AskAssistant sends a question to the team assistant.
func (w *Workspace) AskAssistant(ctx context.Context, text string, useRAG bool) (assistant.ChatResponse, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return assistant.ChatResponse{}, ErrEmptyInput
	}
	return w.backend.AssistantChat(ctx, assistant.ChatRequest{
		Message:        trimmed,
		ProjectContext: w.projectContext(),
		UseRAG:         useRAG,
	})
}

// AssistantHistory returns the stored assistant conversation for the current
// project context.
func (w *Workspace) AssistantHistory(ctx context.Context) ([]assistant.HistoryEntry, error) {
	return w.backend.AssistantHistory(ctx, w.projectContext())
}

// ClearAssistantHistory wipes the stored assistant conversation for the
// current project context.
func (w *Workspace) ClearAssistantHistory(ctx context.Context) error {
	return w.backend.ClearAssistantHistory(ctx, w.projectContext())
}

// Status reports the state of every resource without touching the backend.
func (w *Workspace) Status() SyncStatus {
	status := SyncStatus{
		SelectedTeam:     w.SelectedTeam(),
		Teams:            resourceStatus(w.teams.Snapshot()),
		Messages:         resourceStatus(w.messages.Snapshot()),
		Todos:            resourceStatus(w.todos.Snapshot()),
		Summaries:        resourceStatus(w.summaries.Snapshot()),
		ComposerInFlight: w.composer.InFlight(),
	}
	if err := w.composer.Err(); err != nil {
		status.ComposerError = err.Error()
	}
	return status
}

// offlineItems serves the cached last-good snapshot when one exists, falling
// back to the built-in demo dataset.
func offlineItems[T any](w *Workspace, kind string, demo func(scope string) []T) sync.FallbackFunc[T] {
	return func(scope string) []T {
		if w.cache != nil {
			payload, _, err := w.cache.Get(w.run(), kind, scope)
			if err == nil {
				var items []T
				if err := json.Unmarshal(payload, &items); err == nil {
					return items
				}
				w.logger.Warn("discarding corrupt cached snapshot", "kind", kind, "scope", scope)
			}
		}
		return demo(scope)
	}
}

// persistItems writes every successful fetch through to the snapshot cache.
func persistItems[T any](w *Workspace, kind string) func(scope string, items []T) {
	return func(scope string, items []T) {
		if w.cache == nil {
			return
		}
		payload, err := json.Marshal(items)
		if err != nil {
			return
		}
		if err := w.cache.Put(w.run(), kind, scope, payload); err != nil {
			w.logger.Warn("snapshot cache write failed", "kind", kind, "scope", scope, "error", err)
		}
	}
}
