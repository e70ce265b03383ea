// Package fallback provides the deterministic demo datasets used when the
// backend is unreachable. Identifiers carry a reserved prefix so the rest of
// the system can recognize demo records and refuse to send real mutations
// for them.
package fallback

import (
	"strings"
	"time"

	"github.com/synapsehq/synapse-mcp/internal/domain/message"
	"github.com/synapsehq/synapse-mcp/internal/domain/summary"
	"github.com/synapsehq/synapse-mcp/internal/domain/team"
	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
)

// Prefix marks identifiers fabricated by this package.
const Prefix = "mock-"

// IsDemoID reports whether an identifier was fabricated locally.
func IsDemoID(id string) bool {
	return strings.HasPrefix(id, Prefix)
}

// IsDemoScope reports whether a scope refers to demo data. Mutations against
// demo scopes must never reach the backend.
func IsDemoScope(scope string) bool {
	return strings.HasPrefix(scope, Prefix)
}

// Fixed base time keeps the datasets identical across runs.
var demoBase = time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return demoBase.Add(offset)
}

// Teams returns the demo team list.
func Teams() []team.Team {
	return []team.Team{
		{
			ID:          Prefix + "team-1",
			Name:        "Web Development",
			Description: "Frontend, backend, and full-stack",
			Members: []team.Member{
				{UserID: Prefix + "user-1", Email: "alex@example.com", Name: "Alex Rivera", Role: "admin"},
				{UserID: Prefix + "user-2", Email: "sam@example.com", Name: "Sam Chen", Role: "member"},
			},
			CreatedAt: at(0),
		},
		{
			ID:          Prefix + "team-2",
			Name:        "AI & Machine Learning",
			Description: "AI models, training, and deployment",
			Members: []team.Member{
				{UserID: Prefix + "user-1", Email: "alex@example.com", Name: "Alex Rivera", Role: "member"},
			},
			CreatedAt: at(time.Hour),
		},
	}
}

// Messages returns the demo message list for a scope.
func Messages(scope string) []message.Message {
	return []message.Message{
		{
			ID:         Prefix + "msg-1",
			TeamID:     scope,
			SenderID:   Prefix + "user-1",
			SenderName: "Alex Rivera",
			Content:    "Welcome to the team chat. The backend is unreachable right now, so this is demo data.",
			Type:       message.TypeText,
			CreatedAt:  at(10 * time.Minute),
		},
		{
			ID:         Prefix + "msg-2",
			TeamID:     scope,
			SenderID:   Prefix + "user-2",
			SenderName: "Sam Chen",
			Content:    "Messages sent while offline will not reach the server.",
			Type:       message.TypeText,
			CreatedAt:  at(12 * time.Minute),
		},
		{
			ID:         Prefix + "msg-3",
			TeamID:     scope,
			SenderID:   Prefix + "user-1",
			SenderName: "Alex Rivera",
			Content:    "Retry once the connection is back to load the real conversation.",
			Type:       message.TypeText,
			CreatedAt:  at(15 * time.Minute),
		},
	}
}

// Todos returns the demo todo list for a scope.
func Todos(scope string) []todo.Todo {
	deadline := at(72 * time.Hour)
	return []todo.Todo{
		{
			ID:          Prefix + "todo-1",
			TeamID:      scope,
			Title:       "Restore backend connectivity",
			Description: "This is demo data shown while the backend is unreachable.",
			Deadline:    &deadline,
			Priority:    todo.PriorityHigh,
			Status:      todo.StatusPending,
			CreatorName: "Alex Rivera",
			CreatedAt:   at(20 * time.Minute),
		},
		{
			ID:          Prefix + "todo-2",
			TeamID:      scope,
			Title:       "Review sprint board",
			Priority:    todo.PriorityMedium,
			Status:      todo.StatusInProgress,
			CreatorName: "Sam Chen",
			CreatedAt:   at(25 * time.Minute),
		},
	}
}

// Summaries returns the demo summary list for a scope.
func Summaries(scope string) []summary.Summary {
	return []summary.Summary{
		{
			ID:               Prefix + "summary-1",
			TeamID:           scope,
			Content:          "Demo summary: the team discussed connectivity issues and agreed to retry once the backend is back online.",
			CreatorEmail:     "alex@example.com",
			TotalMessages:    3,
			ParticipantCount: 2,
			Participants:     []string{"Alex Rivera", "Sam Chen"},
			CreatedAt:        at(30 * time.Minute),
		},
	}
}
