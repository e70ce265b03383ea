package assistant

import "time"

// ContextGeneral is the project context used when no team is selected.
const ContextGeneral = "general"

// ChatRequest is the POST /api/assistant/chat body.
type ChatRequest struct {
	Message        string `json:"message"`
	ProjectContext string `json:"project_context,omitempty"`
	UseRAG         bool   `json:"use_rag"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []string  `json:"sources"`
}

// HistoryEntry is one turn of the stored assistant conversation.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
