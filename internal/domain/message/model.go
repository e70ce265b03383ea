package message

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRecord indicates a message record failed boundary validation.
var ErrInvalidRecord = errors.New("invalid message record")

// TypeText is the default message_type for user-authored chat messages.
const TypeText = "text"

// Message is a chat message within a team. Append-only from the client's
// perspective; ordering is server-assigned.
//
// The backend mixes camelCase and snake_case keys; the tags below match what
// it actually emits.
type Message struct {
	ID          string    `json:"messageId"`
	TeamID      string    `json:"teamId"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"sender_name,omitempty"`
	SenderEmail string    `json:"sender_email,omitempty"`
	Content     string    `json:"content"`
	Type        string    `json:"message_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRequest is the POST /messages/ body.
type CreateRequest struct {
	TeamID   string         `json:"team_id"`
	Content  string         `json:"content"`
	Type     string         `json:"message_type"`
	Metadata map[string]any `json:"metadata"`
}

// Validate checks required fields at the decode boundary.
func (m Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: missing messageId", ErrInvalidRecord)
	}
	if m.TeamID == "" {
		return fmt.Errorf("%w: missing teamId for %s", ErrInvalidRecord, m.ID)
	}
	return nil
}

// SenderLabel returns the display name for the sender, preferring the
// human-readable name over the email.
func (m Message) SenderLabel() string {
	if m.SenderName != "" {
		return m.SenderName
	}
	return m.SenderEmail
}
