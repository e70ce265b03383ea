package team

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRecord indicates a team record failed boundary validation.
var ErrInvalidRecord = errors.New("invalid team record")

// Member is a read-only team member embedded in a Team.
type Member struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Team is a client-side projection of a backend team record. The client
// never owns these beyond session memory; each poll replaces them wholesale.
type Team struct {
	ID            string     `json:"teamId"`
	Name          string     `json:"teamName"`
	Description   string     `json:"description,omitempty"`
	Members       []Member   `json:"members"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
}

// Validate checks required fields at the decode boundary.
func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: missing teamId", ErrInvalidRecord)
	}
	if t.Name == "" {
		return fmt.Errorf("%w: missing teamName for %s", ErrInvalidRecord, t.ID)
	}
	return nil
}
