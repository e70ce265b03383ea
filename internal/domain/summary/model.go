package summary

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRecord indicates a summary record failed boundary validation.
var ErrInvalidRecord = errors.New("invalid summary record")

// Summary is an AI-generated digest of a team's conversation. Created on
// demand, deleted individually, otherwise immutable.
type Summary struct {
	ID               string    `json:"summaryId"`
	TeamID           string    `json:"teamId"`
	Content          string    `json:"content"`
	CreatorEmail     string    `json:"creator_email"`
	TotalMessages    int       `json:"total_messages"`
	ParticipantCount int       `json:"participant_count"`
	Participants     []string  `json:"participants"`
	CreatedAt        time.Time `json:"created_at"`
}

// GenerateRequest is the POST /summaries/generate body. MessageCount bounds
// how many recent messages feed the generation; zero lets the backend pick.
type GenerateRequest struct {
	TeamID       string `json:"team_id"`
	MessageCount int    `json:"message_count"`
}

// Validate checks required fields at the decode boundary.
func (s Summary) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing summaryId", ErrInvalidRecord)
	}
	if s.TeamID == "" {
		return fmt.Errorf("%w: missing teamId for %s", ErrInvalidRecord, s.ID)
	}
	return nil
}
