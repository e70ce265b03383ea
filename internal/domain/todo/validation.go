package todo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput indicates invalid fields on a create request.
	ErrInvalidInput = errors.New("invalid todo input")
	// ErrInvalidRecord indicates a todo record failed boundary validation.
	ErrInvalidRecord = errors.New("invalid todo record")
)

// ValidateCreateInput checks a create request before it is sent. Defaults are
// not applied here; callers construct requests with explicit priority/status
// the same way the original form did.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.TeamID == "" {
		return fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if !req.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, req.Priority)
	}
	if !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	return nil
}

// Validate checks required fields at the decode boundary.
func (t Todo) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: missing todo_id", ErrInvalidRecord)
	}
	if t.TeamID == "" {
		return fmt.Errorf("%w: missing team_id for %s", ErrInvalidRecord, t.ID)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q on %s", ErrInvalidRecord, t.Priority, t.ID)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q on %s", ErrInvalidRecord, t.Status, t.ID)
	}
	return nil
}
