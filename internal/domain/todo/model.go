package todo

import "time"

// Priority is the urgency level of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is a backend-accepted priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Status is the workflow state of a todo.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a backend-accepted status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status ends the todo's lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// AssignedUser is a member assigned to a todo.
type AssignedUser struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	AssignedAt time.Time `json:"assigned_at"`
}

// Todo is a client-side projection of a backend todo record.
type Todo struct {
	ID            string         `json:"todo_id"`
	TeamID        string         `json:"team_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Deadline      *time.Time     `json:"deadline,omitempty"`
	Priority      Priority       `json:"priority"`
	Status        Status         `json:"status"`
	CreatedBy     string         `json:"created_by"`
	CreatorEmail  string         `json:"creator_email"`
	CreatorName   string         `json:"creator_name"`
	AssignedUsers []AssignedUser `json:"assigned_users"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

// Overdue reports whether the deadline has passed for a still-active todo.
func (t Todo) Overdue(now time.Time) bool {
	if t.Deadline == nil || t.Status.Terminal() {
		return false
	}
	return t.Deadline.Before(now)
}

// CreateRequest is the POST /todos/ body. Deadline serializes as ISO 8601
// or null, matching what the backend expects.
type CreateRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Deadline           *time.Time `json:"deadline"`
	Priority           Priority   `json:"priority"`
	Status             Status     `json:"status"`
	AssignedUserEmails []string   `json:"assigned_user_emails"`
	TeamID             string     `json:"team_id"`
}
