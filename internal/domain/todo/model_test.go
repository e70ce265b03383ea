package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOverdue(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		deadline *time.Time
		status   Status
		want     bool
	}{
		{"no deadline", nil, StatusPending, false},
		{"future deadline", &future, StatusPending, false},
		{"past deadline pending", &past, StatusPending, true},
		{"past deadline in progress", &past, StatusInProgress, true},
		{"past deadline completed", &past, StatusCompleted, false},
		{"past deadline cancelled", &past, StatusCancelled, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			td := Todo{ID: "t1", TeamID: "team-1", Priority: PriorityMedium, Status: tc.status, Deadline: tc.deadline}
			require.Equal(t, tc.want, td.Overdue(now))
		})
	}
}

func TestValidateCreateInput(t *testing.T) {
	valid := CreateRequest{Title: "ship release", TeamID: "team-1", Priority: PriorityHigh, Status: StatusPending}
	require.NoError(t, ValidateCreateInput(valid))

	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"blank title", func(r *CreateRequest) { r.Title = "   " }},
		{"missing team", func(r *CreateRequest) { r.TeamID = "" }},
		{"unknown priority", func(r *CreateRequest) { r.Priority = "critical" }},
		{"unknown status", func(r *CreateRequest) { r.Status = "done" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			require.ErrorIs(t, ValidateCreateInput(req), ErrInvalidInput)
		})
	}
}
