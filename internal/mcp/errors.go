package mcp

import (
	"errors"
	"fmt"

	"github.com/synapsehq/synapse-mcp/internal/api"
	"github.com/synapsehq/synapse-mcp/internal/auth"
	"github.com/synapsehq/synapse-mcp/internal/domain/todo"
	"github.com/synapsehq/synapse-mcp/internal/workspace"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps workspace and backend errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var serverErr *api.ServerError
	var statusErr *api.StatusError
	var decodeErr *api.DecodeError

	switch {
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, auth.ErrNoToken):
		return &APIError{Code: "AUTH_FAILED", Message: "authentication failed", RecoveryHint: "Check SYNAPSE_API_TOKEN"}
	case errors.Is(err, api.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "resource not found", RecoveryHint: "Check ID spelling"}
	case api.IsNetwork(err):
		return &APIError{Code: "NETWORK_ERROR", Message: "backend unreachable", RecoveryHint: "List tools keep working on cached or demo data; retry once the backend is back"}
	case errors.As(err, &serverErr):
		return &APIError{Code: "SERVER_ERROR", Message: "backend error", Details: serverErr.Detail, RecoveryHint: "Retry shortly"}
	case errors.As(err, &decodeErr):
		return &APIError{Code: "DECODE_ERROR", Message: "backend returned an invalid record", Details: decodeErr.Error()}
	case errors.As(err, &statusErr):
		return &APIError{Code: "REQUEST_REJECTED", Message: "backend rejected the request", Details: statusErr.Detail}
	case errors.Is(err, workspace.ErrNoTeamSelected):
		return &APIError{Code: "NO_TEAM_SELECTED", Message: "no team selected", RecoveryHint: "Call select_team first"}
	case errors.Is(err, workspace.ErrDemoScope):
		return &APIError{Code: "DEMO_SCOPE", Message: "demo data is read-only", RecoveryHint: "Select a real team once the backend is reachable"}
	case errors.Is(err, workspace.ErrEmptyInput):
		return &APIError{Code: "EMPTY_INPUT", Message: "input is empty after trimming"}
	case errors.Is(err, workspace.ErrMutationInFlight):
		return &APIError{Code: "SEND_IN_FLIGHT", Message: "a previous submission is still in flight", RecoveryHint: "Check get_sync_status and retry"}
	case errors.Is(err, todo.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
