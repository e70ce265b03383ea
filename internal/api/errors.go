package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized indicates the backend rejected the bearer token (401).
	// Callers propagate it to force re-authentication.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates the resource does not exist (404). Read paths
	// treat it as an empty collection, not an error.
	ErrNotFound = errors.New("not found")
)

// ServerError is a 5xx response: transient and user-retryable.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error: status %d: %s", e.StatusCode, e.Detail)
}

// StatusError is a non-2xx response outside the dedicated taxonomy (e.g. a
// 400 validation rejection).
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed: status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed: status %d: %s", e.StatusCode, e.Detail)
}

// NetworkError indicates the request could not complete at all. Read paths
// respond by entering fallback/offline mode; write paths restore input for
// retry.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a response body failed boundary validation instead
// of being rendered with zero-value fields.
type DecodeError struct {
	Entity string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Entity, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err classifies as a transport failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// errorDetail extracts the backend's error description: JSON bodies carry a
// "detail" field, everything else is taken as plain text.
func errorDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

// classifyStatus maps a non-2xx status to the error taxonomy.
func classifyStatus(status int, body []byte) error {
	detail := errorDetail(body)
	switch {
	case status == 401:
		if detail == "" {
			return ErrUnauthorized
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case status == 404:
		return ErrNotFound
	case status >= 500:
		return &ServerError{StatusCode: status, Detail: detail}
	default:
		return &StatusError{StatusCode: status, Detail: detail}
	}
}
