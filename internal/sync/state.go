// Package sync implements the polling resource and optimistic mutation
// machinery that keeps client-side views of backend collections fresh.
package sync

import "time"

// Status describes where a resource is in its fetch lifecycle.
type Status string

const (
	// StatusIdle means no scope is selected and no data is held.
	StatusIdle Status = "idle"
	// StatusLoading means the first foreground fetch for a scope is in flight.
	StatusLoading Status = "loading"
	// StatusPopulated means the last successful fetch returned records.
	StatusPopulated Status = "populated"
	// StatusEmpty means the last successful fetch returned no records.
	StatusEmpty Status = "empty"
	// StatusError means a fetch failed while earlier data was already held,
	// or authentication failed.
	StatusError Status = "error"
	// StatusOffline means the backend is unreachable and fallback data is
	// being served.
	StatusOffline Status = "offline"
)

// Snapshot is a point-in-time view of a resource. Items is a copy; callers
// may retain it without synchronization.
type Snapshot[T any] struct {
	Status    Status
	Scope     string
	Items     []T
	Err       error
	Offline   bool
	FetchedAt time.Time
}
