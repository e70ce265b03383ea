package workspace

import (
	"time"

	"github.com/synapsehq/synapse-mcp/internal/sync"
)

// ResourceStatus summarizes one polled resource for diagnostics.
type ResourceStatus struct {
	Status    sync.Status `json:"status"`
	Scope     string      `json:"scope,omitempty"`
	Count     int         `json:"count"`
	Offline   bool        `json:"offline"`
	Error     string      `json:"error,omitempty"`
	FetchedAt *time.Time  `json:"fetched_at,omitempty"`
}

// SyncStatus is a point-in-time view of the whole workspace.
type SyncStatus struct {
	SelectedTeam     string         `json:"selected_team,omitempty"`
	Teams            ResourceStatus `json:"teams"`
	Messages         ResourceStatus `json:"messages"`
	Todos            ResourceStatus `json:"todos"`
	Summaries        ResourceStatus `json:"summaries"`
	ComposerInFlight bool           `json:"composer_in_flight"`
	ComposerError    string         `json:"composer_error,omitempty"`
}

func resourceStatus[T any](snap sync.Snapshot[T]) ResourceStatus {
	rs := ResourceStatus{
		Status:  snap.Status,
		Scope:   snap.Scope,
		Count:   len(snap.Items),
		Offline: snap.Offline,
	}
	if snap.Err != nil {
		rs.Error = snap.Err.Error()
	}
	if !snap.FetchedAt.IsZero() {
		t := snap.FetchedAt
		rs.FetchedAt = &t
	}
	return rs
}
