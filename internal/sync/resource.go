package sync

import (
	"context"
	"errors"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/synapsehq/synapse-mcp/internal/api"
)

// DefaultInterval is the background poll interval used when a Config does
// not set one.
const DefaultInterval = 3 * time.Second

// FetchFunc loads the records for a scope from the backend.
type FetchFunc[T any] func(ctx context.Context, scope string) ([]T, error)

// FallbackFunc produces substitute records for a scope when the backend is
// unreachable. It must not block.
type FallbackFunc[T any] func(scope string) []T

// Config describes one polled resource.
type Config[T any] struct {
	// Name identifies the resource in logs.
	Name string
	// Fetch is required.
	Fetch FetchFunc[T]
	// Fallback supplies offline data. Nil means an empty offline list.
	Fallback FallbackFunc[T]
	// Interval between background polls. Zero means DefaultInterval.
	Interval time.Duration
	// OnSnapshot is invoked after every successful fetch with the fresh
	// items, outside the resource lock. Optional.
	OnSnapshot func(scope string, items []T)
	Logger     *slog.Logger
}

// Resource polls one backend collection for the currently selected scope.
// Selecting a new scope cancels the previous poll loop; responses from a
// superseded scope are discarded, never merged.
type Resource[T any] struct {
	cfg Config[T]

	mu      stdsync.Mutex
	scope   string
	gen     uint64
	cancel  context.CancelFunc
	snap    Snapshot[T]
	hasGood bool
}

// NewResource creates an idle resource.
func NewResource[T any](cfg Config[T]) *Resource[T] {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Resource[T]{
		cfg:  cfg,
		snap: Snapshot[T]{Status: StatusIdle},
	}
}

// Select switches the resource to a scope and starts polling it. Selecting
// the scope that is already active is a no-op. The previous scope's loop is
// cancelled and its data dropped immediately.
func (r *Resource[T]) Select(ctx context.Context, scope string) {
	r.mu.Lock()
	if r.cancel != nil && r.scope == scope {
		r.mu.Unlock()
		return
	}
	if r.cancel != nil {
		r.cancel()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.scope = scope
	r.gen++
	gen := r.gen
	r.hasGood = false
	r.snap = Snapshot[T]{Status: StatusLoading, Scope: scope}
	r.mu.Unlock()

	go r.loop(loopCtx, gen, scope)
}

// Deselect stops polling and returns the resource to idle.
func (r *Resource[T]) Deselect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.scope = ""
	r.gen++
	r.hasGood = false
	r.snap = Snapshot[T]{Status: StatusIdle}
}

// Retry runs an immediate foreground fetch for the current scope. It is the
// only way out of the offline state. No-op when idle.
func (r *Resource[T]) Retry(ctx context.Context) {
	r.mu.Lock()
	if r.cancel == nil {
		r.mu.Unlock()
		return
	}
	gen, scope := r.gen, r.scope
	r.mu.Unlock()

	r.fetchOnce(ctx, gen, scope, true)
}

// Snapshot returns a copy of the current state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snap
	snap.Items = append([]T(nil), r.snap.Items...)
	return snap
}

// Append adds a record to the snapshot for a scope without contacting the
// backend. Used for optimistic inserts; the next successful poll replaces
// the whole list. Records for a scope that is no longer selected are
// discarded, the same way late fetch responses are.
func (r *Resource[T]) Append(scope string, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scope != r.scope {
		r.cfg.Logger.Debug("discarding record for superseded scope",
			"resource", r.cfg.Name, "scope", scope, "active", r.scope)
		return
	}
	r.snap.Items = append(r.snap.Items, item)
	if r.snap.Status == StatusEmpty {
		r.snap.Status = StatusPopulated
	}
}

func (r *Resource[T]) loop(ctx context.Context, gen uint64, scope string) {
	r.fetchOnce(ctx, gen, scope, true)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchOnce(ctx, gen, scope, false)
		}
	}
}

// fetchOnce performs a single fetch and folds the outcome into the snapshot.
// Results for a superseded generation are discarded.
func (r *Resource[T]) fetchOnce(ctx context.Context, gen uint64, scope string, foreground bool) {
	items, err := r.cfg.Fetch(ctx, scope)

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}

	switch {
	case err == nil, errors.Is(err, api.ErrNotFound):
		// A missing collection means the scope has no records yet.
		if items == nil {
			items = []T{}
		}
		r.hasGood = true
		wasOffline := r.snap.Offline
		if wasOffline && !foreground {
			// Offline is sticky for background polls. The fresh data is
			// persisted but not surfaced until a foreground retry succeeds.
			r.mu.Unlock()
			r.notify(scope, items)
			return
		}
		status := StatusPopulated
		if len(items) == 0 {
			status = StatusEmpty
		}
		r.snap = Snapshot[T]{
			Status:    status,
			Scope:     scope,
			Items:     items,
			FetchedAt: time.Now(),
		}
		r.mu.Unlock()
		r.notify(scope, items)
		return

	case errors.Is(err, api.ErrUnauthorized):
		r.snap.Status = StatusError
		r.snap.Err = err
		r.snap.Offline = false
		r.mu.Unlock()
		r.cfg.Logger.Warn("authentication failed", "resource", r.cfg.Name, "scope", scope)
		return

	default:
		if ctx.Err() != nil {
			r.mu.Unlock()
			return
		}
		if !r.hasGood {
			var fallback []T
			if r.cfg.Fallback != nil {
				fallback = r.cfg.Fallback(scope)
			}
			if fallback == nil {
				fallback = []T{}
			}
			r.snap = Snapshot[T]{
				Status:  StatusOffline,
				Scope:   scope,
				Items:   fallback,
				Offline: true,
			}
			r.mu.Unlock()
			r.cfg.Logger.Warn("fetch failed, serving fallback data",
				"resource", r.cfg.Name, "scope", scope, "error", err)
			return
		}
		// Earlier data is retained. Background failures stay silent;
		// a foreground failure surfaces the error alongside the stale
		// items. An offline resource stays offline until a fetch succeeds.
		if foreground && !r.snap.Offline {
			r.snap.Status = StatusError
			r.snap.Err = err
		}
		r.mu.Unlock()
		r.cfg.Logger.Debug("fetch failed, keeping previous data",
			"resource", r.cfg.Name, "scope", scope, "error", err)
		return
	}
}

func (r *Resource[T]) notify(scope string, items []T) {
	if r.cfg.OnSnapshot != nil {
		r.cfg.OnSnapshot(scope, items)
	}
}
