package sync

import (
	"context"
	"log/slog"
	stdsync "sync"
)

// MutatorConfig describes one optimistic mutation flow against a Resource.
type MutatorConfig[In any, T any] struct {
	// Name identifies the mutator in logs.
	Name string
	// Normalize validates and cleans the draft input. Returning false
	// rejects the submission silently.
	Normalize func(in In) (In, bool)
	// Provisional builds the locally visible record that stands in until
	// the backend confirms. Required.
	Provisional func(scope string, in In) T
	// Send performs the backend call and returns the confirmed record.
	Send func(ctx context.Context, scope string, in In) (T, error)
	// Target receives the provisional and confirmed records.
	Target *Resource[T]
	Logger *slog.Logger
}

// Mutator owns a draft input and submits it optimistically: the draft is
// cleared and a provisional record appended before the backend responds.
// On failure the draft is restored verbatim so nothing typed is lost.
// Only one submission may be in flight at a time.
type Mutator[In any, T any] struct {
	cfg MutatorConfig[In, T]

	mu       stdsync.Mutex
	input    In
	inFlight bool
	err      error
}

// NewMutator creates a mutator with an empty draft.
func NewMutator[In any, T any](cfg MutatorConfig[In, T]) *Mutator[In, T] {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Mutator[In, T]{cfg: cfg}
}

// SetInput replaces the draft.
func (m *Mutator[In, T]) SetInput(in In) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.input = in
}

// Input returns the current draft.
func (m *Mutator[In, T]) Input() In {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.input
}

// Err returns the error from the most recent failed submission, if any.
func (m *Mutator[In, T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// InFlight reports whether a submission is outstanding.
func (m *Mutator[In, T]) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// Submit sends the current draft for a scope. It returns false when a
// submission is already in flight or the draft fails normalization; a
// rejected draft is left untouched. On acceptance the draft is cleared
// synchronously and a provisional record appended before the backend call
// starts.
func (m *Mutator[In, T]) Submit(ctx context.Context, scope string) bool {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return false
	}

	in := m.input
	if m.cfg.Normalize != nil {
		var ok bool
		in, ok = m.cfg.Normalize(in)
		if !ok {
			m.mu.Unlock()
			return false
		}
	}

	original := m.input
	var zero In
	m.input = zero
	m.err = nil
	m.inFlight = true
	m.mu.Unlock()

	m.cfg.Target.Append(scope, m.cfg.Provisional(scope, in))

	go func() {
		record, err := m.cfg.Send(ctx, scope, in)

		m.mu.Lock()
		m.inFlight = false
		if err != nil {
			m.err = err
			m.input = original
			m.mu.Unlock()
			m.cfg.Logger.Warn("submission failed, draft restored",
				"mutator", m.cfg.Name, "scope", scope, "error", err)
			return
		}
		m.mu.Unlock()

		m.cfg.Target.Append(scope, record)
	}()

	return true
}
