package workspace

import "errors"

var (
	// ErrNoTeamSelected indicates an operation that needs a team scope was
	// called while no team is selected.
	ErrNoTeamSelected = errors.New("no team selected")
	// ErrDemoScope indicates a mutation targeted demo data, which never
	// reaches the backend.
	ErrDemoScope = errors.New("cannot modify demo data")
	// ErrEmptyInput indicates a draft was blank after trimming.
	ErrEmptyInput = errors.New("input is empty")
	// ErrMutationInFlight indicates a previous submission has not finished.
	ErrMutationInFlight = errors.New("a submission is already in flight")
)
