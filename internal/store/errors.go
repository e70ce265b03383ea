package store

import "errors"

// ErrNotFound is returned when no snapshot exists for a kind and scope.
var ErrNotFound = errors.New("snapshot not found")
