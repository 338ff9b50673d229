package repository

import "errors"

// Errors shared by all repository implementations.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means an insert or update violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrStaleState means a conditional state update matched no row, i.e. the
	// record was not in the expected prior state.
	ErrStaleState = errors.New("repository: stale state")
)

// Per-resource aliases so call sites read naturally.
var (
	ErrUserNotFound   = ErrNotFound
	ErrRoomNotFound   = ErrNotFound
	ErrTimerNotFound  = ErrNotFound
	ErrScoreNotFound  = ErrNotFound
	ErrStatusNotFound = ErrNotFound
	ErrPostNotFound   = ErrNotFound
	ErrTaskNotFound   = ErrNotFound
)
