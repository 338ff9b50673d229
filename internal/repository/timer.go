package repository

import (
	"context"
	"time"

	"focushive/internal/domain"
)

// TimerUpdate is a partial administrative update; nil fields are untouched.
type TimerUpdate struct {
	DurationMinutes *int
	State           *domain.TimerState
}

// TimerRepository stores focus-room timers. The three transition methods are
// conditional updates on the expected prior state and return ErrStaleState
// when the timer was not in that state, which is what makes transitions
// at-most-once under concurrency.
type TimerRepository interface {
	// FindByID returns the timer with the given ID, or ErrTimerNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Timer, error)

	// FindByRoom returns the timer owned by roomID, or ErrTimerNotFound.
	FindByRoom(ctx context.Context, roomID uint) (*domain.Timer, error)

	// Save creates the timer when ID is zero, otherwise updates it.
	Save(ctx context.Context, timer *domain.Timer) error

	// StartRun transitions idle -> running and stamps startedAt as the run
	// identity.
	StartRun(ctx context.Context, id uint, startedAt time.Time) error

	// CompleteRun transitions running -> completed. When startedAt is
	// non-nil the update additionally requires the current run to match it,
	// so a stale expiry job cannot complete a later run.
	CompleteRun(ctx context.Context, id uint, startedAt *time.Time) error

	// ResetRun transitions completed -> idle and clears the run timestamp.
	ResetRun(ctx context.Context, id uint) error

	// Update applies a partial administrative update without transition
	// validation.
	Update(ctx context.Context, id uint, upd TimerUpdate) error
}
