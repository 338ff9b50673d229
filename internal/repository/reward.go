package repository

import "context"

// RewardRepository applies one reward distribution atomically: every score
// increment and the terminal Completed -> Idle timer reset commit together
// or not at all. The reset is conditional on the timer still being
// Completed; ErrStaleState means another distribution won and nothing was
// credited.
type RewardRepository interface {
	Distribute(ctx context.Context, timerID uint, userIDs []uint, points float64) error
}
