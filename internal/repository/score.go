package repository

import (
	"context"

	"focushive/internal/domain"
)

// ScoreRepository stores per-user focus scores.
type ScoreRepository interface {
	// FindByUser returns the score record of userID, or ErrScoreNotFound.
	FindByUser(ctx context.Context, userID uint) (*domain.FocusScore, error)

	// Save creates the record when ID is zero, otherwise updates it.
	Save(ctx context.Context, score *domain.FocusScore) error

	// SetScore overwrites the score of userID, or returns ErrScoreNotFound.
	SetScore(ctx context.Context, userID uint, score float64) error

	// Increment adds delta to the score of userID, creating the record at
	// delta when the user has none yet. The addition happens in the database
	// so concurrent increments do not lose updates.
	Increment(ctx context.Context, userID uint, delta float64) error
}
