package repository

import (
	"context"

	"focushive/internal/domain"
)

// StatusRepository stores per-user presence.
type StatusRepository interface {
	// FindByUser returns the status of userID, or ErrStatusNotFound.
	FindByUser(ctx context.Context, userID uint) (*domain.Status, error)

	// Save creates the record when ID is zero, otherwise updates it.
	Save(ctx context.Context, status *domain.Status) error

	// UpdateType overwrites the status value of userID, or returns
	// ErrStatusNotFound.
	UpdateType(ctx context.Context, userID uint, statusType string) error
}
