// Package repository declares the persistence interfaces the services depend
// on. Implementations map their driver errors to the sentinel errors in this
// package.
package repository

import (
	"context"

	"focushive/internal/domain"
)

// UserRepository stores and retrieves user accounts.
type UserRepository interface {
	// FindByID returns the user with the given ID, or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername returns the user with the given username, or
	// ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByIDs returns the users whose IDs are in ids. Missing IDs are not
	// an error; they are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error)

	// FindAll returns every user.
	FindAll(ctx context.Context) ([]domain.User, error)

	// Save creates the user when ID is zero, otherwise updates it. Unique
	// constraint violations surface as ErrDuplicateEntry.
	Save(ctx context.Context, user *domain.User) error

	// Delete removes the user, or returns ErrUserNotFound.
	Delete(ctx context.Context, id uint) error
}
