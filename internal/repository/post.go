package repository

import (
	"context"

	"focushive/internal/domain"
)

// PostRepository stores posts.
type PostRepository interface {
	// FindByID returns the post with the given ID, or ErrPostNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]domain.Post, error)

	// FindByAuthor returns the posts of authorID, newest first.
	FindByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error)

	// Save creates the post when ID is zero, otherwise updates it.
	Save(ctx context.Context, post *domain.Post) error

	// Delete removes the post, or returns ErrPostNotFound.
	Delete(ctx context.Context, id uint) error
}
