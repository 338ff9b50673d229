package repository

import (
	"context"
	"time"

	"focushive/internal/domain"
)

// TaskUpdate is a partial task update; nil fields are untouched.
type TaskUpdate struct {
	Title     *string
	Due       *time.Time
	Completed *bool
}

// TaskRepository stores to-do tasks.
type TaskRepository interface {
	// FindByID returns the task with the given ID, or ErrTaskNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Task, error)

	// FindByAuthor returns the tasks of authorID, most recently updated
	// first.
	FindByAuthor(ctx context.Context, authorID uint) ([]domain.Task, error)

	// Save creates the task when ID is zero, otherwise updates it.
	Save(ctx context.Context, task *domain.Task) error

	// Update applies a partial update, or returns ErrTaskNotFound.
	Update(ctx context.Context, id uint, upd TaskUpdate) error
}
