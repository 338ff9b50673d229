package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// StatusRepository is a mock of repository.StatusRepository.
type StatusRepository struct {
	mock.Mock
}

func (m *StatusRepository) FindByUser(ctx context.Context, userID uint) (*domain.Status, error) {
	args := m.Called(ctx, userID)
	var status *domain.Status
	if args.Get(0) != nil {
		status = args.Get(0).(*domain.Status)
	}
	return status, args.Error(1)
}

func (m *StatusRepository) Save(ctx context.Context, status *domain.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *StatusRepository) UpdateType(ctx context.Context, userID uint, statusType string) error {
	args := m.Called(ctx, userID, statusType)
	return args.Error(0)
}

// PostRepository is a mock of repository.PostRepository.
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	args := m.Called(ctx, id)
	var post *domain.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*domain.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) FindByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error) {
	args := m.Called(ctx, authorID)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TaskRepository is a mock of repository.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	args := m.Called(ctx, id)
	var task *domain.Task
	if args.Get(0) != nil {
		task = args.Get(0).(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *TaskRepository) FindByAuthor(ctx context.Context, authorID uint) ([]domain.Task, error) {
	args := m.Called(ctx, authorID)
	var list []domain.Task
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Task)
	}
	return list, args.Error(1)
}

func (m *TaskRepository) Save(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskRepository) Update(ctx context.Context, id uint, upd repository.TaskUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

// RewardRepository is a mock of repository.RewardRepository.
type RewardRepository struct {
	mock.Mock
}

func (m *RewardRepository) Distribute(ctx context.Context, timerID uint, userIDs []uint, points float64) error {
	args := m.Called(ctx, timerID, userIDs, points)
	return args.Error(0)
}

// RoomLocker is a mock of repository.RoomLocker.
type RoomLocker struct {
	mock.Mock
}

func (m *RoomLocker) Acquire(ctx context.Context, roomID uint, ttl time.Duration) (string, error) {
	args := m.Called(ctx, roomID, ttl)
	return args.String(0), args.Error(1)
}

func (m *RoomLocker) Release(ctx context.Context, roomID uint, token string) error {
	args := m.Called(ctx, roomID, token)
	return args.Error(0)
}
