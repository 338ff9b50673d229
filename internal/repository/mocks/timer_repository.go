package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// TimerRepository is a mock of repository.TimerRepository.
type TimerRepository struct {
	mock.Mock
}

func (m *TimerRepository) FindByID(ctx context.Context, id uint) (*domain.Timer, error) {
	args := m.Called(ctx, id)
	var timer *domain.Timer
	if args.Get(0) != nil {
		timer = args.Get(0).(*domain.Timer)
	}
	return timer, args.Error(1)
}

func (m *TimerRepository) FindByRoom(ctx context.Context, roomID uint) (*domain.Timer, error) {
	args := m.Called(ctx, roomID)
	var timer *domain.Timer
	if args.Get(0) != nil {
		timer = args.Get(0).(*domain.Timer)
	}
	return timer, args.Error(1)
}

func (m *TimerRepository) Save(ctx context.Context, timer *domain.Timer) error {
	args := m.Called(ctx, timer)
	return args.Error(0)
}

func (m *TimerRepository) StartRun(ctx context.Context, id uint, startedAt time.Time) error {
	args := m.Called(ctx, id, startedAt)
	return args.Error(0)
}

func (m *TimerRepository) CompleteRun(ctx context.Context, id uint, startedAt *time.Time) error {
	args := m.Called(ctx, id, startedAt)
	return args.Error(0)
}

func (m *TimerRepository) ResetRun(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TimerRepository) Update(ctx context.Context, id uint, upd repository.TimerUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}
