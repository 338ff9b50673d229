package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"focushive/internal/domain"
)

// ScoreRepository is a mock of repository.ScoreRepository.
type ScoreRepository struct {
	mock.Mock
}

func (m *ScoreRepository) FindByUser(ctx context.Context, userID uint) (*domain.FocusScore, error) {
	args := m.Called(ctx, userID)
	var score *domain.FocusScore
	if args.Get(0) != nil {
		score = args.Get(0).(*domain.FocusScore)
	}
	return score, args.Error(1)
}

func (m *ScoreRepository) Save(ctx context.Context, score *domain.FocusScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *ScoreRepository) SetScore(ctx context.Context, userID uint, score float64) error {
	args := m.Called(ctx, userID, score)
	return args.Error(0)
}

func (m *ScoreRepository) Increment(ctx context.Context, userID uint, delta float64) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}
