package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"focushive/internal/domain"
	"focushive/internal/repository"
	"focushive/internal/repository/mocks"
	"focushive/internal/service"
)

func newScoreService(t *testing.T) (*service.ScoreService, *mocks.ScoreRepository, *mocks.UserRepository) {
	t.Helper()
	mockScoreRepo := new(mocks.ScoreRepository)
	mockUserRepo := new(mocks.UserRepository)
	return service.NewScoreService(mockScoreRepo, mockUserRepo), mockScoreRepo, mockUserRepo
}

func TestScoreService_Increment_AddsPoints(t *testing.T) {
	scoreService, mockScoreRepo, mockUserRepo := newScoreService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	mockScoreRepo.On("Increment", ctx, uint(9), 12.5).Return(nil).Once()
	mockScoreRepo.On("FindByUser", ctx, uint(9)).
		Return(&domain.FocusScore{UserID: 9, Score: 42.5}, nil).
		Once()

	score, err := scoreService.Increment(ctx, "mia", 12.5)

	require.NoError(t, err)
	assert.Equal(t, 42.5, score.Score)
	mockScoreRepo.AssertExpectations(t)
	// The addition must happen in the repository, not via Save of a read value.
	mockScoreRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockScoreRepo.AssertNotCalled(t, "SetScore", mock.Anything, mock.Anything, mock.Anything)
}

func TestScoreService_Increment_UnknownUser(t *testing.T) {
	scoreService, mockScoreRepo, mockUserRepo := newScoreService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound).Once()

	_, err := scoreService.Increment(ctx, "ghost", 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
	mockScoreRepo.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything)
}

func TestScoreService_Create_Idempotent(t *testing.T) {
	scoreService, mockScoreRepo, _ := newScoreService(t)
	ctx := context.Background()

	existing := &domain.FocusScore{UserID: 9, Score: 30}
	mockScoreRepo.On("FindByUser", ctx, uint(9)).Return(existing, nil).Once()

	score, err := scoreService.Create(ctx, 9)

	require.NoError(t, err)
	assert.Equal(t, existing, score)
	mockScoreRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
