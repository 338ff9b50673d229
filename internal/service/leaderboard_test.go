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

func newLeaderboardService(t *testing.T) (*service.LeaderboardService, *mocks.ScoreRepository, *mocks.FriendRepository, *mocks.UserRepository) {
	t.Helper()
	mockScoreRepo := new(mocks.ScoreRepository)
	mockFriendRepo := new(mocks.FriendRepository)
	mockUserRepo := new(mocks.UserRepository)
	return service.NewLeaderboardService(mockScoreRepo, mockFriendRepo, mockUserRepo),
		mockScoreRepo, mockFriendRepo, mockUserRepo
}

func TestLeaderboardService_Rank_OrdersByScoreDescending(t *testing.T) {
	lb, mockScoreRepo, mockFriendRepo, mockUserRepo := newLeaderboardService(t)
	ctx := context.Background()

	mockScoreRepo.On("FindByUser", ctx, uint(1)).Return(&domain.FocusScore{UserID: 1, Score: 50}, nil).Once()
	mockFriendRepo.On("FindFriendIDs", ctx, uint(1)).Return([]uint{2, 3}, nil).Once()
	mockScoreRepo.On("FindByUser", ctx, uint(2)).Return(&domain.FocusScore{UserID: 2, Score: 80}, nil).Once()
	mockScoreRepo.On("FindByUser", ctx, uint(3)).Return(&domain.FocusScore{UserID: 3, Score: 10}, nil).Once()
	mockUserRepo.On("FindByIDs", ctx, []uint{1, 2, 3}).Return([]domain.User{
		{ID: 1, Username: "self"},
		{ID: 2, Username: "f1"},
		{ID: 3, Username: "f2"},
	}, nil).Once()

	entries, err := lb.Rank(ctx, 1)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "f1", entries[0].Username)
	assert.Equal(t, 80.0, entries[0].Score)
	assert.Equal(t, "self", entries[1].Username)
	assert.Equal(t, "f2", entries[2].Username)
	mockScoreRepo.AssertExpectations(t)
}

func TestLeaderboardService_Rank_StableTiesKeepEnumerationOrder(t *testing.T) {
	lb, mockScoreRepo, mockFriendRepo, mockUserRepo := newLeaderboardService(t)
	ctx := context.Background()

	mockScoreRepo.On("FindByUser", ctx, uint(1)).Return(&domain.FocusScore{UserID: 1, Score: 42}, nil).Once()
	mockFriendRepo.On("FindFriendIDs", ctx, uint(1)).Return([]uint{2}, nil).Once()
	mockScoreRepo.On("FindByUser", ctx, uint(2)).Return(&domain.FocusScore{UserID: 2, Score: 42}, nil).Once()
	mockUserRepo.On("FindByIDs", ctx, []uint{1, 2}).Return([]domain.User{
		{ID: 1, Username: "self"},
		{ID: 2, Username: "f1"},
	}, nil).Once()

	entries, err := lb.Rank(ctx, 1)

	// Equal scores keep the requester ahead of the tied friend.
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "self", entries[0].Username)
	assert.Equal(t, "f1", entries[1].Username)
}

func TestLeaderboardService_Rank_MissingFriendScoreCountsAsZero(t *testing.T) {
	lb, mockScoreRepo, mockFriendRepo, mockUserRepo := newLeaderboardService(t)
	ctx := context.Background()

	mockScoreRepo.On("FindByUser", ctx, uint(1)).Return(&domain.FocusScore{UserID: 1, Score: 5}, nil).Once()
	mockFriendRepo.On("FindFriendIDs", ctx, uint(1)).Return([]uint{2}, nil).Once()
	mockScoreRepo.On("FindByUser", ctx, uint(2)).Return(nil, repository.ErrScoreNotFound).Once()
	mockUserRepo.On("FindByIDs", ctx, []uint{1, 2}).Return([]domain.User{
		{ID: 1, Username: "self"},
		{ID: 2, Username: "newcomer"},
	}, nil).Once()

	entries, err := lb.Rank(ctx, 1)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newcomer", entries[1].Username)
	assert.Equal(t, 0.0, entries[1].Score)
}

func TestLeaderboardService_Rank_MissingOwnScore(t *testing.T) {
	lb, mockScoreRepo, mockFriendRepo, _ := newLeaderboardService(t)
	ctx := context.Background()

	mockScoreRepo.On("FindByUser", ctx, uint(1)).Return(nil, repository.ErrScoreNotFound).Once()

	_, err := lb.Rank(ctx, 1)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrScoreNotFound))
	mockFriendRepo.AssertNotCalled(t, "FindFriendIDs", mock.Anything, mock.Anything)
}
