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

func newFriendService(t *testing.T) (*service.FriendService, *mocks.FriendRepository, *mocks.UserRepository) {
	t.Helper()
	mockFriendRepo := new(mocks.FriendRepository)
	mockUserRepo := new(mocks.UserRepository)
	return service.NewFriendService(mockFriendRepo, mockUserRepo), mockFriendRepo, mockUserRepo
}

func TestFriendService_SendRequest_Success(t *testing.T) {
	friendService, mockFriendRepo, mockUserRepo := newFriendService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	mockFriendRepo.On("AreFriends", ctx, uint(1), uint(9)).Return(false, nil).Once()
	mockFriendRepo.On("FindRequest", ctx, uint(1), uint(9)).Return(nil, repository.ErrNotFound).Once()
	mockFriendRepo.On("FindRequest", ctx, uint(9), uint(1)).Return(nil, repository.ErrNotFound).Once()
	mockFriendRepo.On("SaveRequest", ctx, mock.MatchedBy(func(req *domain.FriendRequest) bool {
		return req.FromID == 1 && req.ToID == 9 && req.Status == domain.RequestPending
	})).Return(nil).Once()

	req, err := friendService.SendRequest(ctx, 1, "mia")

	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
	mockFriendRepo.AssertExpectations(t)
}

func TestFriendService_SendRequest_ToSelf(t *testing.T) {
	friendService, mockFriendRepo, mockUserRepo := newFriendService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "me").Return(&domain.User{ID: 1, Username: "me"}, nil).Once()

	_, err := friendService.SendRequest(ctx, 1, "me")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrSelfFriendship))
	mockFriendRepo.AssertNotCalled(t, "SaveRequest", mock.Anything, mock.Anything)
}

func TestFriendService_SendRequest_PendingInOtherDirection(t *testing.T) {
	friendService, mockFriendRepo, mockUserRepo := newFriendService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	mockFriendRepo.On("AreFriends", ctx, uint(1), uint(9)).Return(false, nil).Once()
	mockFriendRepo.On("FindRequest", ctx, uint(1), uint(9)).Return(nil, repository.ErrNotFound).Once()
	mockFriendRepo.On("FindRequest", ctx, uint(9), uint(1)).
		Return(&domain.FriendRequest{ID: 4, FromID: 9, ToID: 1, Status: domain.RequestPending}, nil).
		Once()

	_, err := friendService.SendRequest(ctx, 1, "mia")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRequestAlreadySent))
	mockFriendRepo.AssertNotCalled(t, "SaveRequest", mock.Anything, mock.Anything)
}

func TestFriendService_AcceptRequest_RecordsFriendship(t *testing.T) {
	friendService, mockFriendRepo, mockUserRepo := newFriendService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	mockFriendRepo.On("FindRequest", ctx, uint(9), uint(1)).
		Return(&domain.FriendRequest{ID: 4, FromID: 9, ToID: 1, Status: domain.RequestPending}, nil).
		Once()
	mockFriendRepo.On("SaveRequest", ctx, mock.MatchedBy(func(req *domain.FriendRequest) bool {
		return req.ID == 4 && req.Status == domain.RequestAccepted
	})).Return(nil).Once()
	mockFriendRepo.On("SaveFriendship", ctx, mock.MatchedBy(func(f *domain.Friendship) bool {
		return f.UserID == 9 && f.FriendID == 1
	})).Return(nil).Once()

	err := friendService.AcceptRequest(ctx, 1, "mia")

	assert.NoError(t, err)
	mockFriendRepo.AssertExpectations(t)
}

func TestFriendService_AcceptRequest_AlreadyAnswered(t *testing.T) {
	friendService, mockFriendRepo, mockUserRepo := newFriendService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	mockFriendRepo.On("FindRequest", ctx, uint(9), uint(1)).
		Return(&domain.FriendRequest{ID: 4, FromID: 9, ToID: 1, Status: domain.RequestRejected}, nil).
		Once()

	err := friendService.AcceptRequest(ctx, 1, "mia")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRequestNotFound))
	mockFriendRepo.AssertNotCalled(t, "SaveFriendship", mock.Anything, mock.Anything)
}

func TestFriendService_RemoveFriend_NotFriends(t *testing.T) {
	friendService, mockFriendRepo, mockUserRepo := newFriendService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	mockFriendRepo.On("DeleteFriendship", ctx, uint(1), uint(9)).Return(repository.ErrNotFound).Once()

	err := friendService.RemoveFriend(ctx, 1, "mia")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrFriendNotFound))
}
