package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"focushive/internal/domain"
)

// FriendRepository is a mock of repository.FriendRepository.
type FriendRepository struct {
	mock.Mock
}

func (m *FriendRepository) FindFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	var ids []uint
	if args.Get(0) != nil {
		ids = args.Get(0).([]uint)
	}
	return ids, args.Error(1)
}

func (m *FriendRepository) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *FriendRepository) SaveFriendship(ctx context.Context, f *domain.Friendship) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *FriendRepository) DeleteFriendship(ctx context.Context, a, b uint) error {
	args := m.Called(ctx, a, b)
	return args.Error(0)
}

func (m *FriendRepository) FindRequest(ctx context.Context, from, to uint) (*domain.FriendRequest, error) {
	args := m.Called(ctx, from, to)
	var req *domain.FriendRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *FriendRepository) FindRequestsInvolving(ctx context.Context, userID uint) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, userID)
	var reqs []domain.FriendRequest
	if args.Get(0) != nil {
		reqs = args.Get(0).([]domain.FriendRequest)
	}
	return reqs, args.Error(1)
}

func (m *FriendRepository) SaveRequest(ctx context.Context, req *domain.FriendRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *FriendRepository) DeleteRequest(ctx context.Context, from, to uint) error {
	args := m.Called(ctx, from, to)
	return args.Error(0)
}
