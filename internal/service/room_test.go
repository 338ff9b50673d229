package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"focushive/internal/domain"
	"focushive/internal/repository/mocks"
	"focushive/internal/service"
)

func newRoomService(t *testing.T) (*service.RoomService, *mocks.RoomRepository, *mocks.RoomLocker) {
	t.Helper()
	mockRoomRepo := new(mocks.RoomRepository)
	mockLocker := new(mocks.RoomLocker)
	return service.NewRoomService(mockRoomRepo, mockLocker), mockRoomRepo, mockLocker
}

func TestRoomService_Occupants_JoinOrder(t *testing.T) {
	roomService, mockRoomRepo, _ := newRoomService(t)
	ctx := context.Background()

	// Row IDs carry the join sequence; user IDs deliberately do not.
	rows := []domain.RoomOccupant{
		{ID: 11, RoomID: 7, UserID: 5},
		{ID: 12, RoomID: 7, UserID: 2},
		{ID: 13, RoomID: 7, UserID: 9},
	}
	mockRoomRepo.On("FindOccupants", ctx, uint(7)).Return(rows, nil).Once()

	occupants, err := roomService.Occupants(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, []uint{5, 2, 9}, occupants, "occupants must come back in join order, not user-ID order")
	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Occupants_OrderSurvivesRemoval(t *testing.T) {
	roomService, mockRoomRepo, mockLocker := newRoomService(t)
	ctx := context.Background()

	mockLocker.On("Acquire", ctx, uint(7), mock.Anything).Return("tok", nil).Once()
	mockLocker.On("Release", ctx, uint(7), "tok").Return(nil).Once()
	mockRoomRepo.On("RemoveOccupant", ctx, uint(7), uint(2)).Return(nil).Once()

	require.NoError(t, roomService.RemoveOccupant(ctx, 7, 2))

	// The middle joiner is gone; the survivors keep their relative order.
	remaining := []domain.RoomOccupant{
		{ID: 11, RoomID: 7, UserID: 5},
		{ID: 13, RoomID: 7, UserID: 9},
	}
	mockRoomRepo.On("FindOccupants", ctx, uint(7)).Return(remaining, nil).Once()

	occupants, err := roomService.Occupants(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, []uint{5, 9}, occupants)
	mockRoomRepo.AssertExpectations(t)
}
