package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"focushive/internal/domain"
)

// RoomRepository is a mock of repository.RoomRepository.
type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	args := m.Called(ctx, id)
	var room *domain.Room
	if args.Get(0) != nil {
		room = args.Get(0).(*domain.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepository) FindByHost(ctx context.Context, hostID uint) (*domain.Room, error) {
	args := m.Called(ctx, hostID)
	var room *domain.Room
	if args.Get(0) != nil {
		room = args.Get(0).(*domain.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepository) Save(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *RoomRepository) IsInviteCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *RoomRepository) FindOccupants(ctx context.Context, roomID uint) ([]domain.RoomOccupant, error) {
	args := m.Called(ctx, roomID)
	var occs []domain.RoomOccupant
	if args.Get(0) != nil {
		occs = args.Get(0).([]domain.RoomOccupant)
	}
	return occs, args.Error(1)
}

func (m *RoomRepository) AddOccupant(ctx context.Context, occ *domain.RoomOccupant) error {
	args := m.Called(ctx, occ)
	return args.Error(0)
}

func (m *RoomRepository) RemoveOccupant(ctx context.Context, roomID, userID uint) error {
	args := m.Called(ctx, roomID, userID)
	return args.Error(0)
}
