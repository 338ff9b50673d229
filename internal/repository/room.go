package repository

import (
	"context"

	"focushive/internal/domain"
)

// RoomRepository stores rooms and their occupant rows.
type RoomRepository interface {
	// FindByID returns the room with the given ID, or ErrRoomNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Room, error)

	// FindByHost returns the room owned by hostID, or ErrRoomNotFound. When
	// a host owns several rooms the most recently created one is returned.
	FindByHost(ctx context.Context, hostID uint) (*domain.Room, error)

	// Save creates the room when ID is zero, otherwise updates it. Invite
	// code collisions surface as ErrDuplicateEntry.
	Save(ctx context.Context, room *domain.Room) error

	// IsInviteCodeExists reports whether any room already uses code.
	IsInviteCodeExists(ctx context.Context, code string) (bool, error)

	// FindOccupants returns the occupant rows of the room in join order.
	FindOccupants(ctx context.Context, roomID uint) ([]domain.RoomOccupant, error)

	// AddOccupant appends a membership row. A duplicate (room, user) pair
	// surfaces as ErrDuplicateEntry.
	AddOccupant(ctx context.Context, occ *domain.RoomOccupant) error

	// RemoveOccupant deletes the membership row for (roomID, userID), or
	// returns ErrNotFound when the user is not an occupant.
	RemoveOccupant(ctx context.Context, roomID, userID uint) error
}
