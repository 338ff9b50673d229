package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// lockTTL bounds how long a room mutation may hold its lock. Generous so a
// slow reward sweep never loses the lock mid-flight.
const lockTTL = 10 * time.Second

// RoomService is the membership store: rooms, occupant join/leave/list. All
// occupant mutations are serialized per room through the RoomLocker.
type RoomService struct {
	roomRepo repository.RoomRepository
	locker   repository.RoomLocker
}

func NewRoomService(roomRepo repository.RoomRepository, locker repository.RoomLocker) *RoomService {
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for RoomService")
	}
	if locker == nil {
		panic("RoomLocker cannot be nil for RoomService")
	}
	return &RoomService{roomRepo: roomRepo, locker: locker}
}

// CreateRoom creates a room owned by hostID with an empty occupant set.
// Multiple calls create multiple rooms; there is deliberately no
// duplicate-host guard here.
func (s *RoomService) CreateRoom(ctx context.Context, hostID uint) (*domain.Room, error) {
	logCtx := logrus.WithField("host_id", hostID)

	code, err := s.generateUniqueInviteCode(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate unique invite code")
		return nil, ErrInternalServer
	}

	room := &domain.Room{
		HostID:     hostID,
		InviteCode: code,
		LastActive: time.Now(),
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		logCtx.WithError(err).Error("Failed to save new room")
		return nil, ErrInternalServer
	}

	logCtx.WithField("room_id", room.ID).Info("Room created")
	return room, nil
}

// GetRoomByHost looks up the room owned by hostID.
func (s *RoomService) GetRoomByHost(ctx context.Context, hostID uint) (*domain.Room, error) {
	room, err := s.roomRepo.FindByHost(ctx, hostID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logrus.WithError(err).WithField("host_id", hostID).Error("Failed to find room by host")
		return nil, ErrInternalServer
	}
	return room, nil
}

// Occupants returns the occupant user IDs of the room in join order.
func (s *RoomService) Occupants(ctx context.Context, roomID uint) ([]uint, error) {
	rows, err := s.roomRepo.FindOccupants(ctx, roomID)
	if err != nil {
		logrus.WithError(err).WithField("room_id", roomID).Error("Failed to list occupants")
		return nil, ErrInternalServer
	}
	ids := make([]uint, 0, len(rows))
	for _, occ := range rows {
		ids = append(ids, occ.UserID)
	}
	return ids, nil
}

// AddOccupant appends userID to the room's occupant sequence. Duplicate joins
// fail with ErrAlreadyMember and change nothing.
func (s *RoomService) AddOccupant(ctx context.Context, roomID, userID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": userID})

	token, err := s.locker.Acquire(ctx, roomID, lockTTL)
	if err != nil {
		logCtx.WithError(err).Error("Failed to acquire room lock")
		return ErrInternalServer
	}
	defer s.release(ctx, roomID, token)

	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Failed to load room")
		return ErrInternalServer
	}

	occ := &domain.RoomOccupant{RoomID: roomID, UserID: userID}
	if err := s.roomRepo.AddOccupant(ctx, occ); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return ErrAlreadyMember
		}
		logCtx.WithError(err).Error("Failed to add occupant")
		return ErrInternalServer
	}

	logCtx.Info("Occupant added")
	return nil
}

// RemoveOccupant removes userID from the room. Removing an absent user fails
// with ErrNotMember and changes nothing.
func (s *RoomService) RemoveOccupant(ctx context.Context, roomID, userID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": userID})

	token, err := s.locker.Acquire(ctx, roomID, lockTTL)
	if err != nil {
		logCtx.WithError(err).Error("Failed to acquire room lock")
		return ErrInternalServer
	}
	defer s.release(ctx, roomID, token)

	if err := s.roomRepo.RemoveOccupant(ctx, roomID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotMember
		}
		logCtx.WithError(err).Error("Failed to remove occupant")
		return ErrInternalServer
	}

	logCtx.Info("Occupant removed")
	return nil
}

func (s *RoomService) release(ctx context.Context, roomID uint, token string) {
	if err := s.locker.Release(ctx, roomID, token); err != nil && !errors.Is(err, repository.ErrLockNotHeld) {
		logrus.WithError(err).WithField("room_id", roomID).Warn("Failed to release room lock")
	}
}

const inviteCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateUniqueInviteCode draws 6-character codes until one is unused.
func (s *RoomService) generateUniqueInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := randomCode(6)
		if err != nil {
			return "", err
		}
		exists, err := s.roomRepo.IsInviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique invite code")
}

func randomCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteCodeCharset[int(b)%len(inviteCodeCharset)]
	}
	return string(buf), nil
}
