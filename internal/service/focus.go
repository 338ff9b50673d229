package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// FocusService composes rooms, timers, friendships and scores into the
// focus-room flows: create a room+timer pair, friendship-gated admission,
// and the completion reward.
type FocusService struct {
	rooms      *RoomService
	timers     *TimerService
	roomRepo   repository.RoomRepository
	timerRepo  repository.TimerRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	rewardRepo repository.RewardRepository
	locker     repository.RoomLocker
}

func NewFocusService(
	rooms *RoomService,
	timers *TimerService,
	roomRepo repository.RoomRepository,
	timerRepo repository.TimerRepository,
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
	rewardRepo repository.RewardRepository,
	locker repository.RoomLocker,
) *FocusService {
	if rooms == nil || timers == nil {
		panic("services cannot be nil for FocusService")
	}
	if roomRepo == nil || timerRepo == nil || friendRepo == nil || userRepo == nil || rewardRepo == nil || locker == nil {
		panic("repositories cannot be nil for FocusService")
	}
	return &FocusService{
		rooms:      rooms,
		timers:     timers,
		roomRepo:   roomRepo,
		timerRepo:  timerRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
		rewardRepo: rewardRepo,
		locker:     locker,
	}
}

// CreateFocusRoom pairs the host's room with a timer, creating whichever of
// the two does not exist yet. An existing idle timer gets the new duration.
func (s *FocusService) CreateFocusRoom(ctx context.Context, hostID uint, durationMinutes int) (*domain.Room, *domain.Timer, error) {
	logCtx := logrus.WithFields(logrus.Fields{"host_id": hostID, "duration_minutes": durationMinutes})

	if durationMinutes < 0 {
		return nil, nil, ErrInvalidDuration
	}

	room, err := s.roomRepo.FindByHost(ctx, hostID)
	if err != nil {
		if !errors.Is(err, repository.ErrRoomNotFound) {
			logCtx.WithError(err).Error("Failed to look up host room")
			return nil, nil, ErrInternalServer
		}
		room, err = s.rooms.CreateRoom(ctx, hostID)
		if err != nil {
			return nil, nil, err
		}
	}
	logCtx = logCtx.WithField("room_id", room.ID)

	timer, err := s.timerRepo.FindByRoom(ctx, room.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrTimerNotFound) {
			logCtx.WithError(err).Error("Failed to look up room timer")
			return nil, nil, ErrInternalServer
		}
		timer, err = s.timers.Create(ctx, room.ID, durationMinutes)
		if err != nil {
			return nil, nil, err
		}
		logCtx.WithField("timer_id", timer.ID).Info("Focus room created")
		return room, timer, nil
	}

	if timer.State == domain.TimerIdle && timer.DurationMinutes != durationMinutes {
		timer, err = s.timers.Update(ctx, timer.ID, &durationMinutes, nil)
		if err != nil {
			return nil, nil, err
		}
	}
	return room, timer, nil
}

// AddToFocusRoom admits username into the host's focus room, but only when
// they are a friend of the host.
func (s *FocusService) AddToFocusRoom(ctx context.Context, hostID uint, username string) (*domain.Room, error) {
	logCtx := logrus.WithFields(logrus.Fields{"host_id": hostID, "username": username})

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to resolve candidate occupant")
		return nil, ErrInternalServer
	}

	room, err := s.rooms.GetRoomByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.AreFriends(ctx, hostID, user.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to check friendship gate")
		return nil, ErrInternalServer
	}
	if !friends {
		logCtx.Warn("Focus room admission refused: not a friend of host")
		return nil, ErrNotAuthorized
	}

	if err := s.rooms.AddOccupant(ctx, room.ID, user.ID); err != nil {
		return nil, err
	}
	return room, nil
}

// RemoveFromFocusRoom removes username from the host's focus room.
func (s *FocusService) RemoveFromFocusRoom(ctx context.Context, hostID uint, username string) (*domain.Room, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalServer
	}
	room, err := s.rooms.GetRoomByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if err := s.rooms.RemoveOccupant(ctx, room.ID, user.ID); err != nil {
		return nil, err
	}
	return room, nil
}

// RewardResult summarizes one completed reward sweep.
type RewardResult struct {
	RoomID     uint    `json:"room_id"`
	TimerID    uint    `json:"timer_id"`
	Occupants  []uint  `json:"occupants"`
	PointsEach float64 `json:"points_each"`
}

// Reward credits every occupant of the room once the timer has completed,
// then resets the timer. Each occupant gains
//
//	durationMinutes * (1 + occupantCount) / 10
//
// points. The sweep runs under the room lock, and the credits plus the
// terminal Completed -> Idle reset commit in one transaction: two concurrent
// reward calls produce exactly one distribution (the loser sees ErrNotReady),
// and a failed sweep leaves the timer Completed with nothing credited so a
// retry starts clean.
func (s *FocusService) Reward(ctx context.Context, roomID uint) (*RewardResult, error) {
	logCtx := logrus.WithField("room_id", roomID)

	token, err := s.locker.Acquire(ctx, roomID, lockTTL)
	if err != nil {
		logCtx.WithError(err).Error("Failed to acquire room lock for reward")
		return nil, ErrInternalServer
	}
	defer func() {
		if err := s.locker.Release(ctx, roomID, token); err != nil && !errors.Is(err, repository.ErrLockNotHeld) {
			logCtx.WithError(err).Warn("Failed to release room lock after reward")
		}
	}()

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Failed to load room for reward")
		return nil, ErrInternalServer
	}

	timer, err := s.timerRepo.FindByRoom(ctx, room.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTimerNotFound) {
			return nil, ErrTimerNotFound
		}
		logCtx.WithError(err).Error("Failed to load timer for reward")
		return nil, ErrInternalServer
	}
	if timer.State != domain.TimerCompleted {
		return nil, ErrNotReady
	}

	occupants, err := s.roomRepo.FindOccupants(ctx, room.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list occupants for reward")
		return nil, ErrInternalServer
	}

	points := float64(timer.DurationMinutes) * (1 + float64(len(occupants))) / 10
	credited := make([]uint, 0, len(occupants))
	for _, occ := range occupants {
		credited = append(credited, occ.UserID)
	}

	if err := s.rewardRepo.Distribute(ctx, timer.ID, credited, points); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			// A concurrent reward got here first.
			return nil, ErrNotReady
		}
		logCtx.WithError(err).Error("Failed to distribute reward")
		return nil, ErrInternalServer
	}

	logCtx.WithFields(logrus.Fields{"timer_id": timer.ID, "occupants": len(credited), "points_each": points}).
		Info("Focus room rewarded")
	return &RewardResult{
		RoomID:     room.ID,
		TimerID:    timer.ID,
		Occupants:  credited,
		PointsEach: points,
	}, nil
}
