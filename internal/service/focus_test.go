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

type focusFixture struct {
	focus      *service.FocusService
	roomRepo   *mocks.RoomRepository
	timerRepo  *mocks.TimerRepository
	friendRepo *mocks.FriendRepository
	userRepo   *mocks.UserRepository
	rewardRepo *mocks.RewardRepository
	locker     *mocks.RoomLocker
}

func newFocusFixture(t *testing.T) *focusFixture {
	t.Helper()
	f := &focusFixture{
		roomRepo:   new(mocks.RoomRepository),
		timerRepo:  new(mocks.TimerRepository),
		friendRepo: new(mocks.FriendRepository),
		userRepo:   new(mocks.UserRepository),
		rewardRepo: new(mocks.RewardRepository),
		locker:     new(mocks.RoomLocker),
	}
	roomService := service.NewRoomService(f.roomRepo, f.locker)
	timerService := service.NewTimerService(f.timerRepo, f.roomRepo, &stubQueue{})
	f.focus = service.NewFocusService(
		roomService, timerService,
		f.roomRepo, f.timerRepo, f.friendRepo, f.userRepo, f.rewardRepo, f.locker,
	)
	return f
}

func (f *focusFixture) expectLock(ctx context.Context, roomID uint) {
	f.locker.On("Acquire", ctx, roomID, mock.Anything).Return("tok", nil).Once()
	f.locker.On("Release", ctx, roomID, "tok").Return(nil).Once()
}

func TestFocusService_Reward_DistributesFormulaAmount(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	room := &domain.Room{ID: 7, HostID: 1}
	timer := &domain.Timer{ID: 3, RoomID: 7, DurationMinutes: 60, State: domain.TimerCompleted}
	occupants := []domain.RoomOccupant{
		{ID: 1, RoomID: 7, UserID: 1},
		{ID: 2, RoomID: 7, UserID: 2},
		{ID: 3, RoomID: 7, UserID: 4},
	}

	f.expectLock(ctx, 7)
	f.roomRepo.On("FindByID", ctx, uint(7)).Return(room, nil).Once()
	f.timerRepo.On("FindByRoom", ctx, uint(7)).Return(timer, nil).Once()
	f.roomRepo.On("FindOccupants", ctx, uint(7)).Return(occupants, nil).Once()
	// 60 minutes with 3 occupants: 60 * (1 + 3) / 10 = 24 points each.
	f.rewardRepo.On("Distribute", ctx, uint(3), []uint{1, 2, 4}, 24.0).Return(nil).Once()

	result, err := f.focus.Reward(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, uint(7), result.RoomID)
	assert.Equal(t, uint(3), result.TimerID)
	assert.Equal(t, []uint{1, 2, 4}, result.Occupants)
	assert.Equal(t, 24.0, result.PointsEach)
	f.rewardRepo.AssertExpectations(t)
	f.locker.AssertExpectations(t)
}

func TestFocusService_Reward_TimerNotCompleted(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	f.expectLock(ctx, 7)
	f.roomRepo.On("FindByID", ctx, uint(7)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	f.timerRepo.On("FindByRoom", ctx, uint(7)).
		Return(&domain.Timer{ID: 3, RoomID: 7, DurationMinutes: 60, State: domain.TimerRunning}, nil).
		Once()

	_, err := f.focus.Reward(ctx, 7)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNotReady))
	f.rewardRepo.AssertNotCalled(t, "Distribute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFocusService_Reward_LostDistributionRace(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	f.expectLock(ctx, 7)
	f.roomRepo.On("FindByID", ctx, uint(7)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	f.timerRepo.On("FindByRoom", ctx, uint(7)).
		Return(&domain.Timer{ID: 3, RoomID: 7, DurationMinutes: 60, State: domain.TimerCompleted}, nil).
		Once()
	f.roomRepo.On("FindOccupants", ctx, uint(7)).
		Return([]domain.RoomOccupant{{ID: 1, RoomID: 7, UserID: 1}}, nil).
		Once()
	// Another sweep reset the timer first; nothing was credited here.
	f.rewardRepo.On("Distribute", ctx, uint(3), []uint{1}, 12.0).
		Return(repository.ErrStaleState).
		Once()

	_, err := f.focus.Reward(ctx, 7)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNotReady))
	f.rewardRepo.AssertExpectations(t)
}

func TestFocusService_AddToFocusRoom_FriendAdmitted(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	f.roomRepo.On("FindByHost", ctx, uint(1)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	f.friendRepo.On("AreFriends", ctx, uint(1), uint(9)).Return(true, nil).Once()
	f.expectLock(ctx, 7)
	f.roomRepo.On("FindByID", ctx, uint(7)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	f.roomRepo.On("AddOccupant", ctx, mock.MatchedBy(func(occ *domain.RoomOccupant) bool {
		return occ.RoomID == 7 && occ.UserID == 9
	})).Return(nil).Once()

	room, err := f.focus.AddToFocusRoom(ctx, 1, "mia")

	require.NoError(t, err)
	assert.Equal(t, uint(7), room.ID)
	f.roomRepo.AssertExpectations(t)
}

func TestFocusService_AddToFocusRoom_NonFriendRefused(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByUsername", ctx, "stranger").Return(&domain.User{ID: 9, Username: "stranger"}, nil).Once()
	f.roomRepo.On("FindByHost", ctx, uint(1)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	f.friendRepo.On("AreFriends", ctx, uint(1), uint(9)).Return(false, nil).Once()

	_, err := f.focus.AddToFocusRoom(ctx, 1, "stranger")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNotAuthorized))
	f.roomRepo.AssertNotCalled(t, "AddOccupant", mock.Anything, mock.Anything)
}

func TestFocusService_AddToFocusRoom_DuplicateJoin(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	f.roomRepo.On("FindByHost", ctx, uint(1)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	f.friendRepo.On("AreFriends", ctx, uint(1), uint(9)).Return(true, nil).Once()
	f.expectLock(ctx, 7)
	f.roomRepo.On("FindByID", ctx, uint(7)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	f.roomRepo.On("AddOccupant", ctx, mock.AnythingOfType("*domain.RoomOccupant")).
		Return(repository.ErrDuplicateEntry).
		Once()

	_, err := f.focus.AddToFocusRoom(ctx, 1, "mia")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrAlreadyMember))
}

func TestFocusService_RemoveFromFocusRoom_AbsentOccupant(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	f.userRepo.On("FindByUsername", ctx, "mia").Return(&domain.User{ID: 9, Username: "mia"}, nil).Once()
	f.roomRepo.On("FindByHost", ctx, uint(1)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	f.expectLock(ctx, 7)
	f.roomRepo.On("RemoveOccupant", ctx, uint(7), uint(9)).Return(repository.ErrNotFound).Once()

	_, err := f.focus.RemoveFromFocusRoom(ctx, 1, "mia")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNotMember))
}

func TestFocusService_CreateFocusRoom_ReusesExistingRoomAndTimer(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	room := &domain.Room{ID: 7, HostID: 1}
	timer := &domain.Timer{ID: 3, RoomID: 7, DurationMinutes: 25, State: domain.TimerRunning}

	f.roomRepo.On("FindByHost", ctx, uint(1)).Return(room, nil).Once()
	f.timerRepo.On("FindByRoom", ctx, uint(7)).Return(timer, nil).Once()

	gotRoom, gotTimer, err := f.focus.CreateFocusRoom(ctx, 1, 50)

	// A non-idle timer keeps its current run untouched.
	require.NoError(t, err)
	assert.Equal(t, room, gotRoom)
	assert.Equal(t, timer, gotTimer)
	f.roomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.timerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestFocusService_CreateFocusRoom_NewHostGetsRoomAndTimer(t *testing.T) {
	f := newFocusFixture(t)
	ctx := context.Background()

	f.roomRepo.On("FindByHost", ctx, uint(1)).Return(nil, repository.ErrRoomNotFound).Once()
	f.roomRepo.On("IsInviteCodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	f.roomRepo.On("Save", ctx, mock.MatchedBy(func(room *domain.Room) bool {
		return room.HostID == 1 && len(room.InviteCode) == 6
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Room).ID = 7
		}).
		Return(nil).
		Once()
	f.timerRepo.On("FindByRoom", ctx, uint(7)).Return(nil, repository.ErrTimerNotFound).Once()
	f.roomRepo.On("FindByID", ctx, uint(7)).
		Return(&domain.Room{ID: 7, HostID: 1}, nil).
		Once()
	f.timerRepo.On("Save", ctx, mock.MatchedBy(func(timer *domain.Timer) bool {
		return timer.RoomID == 7 && timer.DurationMinutes == 50 && timer.State == domain.TimerIdle
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Timer).ID = 3
		}).
		Return(nil).
		Once()

	room, timer, err := f.focus.CreateFocusRoom(ctx, 1, 50)

	require.NoError(t, err)
	assert.Equal(t, uint(7), room.ID)
	assert.Equal(t, uint(3), timer.ID)
	f.roomRepo.AssertExpectations(t)
	f.timerRepo.AssertExpectations(t)
}
