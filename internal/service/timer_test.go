package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"focushive/internal/domain"
	"focushive/internal/repository"
	"focushive/internal/repository/mocks"
	"focushive/internal/service"
	"focushive/internal/tasks"
)

// stubQueue records enqueued tasks instead of talking to redis.
type stubQueue struct {
	enqueued []*asynq.Task
	err      error
}

func (q *stubQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.enqueued = append(q.enqueued, task)
	return &asynq.TaskInfo{}, nil
}

func newTimerService(t *testing.T) (*service.TimerService, *mocks.TimerRepository, *mocks.RoomRepository, *stubQueue) {
	t.Helper()
	mockTimerRepo := new(mocks.TimerRepository)
	mockRoomRepo := new(mocks.RoomRepository)
	queue := &stubQueue{}
	return service.NewTimerService(mockTimerRepo, mockRoomRepo, queue), mockTimerRepo, mockRoomRepo, queue
}

func TestTimerService_Create_Success(t *testing.T) {
	timerService, mockTimerRepo, mockRoomRepo, _ := newTimerService(t)
	ctx := context.Background()

	mockRoomRepo.On("FindByID", ctx, uint(7)).Return(&domain.Room{ID: 7, HostID: 1}, nil).Once()
	mockTimerRepo.On("Save", ctx, mock.MatchedBy(func(timer *domain.Timer) bool {
		return timer.RoomID == 7 && timer.DurationMinutes == 25 && timer.State == domain.TimerIdle
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Timer).ID = 3
		}).
		Return(nil).
		Once()

	timer, err := timerService.Create(ctx, 7, 25)

	require.NoError(t, err)
	assert.Equal(t, uint(3), timer.ID)
	assert.Equal(t, domain.TimerIdle, timer.State)
	mockTimerRepo.AssertExpectations(t)
	mockRoomRepo.AssertExpectations(t)
}

func TestTimerService_Create_NegativeDuration(t *testing.T) {
	timerService, mockTimerRepo, _, _ := newTimerService(t)

	_, err := timerService.Create(context.Background(), 7, -5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidDuration))
	mockTimerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTimerService_Start_Success_EnqueuesExpiry(t *testing.T) {
	timerService, mockTimerRepo, _, queue := newTimerService(t)
	ctx := context.Background()

	mockTimerRepo.On("FindByID", ctx, uint(3)).
		Return(&domain.Timer{ID: 3, RoomID: 7, DurationMinutes: 25, State: domain.TimerIdle}, nil).
		Once()
	mockTimerRepo.On("StartRun", ctx, uint(3), mock.AnythingOfType("time.Time")).Return(nil).Once()

	duration, err := timerService.Start(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, 25, duration)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, tasks.TypeTimerExpire, queue.enqueued[0].Type())
	mockTimerRepo.AssertExpectations(t)
}

func TestTimerService_Start_AlreadyRunning(t *testing.T) {
	timerService, mockTimerRepo, _, queue := newTimerService(t)
	ctx := context.Background()

	mockTimerRepo.On("FindByID", ctx, uint(3)).
		Return(&domain.Timer{ID: 3, RoomID: 7, DurationMinutes: 25, State: domain.TimerRunning}, nil).
		Once()
	// The conditional update sees a non-idle row and matches nothing.
	mockTimerRepo.On("StartRun", ctx, uint(3), mock.AnythingOfType("time.Time")).
		Return(repository.ErrStaleState).
		Once()

	_, err := timerService.Start(ctx, 3)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidTransition))
	assert.Empty(t, queue.enqueued, "a refused start must not schedule expiry")
	mockTimerRepo.AssertExpectations(t)
}

func TestTimerService_Start_EnqueueFailureStillStarts(t *testing.T) {
	timerService, mockTimerRepo, _, queue := newTimerService(t)
	queue.err = errors.New("redis down")
	ctx := context.Background()

	mockTimerRepo.On("FindByID", ctx, uint(3)).
		Return(&domain.Timer{ID: 3, RoomID: 7, DurationMinutes: 40, State: domain.TimerIdle}, nil).
		Once()
	mockTimerRepo.On("StartRun", ctx, uint(3), mock.AnythingOfType("time.Time")).Return(nil).Once()

	duration, err := timerService.Start(ctx, 3)

	// The client-driven Complete path still works, so the start succeeds.
	require.NoError(t, err)
	assert.Equal(t, 40, duration)
	mockTimerRepo.AssertExpectations(t)
}

func TestTimerService_Complete_Success(t *testing.T) {
	timerService, mockTimerRepo, _, _ := newTimerService(t)
	ctx := context.Background()

	mockTimerRepo.On("CompleteRun", ctx, uint(3), (*time.Time)(nil)).Return(nil).Once()

	err := timerService.Complete(ctx, 3)

	assert.NoError(t, err)
	mockTimerRepo.AssertExpectations(t)
}

func TestTimerService_Complete_NotRunning(t *testing.T) {
	timerService, mockTimerRepo, _, _ := newTimerService(t)
	ctx := context.Background()

	mockTimerRepo.On("CompleteRun", ctx, uint(3), (*time.Time)(nil)).
		Return(repository.ErrStaleState).
		Once()

	err := timerService.Complete(ctx, 3)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidTransition))
	mockTimerRepo.AssertExpectations(t)
}

func TestTimerService_Reset_NotFinished(t *testing.T) {
	timerService, mockTimerRepo, _, _ := newTimerService(t)
	ctx := context.Background()

	mockTimerRepo.On("ResetRun", ctx, uint(3)).Return(repository.ErrStaleState).Once()

	err := timerService.Reset(ctx, 3)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidTransition))
	mockTimerRepo.AssertExpectations(t)
}

func TestTimerService_Reset_Success(t *testing.T) {
	timerService, mockTimerRepo, _, _ := newTimerService(t)
	ctx := context.Background()

	mockTimerRepo.On("ResetRun", ctx, uint(3)).Return(nil).Once()

	err := timerService.Reset(ctx, 3)

	assert.NoError(t, err)
	mockTimerRepo.AssertExpectations(t)
}

func TestTimerService_Update_InvalidState(t *testing.T) {
	timerService, mockTimerRepo, _, _ := newTimerService(t)

	bad := domain.TimerState("paused")
	_, err := timerService.Update(context.Background(), 3, nil, &bad)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidTransition))
	mockTimerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
