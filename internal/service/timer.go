package service

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
	"focushive/internal/tasks"
)

// TaskQueue is the slice of asynq.Client the timer service needs; kept as an
// interface so tests can stub it.
type TaskQueue interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TimerService is the timer state machine. State moves Idle -> Running ->
// Completed -> Idle only; every transition is a compare-and-swap in the
// repository, so re-starting a running timer or resetting an unfinished one
// fails with ErrInvalidTransition instead of clobbering state.
//
// Wall-clock expiry is not enforced in-process: Start schedules a durable
// expiry job that fires after the duration, and clients may also report
// elapsed time through Complete. Whichever lands first wins the CAS.
type TimerService struct {
	timerRepo repository.TimerRepository
	roomRepo  repository.RoomRepository
	queue     TaskQueue
}

func NewTimerService(timerRepo repository.TimerRepository, roomRepo repository.RoomRepository, queue TaskQueue) *TimerService {
	if timerRepo == nil || roomRepo == nil {
		panic("repositories cannot be nil for TimerService")
	}
	if queue == nil {
		panic("TaskQueue cannot be nil for TimerService")
	}
	return &TimerService{timerRepo: timerRepo, roomRepo: roomRepo, queue: queue}
}

// Create makes an idle timer owned by roomID.
func (s *TimerService) Create(ctx context.Context, roomID uint, durationMinutes int) (*domain.Timer, error) {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "duration_minutes": durationMinutes})

	if durationMinutes < 0 {
		return nil, ErrInvalidDuration
	}
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Failed to load owning room")
		return nil, ErrInternalServer
	}

	timer := &domain.Timer{
		RoomID:          roomID,
		DurationMinutes: durationMinutes,
		State:           domain.TimerIdle,
	}
	if err := s.timerRepo.Save(ctx, timer); err != nil {
		logCtx.WithError(err).Error("Failed to save new timer")
		return nil, ErrInternalServer
	}

	logCtx.WithField("timer_id", timer.ID).Info("Timer created")
	return timer, nil
}

// Start transitions Idle -> Running, schedules the durable expiry job and
// returns the duration in minutes for the caller's countdown display.
func (s *TimerService) Start(ctx context.Context, id uint) (int, error) {
	logCtx := logrus.WithField("timer_id", id)

	timer, err := s.timerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTimerNotFound) {
			return 0, ErrTimerNotFound
		}
		logCtx.WithError(err).Error("Failed to load timer")
		return 0, ErrInternalServer
	}

	startedAt := time.Now().Truncate(time.Second)
	if err := s.timerRepo.StartRun(ctx, id, startedAt); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleState):
			return 0, ErrTimerNotIdle
		case errors.Is(err, repository.ErrTimerNotFound):
			return 0, ErrTimerNotFound
		}
		logCtx.WithError(err).Error("Failed to start timer")
		return 0, ErrInternalServer
	}

	payload, err := tasks.NewTimerExpirePayload(id, startedAt)
	if err != nil {
		logCtx.WithError(err).Error("Failed to build expiry task payload")
		return 0, ErrInternalServer
	}
	task := asynq.NewTask(tasks.TypeTimerExpire, payload)
	delay := time.Duration(timer.DurationMinutes) * time.Minute
	if _, err := s.queue.EnqueueContext(ctx, task, asynq.ProcessIn(delay), asynq.Queue("timers")); err != nil {
		// The run is already started; the client-driven Complete path still
		// works, so log and carry on rather than fail the start.
		logCtx.WithError(err).Error("Failed to enqueue timer expiry task")
	}

	logCtx.WithField("started_at", startedAt).Info("Timer started")
	return timer.DurationMinutes, nil
}

// Complete transitions Running -> Completed. This is the client-driven expiry
// signal; the scheduled job takes the same transition through the worker.
func (s *TimerService) Complete(ctx context.Context, id uint) error {
	if err := s.timerRepo.CompleteRun(ctx, id, nil); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleState):
			return ErrTimerNotRunning
		case errors.Is(err, repository.ErrTimerNotFound):
			return ErrTimerNotFound
		}
		logrus.WithError(err).WithField("timer_id", id).Error("Failed to complete timer")
		return ErrInternalServer
	}
	logrus.WithField("timer_id", id).Info("Timer completed")
	return nil
}

// Reset transitions Completed -> Idle, re-arming the timer for another run.
func (s *TimerService) Reset(ctx context.Context, id uint) error {
	if err := s.timerRepo.ResetRun(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleState):
			return ErrTimerNotFinished
		case errors.Is(err, repository.ErrTimerNotFound):
			return ErrTimerNotFound
		}
		logrus.WithError(err).WithField("timer_id", id).Error("Failed to reset timer")
		return ErrInternalServer
	}
	logrus.WithField("timer_id", id).Info("Timer reset")
	return nil
}

// Get returns the timer with the given ID.
func (s *TimerService) Get(ctx context.Context, id uint) (*domain.Timer, error) {
	timer, err := s.timerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTimerNotFound) {
			return nil, ErrTimerNotFound
		}
		logrus.WithError(err).WithField("timer_id", id).Error("Failed to load timer")
		return nil, ErrInternalServer
	}
	return timer, nil
}

// Update applies an administrative override of duration and/or state. It does
// not validate transitions; callers needing the state machine must use
// Start/Complete/Reset.
func (s *TimerService) Update(ctx context.Context, id uint, durationMinutes *int, state *domain.TimerState) (*domain.Timer, error) {
	if durationMinutes != nil && *durationMinutes < 0 {
		return nil, ErrInvalidDuration
	}
	if state != nil && !state.Valid() {
		return nil, ErrInvalidTransition
	}
	err := s.timerRepo.Update(ctx, id, repository.TimerUpdate{
		DurationMinutes: durationMinutes,
		State:           state,
	})
	if err != nil {
		if errors.Is(err, repository.ErrTimerNotFound) {
			return nil, ErrTimerNotFound
		}
		logrus.WithError(err).WithField("timer_id", id).Error("Failed to update timer")
		return nil, ErrInternalServer
	}
	return s.Get(ctx, id)
}
