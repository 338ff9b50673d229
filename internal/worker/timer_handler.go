package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
	"focushive/internal/tasks"
)

// TimerExpireHandler moves a timer to completed when its countdown elapses.
type TimerExpireHandler struct {
	timerRepo repository.TimerRepository
}

func NewTimerExpireHandler(timerRepo repository.TimerRepository) *TimerExpireHandler {
	return &TimerExpireHandler{timerRepo: timerRepo}
}

// ProcessTask implements asynq.Handler. The payload carries the StartedAt
// stamp of the run that scheduled this job; a timer that has since been
// reset and restarted carries a different stamp, so the stale job is
// dropped instead of completing the wrong run.
func (h *TimerExpireHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	taskID := ""
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	currentRetry, _ := asynq.GetRetryCount(ctx)

	logCtx := logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
		"retry":     currentRetry,
	})
	logCtx.Info("Processing timer expiry task...")

	var payload tasks.TimerExpirePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx = logCtx.WithField("timer_id", payload.TimerID)

	timer, err := h.timerRepo.FindByID(ctx, payload.TimerID)
	if err != nil {
		if errors.Is(err, repository.ErrTimerNotFound) {
			logCtx.Warn("Timer no longer exists, dropping expiry task")
			return fmt.Errorf("timer %d gone: %w", payload.TimerID, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to load timer %d: %w", payload.TimerID, err)
	}

	if timer.State != domain.TimerRunning || timer.StartedAt == nil || !timer.StartedAt.Equal(payload.StartedAt) {
		logCtx.WithField("state", timer.State).Info("Timer run superseded, dropping expiry task")
		return fmt.Errorf("stale expiry for timer %d: %w", payload.TimerID, asynq.SkipRetry)
	}

	if err := h.timerRepo.CompleteRun(ctx, payload.TimerID, &payload.StartedAt); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			// Someone completed or reset it between our read and the update.
			logCtx.Info("Timer transitioned concurrently, dropping expiry task")
			return fmt.Errorf("lost completion race for timer %d: %w", payload.TimerID, asynq.SkipRetry)
		}
		return fmt.Errorf("failed to complete timer %d: %w", payload.TimerID, err)
	}

	logCtx.Info("Timer expiry processed, timer completed")
	return nil
}
