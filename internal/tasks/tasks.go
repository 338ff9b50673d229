// Package tasks defines the asynq task types and payloads.
package tasks

import (
	"encoding/json"
	"time"
)

// TypeTimerExpire is the durable timer-expiry job. It is enqueued when a
// timer starts, delayed by the timer's duration, and drives the
// Running -> Completed transition from the worker.
const TypeTimerExpire = "timer:expire"

// TimerExpirePayload identifies the run the job belongs to. StartedAt must
// match the timer's current run or the worker drops the job: a job scheduled
// for a run that was completed, reset and restarted must not finish the new
// run early.
type TimerExpirePayload struct {
	TimerID   uint      `json:"timer_id"`
	StartedAt time.Time `json:"started_at"`
}

// NewTimerExpirePayload serializes the expiry payload.
func NewTimerExpirePayload(timerID uint, startedAt time.Time) ([]byte, error) {
	return json.Marshal(TimerExpirePayload{TimerID: timerID, StartedAt: startedAt})
}
