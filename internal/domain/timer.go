package domain

import "time"

// TimerState is the countdown state of a focus-room timer.
type TimerState string

const (
	TimerIdle      TimerState = "idle"
	TimerRunning   TimerState = "running"
	TimerCompleted TimerState = "completed"
)

// Valid reports whether s is one of the known timer states.
func (s TimerState) Valid() bool {
	switch s {
	case TimerIdle, TimerRunning, TimerCompleted:
		return true
	}
	return false
}

// Timer is the countdown resource associated 1:1 with a room.
//
// State only moves idle -> running -> completed -> idle; every transition is
// a conditional update on the expected prior state, so concurrent writers
// cannot double-apply one. StartedAt identifies the current run: the expiry
// job carries it and refuses to complete a run it does not belong to.
type Timer struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RoomID          uint       `gorm:"uniqueIndex:idx_timer_room;not null" json:"room_id"`
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	State           TimerState `gorm:"type:varchar(16);not null;default:idle" json:"state"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"-"`
}
