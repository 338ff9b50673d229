package domain

import "time"

// Presence values a user can report.
const (
	StatusOnline  = "Online"
	StatusOffline = "Offline"
	StatusAway    = "Away"
	StatusFocus   = "Focus"
)

// ValidStatusType reports whether v is one of the allowed presence values.
func ValidStatusType(v string) bool {
	switch v {
	case StatusOnline, StatusOffline, StatusAway, StatusFocus:
		return true
	}
	return false
}

// Status is the current presence of one user.
type Status struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uint      `gorm:"uniqueIndex:idx_status_user;not null" json:"user_id"`
	StatusType string    `gorm:"type:varchar(16);not null" json:"status_type"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
