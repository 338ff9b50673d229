package domain

import "time"

// FocusScore is the accumulated focus points of one user. Created lazily the
// first time the user takes part in a rewarded session. Rewards may produce
// non-integer amounts, hence float64.
type FocusScore struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex:idx_score_user;not null" json:"user_id"`
	Score     float64   `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
