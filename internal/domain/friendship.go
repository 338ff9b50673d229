package domain

import "time"

// Friend request states.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FriendRequest records a request from one user to another together with its
// outcome. Accepted requests are accompanied by a Friendship row.
type FriendRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FromID    uint      `gorm:"index:idx_request_pair;not null" json:"from_id"`
	ToID      uint      `gorm:"index:idx_request_pair;not null" json:"to_id"`
	Status    string    `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Friendship is the symmetric accepted relation between two users. A single
// row represents both directions; lookups must match either column order.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_friend_pair;not null" json:"user_id"`
	FriendID  uint      `gorm:"uniqueIndex:idx_friend_pair;not null" json:"friend_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
