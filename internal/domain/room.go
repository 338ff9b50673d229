package domain

import "time"

// Room is a focus room owned by a host. Occupancy lives in RoomOccupant rows
// so join order and uniqueness are enforced by the database.
type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HostID     uint      `gorm:"index:idx_host;not null" json:"host_id"`
	InviteCode string    `gorm:"type:varchar(191);uniqueIndex:idx_invite_code;not null" json:"invite_code"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastActive time.Time `gorm:"index" json:"last_active"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

// RoomOccupant is one membership row. The (room_id, user_id) unique index is
// the occupant-uniqueness invariant; ascending ID is join order.
type RoomOccupant struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	RoomID    uint      `gorm:"uniqueIndex:idx_room_user;not null" json:"room_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_room_user;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
