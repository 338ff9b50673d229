package domain

import "time"

// Task is a to-do item owned by a user.
type Task struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"index:idx_task_author;not null" json:"author_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Due       time.Time `json:"due"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
