package setup

import (
	"fmt"

	"gorm.io/gorm"

	"focushive/internal/domain"
)

// MigrateDB creates or updates the schema for every model. String columns
// that carry indexes are declared varchar(191) in the models so InnoDB index
// length limits never bite.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	err := db.AutoMigrate(
		&domain.User{},
		&domain.FriendRequest{},
		&domain.Friendship{},
		&domain.Room{},
		&domain.RoomOccupant{},
		&domain.Timer{},
		&domain.FocusScore{},
		&domain.Status{},
		&domain.Post{},
		&domain.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	return nil
}
