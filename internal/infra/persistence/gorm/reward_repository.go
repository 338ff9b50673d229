package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// GormRewardRepository distributes rewards in a single database transaction.
// The credits and the Completed -> Idle reset commit together, so a crash
// mid-sweep leaves the timer Completed with no occupant credited and a retry
// starts from scratch. The conditional reset makes the distribution
// at-most-once per completed run.
type GormRewardRepository struct {
	db *gorm.DB
}

func NewGormRewardRepository(db *gorm.DB) *GormRewardRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRewardRepository")
	}
	return &GormRewardRepository{db: db}
}

func (r *GormRewardRepository) Distribute(ctx context.Context, timerID uint, userIDs []uint, points float64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, userID := range userIDs {
			if err := incrementScore(tx, userID, points); err != nil {
				return err
			}
		}

		result := tx.Model(&domain.Timer{}).
			Where("id = ? AND state = ?", timerID, domain.TimerCompleted).
			Updates(map[string]interface{}{
				"state":      domain.TimerIdle,
				"started_at": nil,
			})
		if result.Error != nil {
			return fmt.Errorf("reset timer %d: %w", timerID, result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrStaleState
		}
		return nil
	})
	if err != nil {
		if err == repository.ErrStaleState {
			return repository.ErrStaleState
		}
		return fmt.Errorf("gorm: distribute reward for timer %d: %w", timerID, err)
	}
	return nil
}
