package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// GormTimerRepository is the GORM implementation of TimerRepository. All
// three transitions go through conditionalUpdate so a timer can never leave
// a state twice: the UPDATE carries the expected prior state in its WHERE
// clause and zero affected rows surfaces as ErrStaleState.
type GormTimerRepository struct {
	db *gorm.DB
}

func NewGormTimerRepository(db *gorm.DB) *GormTimerRepository {
	if db == nil {
		panic("database connection cannot be nil for GormTimerRepository")
	}
	return &GormTimerRepository{db: db}
}

func (r *GormTimerRepository) FindByID(ctx context.Context, id uint) (*domain.Timer, error) {
	var timer domain.Timer
	err := r.db.WithContext(ctx).First(&timer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTimerNotFound
		}
		return nil, fmt.Errorf("gorm: find timer by id %d: %w", id, err)
	}
	return &timer, nil
}

func (r *GormTimerRepository) FindByRoom(ctx context.Context, roomID uint) (*domain.Timer, error) {
	var timer domain.Timer
	err := r.db.WithContext(ctx).Where("room_id = ?", roomID).First(&timer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTimerNotFound
		}
		return nil, fmt.Errorf("gorm: find timer by room %d: %w", roomID, err)
	}
	return &timer, nil
}

func (r *GormTimerRepository) Save(ctx context.Context, timer *domain.Timer) error {
	err := r.db.WithContext(ctx).Save(timer).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save timer (id: %d, room: %d): %w", timer.ID, timer.RoomID, err)
	}
	return nil
}

func (r *GormTimerRepository) StartRun(ctx context.Context, id uint, startedAt time.Time) error {
	return r.conditionalUpdate(ctx, id,
		r.db.WithContext(ctx).Model(&domain.Timer{}).
			Where("id = ? AND state = ?", id, domain.TimerIdle).
			Updates(map[string]interface{}{
				"state":      domain.TimerRunning,
				"started_at": startedAt,
			}))
}

func (r *GormTimerRepository) CompleteRun(ctx context.Context, id uint, startedAt *time.Time) error {
	q := r.db.WithContext(ctx).Model(&domain.Timer{}).
		Where("id = ? AND state = ?", id, domain.TimerRunning)
	if startedAt != nil {
		q = q.Where("started_at = ?", *startedAt)
	}
	return r.conditionalUpdate(ctx, id, q.Update("state", domain.TimerCompleted))
}

func (r *GormTimerRepository) ResetRun(ctx context.Context, id uint) error {
	return r.conditionalUpdate(ctx, id,
		r.db.WithContext(ctx).Model(&domain.Timer{}).
			Where("id = ? AND state = ?", id, domain.TimerCompleted).
			Updates(map[string]interface{}{
				"state":      domain.TimerIdle,
				"started_at": nil,
			}))
}

func (r *GormTimerRepository) Update(ctx context.Context, id uint, upd repository.TimerUpdate) error {
	fields := map[string]interface{}{}
	if upd.DurationMinutes != nil {
		fields["duration_minutes"] = *upd.DurationMinutes
	}
	if upd.State != nil {
		fields["state"] = *upd.State
	}
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&domain.Timer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("gorm: update timer %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish "absent" from "values already identical".
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Timer{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: recheck timer %d: %w", id, err)
		}
		if count == 0 {
			return repository.ErrTimerNotFound
		}
	}
	return nil
}

func (r *GormTimerRepository) conditionalUpdate(ctx context.Context, id uint, result *gorm.DB) error {
	if result.Error != nil {
		return fmt.Errorf("gorm: transition timer %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Timer{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: recheck timer %d: %w", id, err)
		}
		if count == 0 {
			return repository.ErrTimerNotFound
		}
		return repository.ErrStaleState
	}
	return nil
}
