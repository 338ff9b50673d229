package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// GormStatusRepository is the GORM implementation of StatusRepository.
type GormStatusRepository struct {
	db *gorm.DB
}

func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	if db == nil {
		panic("database connection cannot be nil for GormStatusRepository")
	}
	return &GormStatusRepository{db: db}
}

func (r *GormStatusRepository) FindByUser(ctx context.Context, userID uint) (*domain.Status, error) {
	var status domain.Status
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStatusNotFound
		}
		return nil, fmt.Errorf("gorm: find status of user %d: %w", userID, err)
	}
	return &status, nil
}

func (r *GormStatusRepository) Save(ctx context.Context, status *domain.Status) error {
	err := r.db.WithContext(ctx).Save(status).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save status of user %d: %w", status.UserID, err)
	}
	return nil
}

func (r *GormStatusRepository) UpdateType(ctx context.Context, userID uint, statusType string) error {
	result := r.db.WithContext(ctx).Model(&domain.Status{}).
		Where("user_id = ?", userID).
		Update("status_type", statusType)
	if result.Error != nil {
		return fmt.Errorf("gorm: update status of user %d: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Status{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: recheck status of user %d: %w", userID, err)
		}
		if count == 0 {
			return repository.ErrStatusNotFound
		}
	}
	return nil
}
