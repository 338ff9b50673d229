package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// GormScoreRepository is the GORM implementation of ScoreRepository.
type GormScoreRepository struct {
	db *gorm.DB
}

func NewGormScoreRepository(db *gorm.DB) *GormScoreRepository {
	if db == nil {
		panic("database connection cannot be nil for GormScoreRepository")
	}
	return &GormScoreRepository{db: db}
}

func (r *GormScoreRepository) FindByUser(ctx context.Context, userID uint) (*domain.FocusScore, error) {
	var score domain.FocusScore
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrScoreNotFound
		}
		return nil, fmt.Errorf("gorm: find score of user %d: %w", userID, err)
	}
	return &score, nil
}

func (r *GormScoreRepository) Save(ctx context.Context, score *domain.FocusScore) error {
	err := r.db.WithContext(ctx).Save(score).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save score of user %d: %w", score.UserID, err)
	}
	return nil
}

func (r *GormScoreRepository) SetScore(ctx context.Context, userID uint, val float64) error {
	result := r.db.WithContext(ctx).Model(&domain.FocusScore{}).
		Where("user_id = ?", userID).
		Update("score", val)
	if result.Error != nil {
		return fmt.Errorf("gorm: set score of user %d: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.FocusScore{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: recheck score of user %d: %w", userID, err)
		}
		if count == 0 {
			return repository.ErrScoreNotFound
		}
	}
	return nil
}

// Increment adds delta in the database.
func (r *GormScoreRepository) Increment(ctx context.Context, userID uint, delta float64) error {
	if err := incrementScore(r.db.WithContext(ctx), userID, delta); err != nil {
		return fmt.Errorf("gorm: %w", err)
	}
	return nil
}

// incrementScore adds delta on db, which may be a transaction handle. A user
// with no score row yet gets one created at delta; the insert races against
// concurrent creators, so a duplicate falls back to the in-place addition.
func incrementScore(db *gorm.DB, userID uint, delta float64) error {
	result := db.Model(&domain.FocusScore{}).
		Where("user_id = ?", userID).
		Update("score", gorm.Expr("score + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("increment score of user %d: %w", userID, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	err := db.Create(&domain.FocusScore{UserID: userID, Score: delta}).Error
	if err == nil {
		return nil
	}
	if !isDuplicateEntry(err) {
		return fmt.Errorf("create score of user %d: %w", userID, err)
	}
	result = db.Model(&domain.FocusScore{}).
		Where("user_id = ?", userID).
		Update("score", gorm.Expr("score + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("increment score of user %d after create race: %w", userID, result.Error)
	}
	return nil
}
