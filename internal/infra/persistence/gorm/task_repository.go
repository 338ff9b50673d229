package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// GormTaskRepository is the GORM implementation of TaskRepository.
type GormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	if db == nil {
		panic("database connection cannot be nil for GormTaskRepository")
	}
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}
		return nil, fmt.Errorf("gorm: find task by id %d: %w", id, err)
	}
	return &task, nil
}

func (r *GormTaskRepository) FindByAuthor(ctx context.Context, authorID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("updated_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find tasks by author %d: %w", authorID, err)
	}
	return tasks, nil
}

func (r *GormTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	err := r.db.WithContext(ctx).Save(task).Error
	if err != nil {
		return fmt.Errorf("gorm: save task (id: %d): %w", task.ID, err)
	}
	return nil
}

func (r *GormTaskRepository) Update(ctx context.Context, id uint, upd repository.TaskUpdate) error {
	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Due != nil {
		fields["due"] = *upd.Due
	}
	if upd.Completed != nil {
		fields["completed"] = *upd.Completed
	}
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("gorm: update task %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: recheck task %d: %w", id, err)
		}
		if count == 0 {
			return repository.ErrTaskNotFound
		}
	}
	return nil
}
