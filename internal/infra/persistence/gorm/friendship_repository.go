package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// GormFriendRepository is the GORM implementation of FriendRepository.
// Friendship rows are stored once per pair; both lookups and deletes match
// either column order.
type GormFriendRepository struct {
	db *gorm.DB
}

func NewGormFriendRepository(db *gorm.DB) *GormFriendRepository {
	if db == nil {
		panic("database connection cannot be nil for GormFriendRepository")
	}
	return &GormFriendRepository{db: db}
}

func (r *GormFriendRepository) FindFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var rows []domain.Friendship
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find friends of user %d: %w", userID, err)
	}
	ids := make([]uint, 0, len(rows))
	for _, f := range rows {
		if f.UserID == userID {
			ids = append(ids, f.FriendID)
		} else {
			ids = append(ids, f.UserID)
		}
	}
	return ids, nil
}

func (r *GormFriendRepository) AreFriends(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count friendship (%d, %d): %w", a, b, err)
	}
	return count > 0, nil
}

func (r *GormFriendRepository) SaveFriendship(ctx context.Context, f *domain.Friendship) error {
	err := r.db.WithContext(ctx).Save(f).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save friendship (%d, %d): %w", f.UserID, f.FriendID, err)
	}
	return nil
}

func (r *GormFriendRepository) DeleteFriendship(ctx context.Context, a, b uint) error {
	result := r.db.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Delete(&domain.Friendship{})
	if result.Error != nil {
		return fmt.Errorf("gorm: delete friendship (%d, %d): %w", a, b, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *GormFriendRepository) FindRequest(ctx context.Context, from, to uint) (*domain.FriendRequest, error) {
	var req domain.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ?", from, to).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find friend request %d -> %d: %w", from, to, err)
	}
	return &req, nil
}

func (r *GormFriendRepository) FindRequestsInvolving(ctx context.Context, userID uint) ([]domain.FriendRequest, error) {
	var reqs []domain.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_id = ? OR to_id = ?", userID, userID).
		Order("id").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find friend requests involving user %d: %w", userID, err)
	}
	return reqs, nil
}

func (r *GormFriendRepository) SaveRequest(ctx context.Context, req *domain.FriendRequest) error {
	err := r.db.WithContext(ctx).Save(req).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save friend request %d -> %d: %w", req.FromID, req.ToID, err)
	}
	return nil
}

func (r *GormFriendRepository) DeleteRequest(ctx context.Context, from, to uint) error {
	result := r.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ? AND status = ?", from, to, domain.RequestPending).
		Delete(&domain.FriendRequest{})
	if result.Error != nil {
		return fmt.Errorf("gorm: delete friend request %d -> %d: %w", from, to, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
