package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// GormRoomRepository is the GORM implementation of RoomRepository.
type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoomRepository")
	}
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by id %d: %w", id, err)
	}
	return &room, nil
}

func (r *GormRoomRepository) FindByHost(ctx context.Context, hostID uint) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("id DESC").
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by host %d: %w", hostID, err)
	}
	return &room, nil
}

func (r *GormRoomRepository) Save(ctx context.Context, room *domain.Room) error {
	err := r.db.WithContext(ctx).Save(room).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save room (id: %d, invite_code: %s): %w", room.ID, room.InviteCode, err)
	}
	return nil
}

func (r *GormRoomRepository) IsInviteCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Room{}).Where("invite_code = ?", code).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count rooms by invite code '%s': %w", code, err)
	}
	return count > 0, nil
}

// FindOccupants returns occupant rows ordered by primary key, which is join
// order.
func (r *GormRoomRepository) FindOccupants(ctx context.Context, roomID uint) ([]domain.RoomOccupant, error) {
	var occupants []domain.RoomOccupant
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id").
		Find(&occupants).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find occupants of room %d: %w", roomID, err)
	}
	return occupants, nil
}

func (r *GormRoomRepository) AddOccupant(ctx context.Context, occ *domain.RoomOccupant) error {
	err := r.db.WithContext(ctx).Create(occ).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: add occupant %d to room %d: %w", occ.UserID, occ.RoomID, err)
	}
	return nil
}

func (r *GormRoomRepository) RemoveOccupant(ctx context.Context, roomID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&domain.RoomOccupant{})
	if result.Error != nil {
		return fmt.Errorf("gorm: remove occupant %d from room %d: %w", userID, roomID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
