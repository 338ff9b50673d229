package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// StatusService handles per-user presence.
type StatusService struct {
	statusRepo repository.StatusRepository
	userRepo   repository.UserRepository
}

func NewStatusService(statusRepo repository.StatusRepository, userRepo repository.UserRepository) *StatusService {
	if statusRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for StatusService")
	}
	return &StatusService{statusRepo: statusRepo, userRepo: userRepo}
}

// Create initializes the caller's status to Online. Creating twice is a
// no-op.
func (s *StatusService) Create(ctx context.Context, userID uint) (*domain.Status, error) {
	existing, err := s.statusRepo.FindByUser(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrStatusNotFound) {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to check existing status")
		return nil, ErrInternalServer
	}

	status := &domain.Status{UserID: userID, StatusType: domain.StatusOnline}
	if err := s.statusRepo.Save(ctx, status); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create status")
		return nil, ErrInternalServer
	}
	return status, nil
}

// GetByUsername resolves a username and returns their status.
func (s *StatusService) GetByUsername(ctx context.Context, username string) (*domain.Status, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalServer
	}
	status, err := s.statusRepo.FindByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return nil, ErrStatusNotFound
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("Failed to load status")
		return nil, ErrInternalServer
	}
	return status, nil
}

// Update sets the caller's status to one of the allowed presence values.
func (s *StatusService) Update(ctx context.Context, userID uint, statusType string) (*domain.Status, error) {
	if !domain.ValidStatusType(statusType) {
		return nil, ErrInvalidStatus
	}
	if err := s.statusRepo.UpdateType(ctx, userID, statusType); err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return nil, ErrStatusNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to update status")
		return nil, ErrInternalServer
	}
	status, err := s.statusRepo.FindByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to reload status")
		return nil, ErrInternalServer
	}
	return status, nil
}
