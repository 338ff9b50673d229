package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// UserService handles user reads, profile updates and account deletion.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo}
}

// List returns every user with password hashes stripped.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		return nil, ErrInternalServer
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// GetByUsername resolves a username to its account.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("username", username).Error("Failed to find user")
		return nil, ErrInternalServer
	}
	user.Password = ""
	return user, nil
}

// UserUpdate is a partial profile update; empty fields are untouched.
type UserUpdate struct {
	Username string
	Password string
	Email    string
}

// Update applies a partial profile update to the calling user.
func (s *UserService) Update(ctx context.Context, userID uint, upd UserUpdate) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", userID)

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to find user for update")
		return nil, ErrInternalServer
	}

	if upd.Username != "" {
		user.Username = upd.Username
	}
	if upd.Email != "" {
		user.Email = upd.Email
	}
	if upd.Password != "" {
		hashed, err := hashPassword(upd.Password)
		if err != nil {
			logCtx.WithError(err).Error("Failed to hash password during update")
			return nil, ErrInternalServer
		}
		user.Password = hashed
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrRegistrationFailed
		}
		logCtx.WithError(err).Error("Failed to save user update")
		return nil, ErrInternalServer
	}

	logCtx.Info("User updated")
	user.Password = ""
	return user, nil
}

// Delete removes the calling user's account.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to delete user")
		return ErrInternalServer
	}
	logrus.WithField("user_id", userID).Info("User deleted")
	return nil
}
