package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// ScoreService handles direct focus-score reads and writes. Reward credits
// go through FocusService, not here.
type ScoreService struct {
	scoreRepo repository.ScoreRepository
	userRepo  repository.UserRepository
}

func NewScoreService(scoreRepo repository.ScoreRepository, userRepo repository.UserRepository) *ScoreService {
	if scoreRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for ScoreService")
	}
	return &ScoreService{scoreRepo: scoreRepo, userRepo: userRepo}
}

// Create initializes a zero score for userID. Creating twice is a no-op.
func (s *ScoreService) Create(ctx context.Context, userID uint) (*domain.FocusScore, error) {
	existing, err := s.scoreRepo.FindByUser(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrScoreNotFound) {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to check existing score")
		return nil, ErrInternalServer
	}

	score := &domain.FocusScore{UserID: userID, Score: 0}
	if err := s.scoreRepo.Save(ctx, score); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			// Lost a create race; the record exists now.
			return s.GetByUserID(ctx, userID)
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to create score")
		return nil, ErrInternalServer
	}
	logrus.WithField("user_id", userID).Info("Focus score created")
	return score, nil
}

// GetByUsername resolves a username and returns their score record.
func (s *ScoreService) GetByUsername(ctx context.Context, username string) (*domain.FocusScore, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalServer
	}
	return s.GetByUserID(ctx, user.ID)
}

// GetByUserID returns the score record of userID.
func (s *ScoreService) GetByUserID(ctx context.Context, userID uint) (*domain.FocusScore, error) {
	score, err := s.scoreRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load score")
		return nil, ErrInternalServer
	}
	return score, nil
}

// Increment adds points to the score of username, creating the record at
// that value when they have none yet, and returns the updated record.
func (s *ScoreService) Increment(ctx context.Context, username string, points float64) (*domain.FocusScore, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalServer
	}

	if err := s.scoreRepo.Increment(ctx, user.ID, points); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("Failed to increment score")
		return nil, ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "points": points}).Info("Focus score incremented")
	return s.GetByUserID(ctx, user.ID)
}

// Set overwrites the caller's score.
func (s *ScoreService) Set(ctx context.Context, userID uint, value float64) (*domain.FocusScore, error) {
	if err := s.scoreRepo.SetScore(ctx, userID, value); err != nil {
		if errors.Is(err, repository.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to set score")
		return nil, ErrInternalServer
	}
	return s.GetByUserID(ctx, userID)
}
