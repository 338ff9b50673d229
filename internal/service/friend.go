package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// FriendService handles the friend-request lifecycle and the accepted-friend
// relation. IsFriend is the admission gate focus rooms consult.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	if friendRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for FriendService")
	}
	return &FriendService{friendRepo: friendRepo, userRepo: userRepo}
}

// IsFriend reports whether an accepted friendship exists between a and b.
func (s *FriendService) IsFriend(ctx context.Context, a, b uint) (bool, error) {
	ok, err := s.friendRepo.AreFriends(ctx, a, b)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"a": a, "b": b}).Error("Failed to check friendship")
		return false, ErrInternalServer
	}
	return ok, nil
}

// Friends returns the accepted friends of userID as user records.
func (s *FriendService) Friends(ctx context.Context, userID uint) ([]domain.User, error) {
	ids, err := s.friendRepo.FindFriendIDs(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list friends")
		return nil, ErrInternalServer
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to resolve friends")
		return nil, ErrInternalServer
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// FriendIDs returns the accepted friends of userID as bare IDs, in
// friendship-creation order. The leaderboard uses this ordering as its
// tiebreak.
func (s *FriendService) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := s.friendRepo.FindFriendIDs(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list friend ids")
		return nil, ErrInternalServer
	}
	return ids, nil
}

// SendRequest sends a friend request from -> toUsername.
func (s *FriendService) SendRequest(ctx context.Context, from uint, toUsername string) (*domain.FriendRequest, error) {
	logCtx := logrus.WithFields(logrus.Fields{"from": from, "to_username": toUsername})

	to, err := s.userRepo.FindByUsername(ctx, toUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to resolve request recipient")
		return nil, ErrInternalServer
	}
	if to.ID == from {
		return nil, ErrSelfFriendship
	}

	already, err := s.friendRepo.AreFriends(ctx, from, to.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to check existing friendship")
		return nil, ErrInternalServer
	}
	if already {
		return nil, ErrAlreadyFriends
	}

	// A pending request in either direction blocks a new one.
	for _, pair := range [][2]uint{{from, to.ID}, {to.ID, from}} {
		req, err := s.friendRepo.FindRequest(ctx, pair[0], pair[1])
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			logCtx.WithError(err).Error("Failed to check existing request")
			return nil, ErrInternalServer
		}
		if req != nil && req.Status == domain.RequestPending {
			return nil, ErrRequestAlreadySent
		}
	}

	req := &domain.FriendRequest{FromID: from, ToID: to.ID, Status: domain.RequestPending}
	if err := s.friendRepo.SaveRequest(ctx, req); err != nil {
		logCtx.WithError(err).Error("Failed to save friend request")
		return nil, ErrInternalServer
	}
	logCtx.WithField("request_id", req.ID).Info("Friend request sent")
	return req, nil
}

// RemoveRequest withdraws a pending request from -> toUsername.
func (s *FriendService) RemoveRequest(ctx context.Context, from uint, toUsername string) error {
	to, err := s.userRepo.FindByUsername(ctx, toUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalServer
	}
	if err := s.friendRepo.DeleteRequest(ctx, from, to.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		logrus.WithError(err).Error("Failed to delete friend request")
		return ErrInternalServer
	}
	return nil
}

// Requests returns every request the user sent or received.
func (s *FriendService) Requests(ctx context.Context, userID uint) ([]domain.FriendRequest, error) {
	reqs, err := s.friendRepo.FindRequestsInvolving(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list friend requests")
		return nil, ErrInternalServer
	}
	return reqs, nil
}

// AcceptRequest accepts the pending request fromUsername -> to and records
// the friendship.
func (s *FriendService) AcceptRequest(ctx context.Context, to uint, fromUsername string) error {
	return s.answerRequest(ctx, to, fromUsername, domain.RequestAccepted)
}

// RejectRequest rejects the pending request fromUsername -> to.
func (s *FriendService) RejectRequest(ctx context.Context, to uint, fromUsername string) error {
	return s.answerRequest(ctx, to, fromUsername, domain.RequestRejected)
}

func (s *FriendService) answerRequest(ctx context.Context, to uint, fromUsername, outcome string) error {
	logCtx := logrus.WithFields(logrus.Fields{"to": to, "from_username": fromUsername, "outcome": outcome})

	from, err := s.userRepo.FindByUsername(ctx, fromUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to resolve request sender")
		return ErrInternalServer
	}

	req, err := s.friendRepo.FindRequest(ctx, from.ID, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		logCtx.WithError(err).Error("Failed to find friend request")
		return ErrInternalServer
	}
	if req.Status != domain.RequestPending {
		return ErrRequestNotFound
	}

	req.Status = outcome
	if err := s.friendRepo.SaveRequest(ctx, req); err != nil {
		logCtx.WithError(err).Error("Failed to update friend request")
		return ErrInternalServer
	}

	if outcome == domain.RequestAccepted {
		f := &domain.Friendship{UserID: from.ID, FriendID: to}
		if err := s.friendRepo.SaveFriendship(ctx, f); err != nil && !errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Error("Failed to save friendship")
			return ErrInternalServer
		}
	}
	logCtx.Info("Friend request answered")
	return nil
}

// RemoveFriend dissolves the friendship between userID and friendUsername.
func (s *FriendService) RemoveFriend(ctx context.Context, userID uint, friendUsername string) error {
	friend, err := s.userRepo.FindByUsername(ctx, friendUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalServer
	}
	if err := s.friendRepo.DeleteFriendship(ctx, userID, friend.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFriendNotFound
		}
		logrus.WithError(err).Error("Failed to delete friendship")
		return ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "friend_id": friend.ID}).Info("Friendship removed")
	return nil
}
