package service

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"focushive/internal/repository"
)

// LeaderboardEntry is one row of a ranking.
type LeaderboardEntry struct {
	UserID   uint    `json:"user_id"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

// LeaderboardService assembles the friend leaderboard of a user.
type LeaderboardService struct {
	scoreRepo  repository.ScoreRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

func NewLeaderboardService(scoreRepo repository.ScoreRepository, friendRepo repository.FriendRepository, userRepo repository.UserRepository) *LeaderboardService {
	if scoreRepo == nil || friendRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for LeaderboardService")
	}
	return &LeaderboardService{scoreRepo: scoreRepo, friendRepo: friendRepo, userRepo: userRepo}
}

// Rank returns the requesting user and their friends ordered by score,
// highest first. The requester must have a score record; a friend without
// one ranks at zero instead of failing the whole board. Ties keep the
// enumeration order: requester first, then friends in friendship order.
func (s *LeaderboardService) Rank(ctx context.Context, userID uint) ([]LeaderboardEntry, error) {
	logCtx := logrus.WithField("user_id", userID)

	own, err := s.scoreRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		logCtx.WithError(err).Error("Failed to load own score")
		return nil, ErrInternalServer
	}

	friendIDs, err := s.friendRepo.FindFriendIDs(ctx, userID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list friends for leaderboard")
		return nil, ErrInternalServer
	}

	entries := make([]LeaderboardEntry, 0, len(friendIDs)+1)
	entries = append(entries, LeaderboardEntry{UserID: userID, Score: own.Score})
	for _, fid := range friendIDs {
		score, err := s.scoreRepo.FindByUser(ctx, fid)
		switch {
		case err == nil:
			entries = append(entries, LeaderboardEntry{UserID: fid, Score: score.Score})
		case errors.Is(err, repository.ErrScoreNotFound):
			entries = append(entries, LeaderboardEntry{UserID: fid, Score: 0})
		default:
			logCtx.WithError(err).WithField("friend_id", fid).Error("Failed to load friend score")
			return nil, ErrInternalServer
		}
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		logCtx.WithError(err).Error("Failed to resolve leaderboard usernames")
		return nil, ErrInternalServer
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	for i := range entries {
		entries[i].Username = names[entries[i].UserID]
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries, nil
}
