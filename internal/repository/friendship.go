package repository

import (
	"context"

	"focushive/internal/domain"
)

// FriendRepository stores the accepted-friend relation and the request
// lifecycle behind it.
type FriendRepository interface {
	// FindFriendIDs returns the IDs of every accepted friend of userID, in
	// the order the friendships were created.
	FindFriendIDs(ctx context.Context, userID uint) ([]uint, error)

	// AreFriends reports whether an accepted friendship exists between a and
	// b, in either column order.
	AreFriends(ctx context.Context, a, b uint) (bool, error)

	// SaveFriendship records an accepted friendship. Duplicate pairs surface
	// as ErrDuplicateEntry.
	SaveFriendship(ctx context.Context, f *domain.Friendship) error

	// DeleteFriendship removes the friendship between a and b in either
	// column order, or returns ErrNotFound.
	DeleteFriendship(ctx context.Context, a, b uint) error

	// FindRequest returns the request between from and to regardless of
	// status, or ErrNotFound.
	FindRequest(ctx context.Context, from, to uint) (*domain.FriendRequest, error)

	// FindRequestsInvolving returns every request where userID is sender or
	// recipient.
	FindRequestsInvolving(ctx context.Context, userID uint) ([]domain.FriendRequest, error)

	// SaveRequest creates or updates a friend request.
	SaveRequest(ctx context.Context, req *domain.FriendRequest) error

	// DeleteRequest removes the pending request from -> to, or returns
	// ErrNotFound.
	DeleteRequest(ctx context.Context, from, to uint) error
}
