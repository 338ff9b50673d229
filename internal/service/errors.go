package service

import (
	"errors"
	"fmt"
)

// Business errors surfaced to the HTTP layer. Messages are stable so clients
// can branch on kind rather than parse prose.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrTimerNotFound   = errors.New("timer not found")
	ErrScoreNotFound   = errors.New("focus score not found")
	ErrStatusNotFound  = errors.New("status not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrRequestNotFound = errors.New("friend request not found")
	ErrFriendNotFound  = errors.New("friendship not found")

	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: username already exists")

	ErrAlreadyMember = errors.New("user is already in the room")
	ErrNotMember     = errors.New("user is not in the room")
	ErrNotAuthorized = errors.New("can only add friends of host")
	ErrNotReady      = errors.New("can't reward yet")

	ErrAlreadyFriends     = errors.New("users are already friends")
	ErrRequestAlreadySent = errors.New("friend request already pending")
	ErrSelfFriendship     = errors.New("cannot befriend yourself")

	ErrInvalidStatus   = errors.New("invalid status type")
	ErrInvalidDuration = errors.New("duration must be non-negative")
	ErrNotPostAuthor   = errors.New("not the author of this post")
	ErrNotTaskAuthor   = errors.New("not the author of this task")

	ErrInternalServer = errors.New("internal server error")
)

// Timer transition violations. All wrap ErrInvalidTransition so callers can
// match the kind while the message says which rule was broken.
var (
	ErrInvalidTransition = errors.New("invalid timer transition")
	ErrTimerNotIdle      = fmt.Errorf("%w: reset timer first", ErrInvalidTransition)
	ErrTimerNotRunning   = fmt.Errorf("%w: timer is not running", ErrInvalidTransition)
	ErrTimerNotFinished  = fmt.Errorf("%w: timer not finished", ErrInvalidTransition)
)
