package http

import (
	"errors"
	"net/http"

	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleServiceError maps service layer errors onto HTTP status codes.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotAuthorized),
		errors.Is(err, service.ErrNotPostAuthor),
		errors.Is(err, service.ErrNotTaskAuthor):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrTimerNotFound),
		errors.Is(err, service.ErrScoreNotFound),
		errors.Is(err, service.ErrStatusNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrFriendNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRegistrationFailed),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrNotReady),
		errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrRequestAlreadySent),
		errors.Is(err, service.ErrSelfFriendship),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDuration):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
