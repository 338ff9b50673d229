package http

import (
	"net/http"

	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FriendHandler serves the friend request lifecycle and the friend list.
type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	friends, err := h.friendService.Friends(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"friends": friends})
}

func (h *FriendHandler) RemoveFriend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	friendUsername := c.Param("friend")

	if err := h.friendService.RemoveFriend(c.Request.Context(), userID, friendUsername); err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "friend": friendUsername}).
		Info("Handler.RemoveFriend: friendship removed")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Friend removed successfully"})
}

func (h *FriendHandler) ListRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.friendService.Requests(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	toUsername := c.Param("to")

	request, err := h.friendService.SendRequest(c.Request.Context(), userID, toUsername)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "to": toUsername}).
		Info("Handler.SendRequest: friend request sent")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Friend request sent", "request": request})
}

func (h *FriendHandler) RemoveRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	toUsername := c.Param("to")

	if err := h.friendService.RemoveRequest(c.Request.Context(), userID, toUsername); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Friend request withdrawn"})
}

func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	fromUsername := c.Param("from")

	if err := h.friendService.AcceptRequest(c.Request.Context(), userID, fromUsername); err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "from": fromUsername}).
		Info("Handler.AcceptRequest: friend request accepted")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Friend request accepted"})
}

func (h *FriendHandler) RejectRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	fromUsername := c.Param("from")

	if err := h.friendService.RejectRequest(c.Request.Context(), userID, fromUsername); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Friend request rejected"})
}
