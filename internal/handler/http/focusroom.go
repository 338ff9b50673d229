package http

import (
	"net/http"

	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FocusRoomHandler serves the combined focus-session flows: room plus timer
// creation, friendship-gated membership, reward distribution and the friend
// leaderboard.
type FocusRoomHandler struct {
	focusService       *service.FocusService
	roomService        *service.RoomService
	leaderboardService *service.LeaderboardService
}

func NewFocusRoomHandler(
	focusService *service.FocusService,
	roomService *service.RoomService,
	leaderboardService *service.LeaderboardService,
) *FocusRoomHandler {
	return &FocusRoomHandler{
		focusService:       focusService,
		roomService:        roomService,
		leaderboardService: leaderboardService,
	}
}

type CreateFocusRoomRequest struct {
	DurationMinutes int `json:"duration_minutes"`
}

func (h *FocusRoomHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateFocusRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateFocusRoom: invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	room, timer, err := h.focusService.CreateFocusRoom(c.Request.Context(), userID, req.DurationMinutes)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": room.ID, "timer_id": timer.ID}).
		Info("Handler.CreateFocusRoom: focus room ready")
	SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Focus room created successfully",
		"room":    room,
		"timer":   timer,
	})
}

func (h *FocusRoomHandler) AddOccupant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	username := c.Param("username")
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "occupant": username})

	room, err := h.focusService.AddToFocusRoom(c.Request.Context(), userID, username)
	if err != nil {
		logCtx.WithError(err).Warn("Handler.AddToFocusRoom: failed")
		HandleServiceError(c, err)
		return
	}

	logCtx.WithField("room_id", room.ID).Info("Handler.AddToFocusRoom: occupant added")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Occupant added", "room_id": room.ID})
}

func (h *FocusRoomHandler) RemoveOccupant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	username := c.Param("username")
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "occupant": username})

	room, err := h.focusService.RemoveFromFocusRoom(c.Request.Context(), userID, username)
	if err != nil {
		logCtx.WithError(err).Warn("Handler.RemoveFromFocusRoom: failed")
		HandleServiceError(c, err)
		return
	}

	logCtx.WithField("room_id", room.ID).Info("Handler.RemoveFromFocusRoom: occupant removed")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Occupant removed", "room_id": room.ID})
}

// Reward distributes focus points to every occupant of the caller's room,
// provided its timer has completed.
func (h *FocusRoomHandler) Reward(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	logCtx := logrus.WithField("user_id", userID)

	room, err := h.roomService.GetRoomByHost(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	result, err := h.focusService.Reward(c.Request.Context(), room.ID)
	if err != nil {
		logCtx.WithError(err).Warn("Handler.RewardFocusRoom: failed")
		HandleServiceError(c, err)
		return
	}

	logCtx.WithFields(logrus.Fields{
		"room_id":     result.RoomID,
		"points_each": result.PointsEach,
		"occupants":   len(result.Occupants),
	}).Info("Handler.RewardFocusRoom: reward distributed")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Reward distributed", "reward": result})
}

func (h *FocusRoomHandler) Leaderboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.leaderboardService.Rank(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"leaderboard": entries})
}
