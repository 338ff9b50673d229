package http

import (
	"net/http"

	"focushive/internal/domain"
	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RoomHandler serves plain room management: creation, host lookup and
// occupant membership. Focus-session flows live in FocusRoomHandler.
type RoomHandler struct {
	roomService *service.RoomService
	userService *service.UserService
}

func NewRoomHandler(roomService *service.RoomService, userService *service.UserService) *RoomHandler {
	return &RoomHandler{roomService: roomService, userService: userService}
}

type CreateRoomResponse struct {
	Message    string `json:"message"`
	RoomID     uint   `json:"room_id"`
	InviteCode string `json:"invite_code"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	logCtx := logrus.WithField("user_id", userID)

	newRoom, err := h.roomService.CreateRoom(c.Request.Context(), userID)
	if err != nil {
		logCtx.WithError(err).Error("Handler.CreateRoom: failed to create room")
		HandleServiceError(c, err)
		return
	}

	logCtx.WithFields(logrus.Fields{"room_id": newRoom.ID, "invite_code": newRoom.InviteCode}).
		Info("Handler.CreateRoom: room created")
	SuccessResponse(c, http.StatusOK, CreateRoomResponse{
		Message:    "Room created successfully",
		RoomID:     newRoom.ID,
		InviteCode: newRoom.InviteCode,
	})
}

// GetByHost looks up a room by ?host=<username>; without the parameter it
// returns the caller's own room.
func (h *RoomHandler) GetByHost(c *gin.Context) {
	hostID, ok := h.resolveHost(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetRoomByHost(c.Request.Context(), hostID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"room": room})
}

// Occupants lists the occupant user IDs of a host's room in join order.
func (h *RoomHandler) Occupants(c *gin.Context) {
	hostID, ok := h.resolveHost(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetRoomByHost(c.Request.Context(), hostID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	occupants, err := h.roomService.Occupants(c.Request.Context(), room.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"room_id": room.ID, "occupants": occupants})
}

// AddOccupant puts the named user into the caller's room without any
// friendship check. The gated variant lives on FocusRoomHandler.
func (h *RoomHandler) AddOccupant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	username := c.Param("username")
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "occupant": username})

	room, target, ok := h.roomAndTarget(c, userID, username)
	if !ok {
		return
	}

	if err := h.roomService.AddOccupant(c.Request.Context(), room.ID, target.ID); err != nil {
		logCtx.WithError(err).Warn("Handler.AddOccupant: failed")
		HandleServiceError(c, err)
		return
	}

	logCtx.WithField("room_id", room.ID).Info("Handler.AddOccupant: occupant added")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Occupant added", "room_id": room.ID})
}

// RemoveOccupant removes the named user from the caller's room.
func (h *RoomHandler) RemoveOccupant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	username := c.Param("username")
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "occupant": username})

	room, target, ok := h.roomAndTarget(c, userID, username)
	if !ok {
		return
	}

	if err := h.roomService.RemoveOccupant(c.Request.Context(), room.ID, target.ID); err != nil {
		logCtx.WithError(err).Warn("Handler.RemoveOccupant: failed")
		HandleServiceError(c, err)
		return
	}

	logCtx.WithField("room_id", room.ID).Info("Handler.RemoveOccupant: occupant removed")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Occupant removed", "room_id": room.ID})
}

func (h *RoomHandler) roomAndTarget(c *gin.Context, hostID uint, username string) (room *domain.Room, target *domain.User, ok bool) {
	room, err := h.roomService.GetRoomByHost(c.Request.Context(), hostID)
	if err != nil {
		HandleServiceError(c, err)
		return nil, nil, false
	}
	target, err = h.userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		HandleServiceError(c, err)
		return nil, nil, false
	}
	return room, target, true
}

func (h *RoomHandler) resolveHost(c *gin.Context) (uint, bool) {
	if hostUsername := c.Query("host"); hostUsername != "" {
		host, err := h.userService.GetByUsername(c.Request.Context(), hostUsername)
		if err != nil {
			HandleServiceError(c, err)
			return 0, false
		}
		return host.ID, true
	}
	return currentUserID(c)
}
