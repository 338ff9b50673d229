package http

import (
	"net/http"

	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatusHandler serves user presence status.
type StatusHandler struct {
	statusService *service.StatusService
}

func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// Create ensures the caller has a status record, defaulting to Online.
func (h *StatusHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.statusService.Create(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Status record created", "status": status})
}

// Get returns the status of ?username=<name>.
func (h *StatusHandler) Get(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: username query parameter is required")
		return
	}

	status, err := h.statusService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"status": status})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *StatusHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateStatus: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: status is required")
		return
	}

	status, err := h.statusService.Update(c.Request.Context(), userID, req.Status)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "status": req.Status}).
		Info("Handler.UpdateStatus: status changed")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Status updated", "status": status})
}
