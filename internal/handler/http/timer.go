package http

import (
	"net/http"

	"focushive/internal/domain"
	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TimerHandler serves the countdown timer state machine.
type TimerHandler struct {
	timerService *service.TimerService
}

func NewTimerHandler(timerService *service.TimerService) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

type CreateTimerRequest struct {
	RoomID          uint `json:"room_id" binding:"required"`
	DurationMinutes int  `json:"duration_minutes"`
}

func (h *TimerHandler) Create(c *gin.Context) {
	var req CreateTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateTimer: invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	timer, err := h.timerService.Create(c.Request.Context(), req.RoomID, req.DurationMinutes)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"timer_id": timer.ID, "room_id": req.RoomID}).
		Info("Handler.CreateTimer: timer created")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Timer created successfully", "timer": timer})
}

func (h *TimerHandler) Start(c *gin.Context) {
	timerID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	duration, err := h.timerService.Start(c.Request.Context(), timerID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"timer_id": timerID, "duration_minutes": duration}).
		Info("Handler.StartTimer: timer started")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Timer started", "duration_minutes": duration})
}

func (h *TimerHandler) Complete(c *gin.Context) {
	timerID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.timerService.Complete(c.Request.Context(), timerID); err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("timer_id", timerID).Info("Handler.CompleteTimer: timer completed")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Timer completed"})
}

func (h *TimerHandler) Reset(c *gin.Context) {
	timerID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	if err := h.timerService.Reset(c.Request.Context(), timerID); err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("timer_id", timerID).Info("Handler.ResetTimer: timer reset")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Timer reset"})
}

func (h *TimerHandler) Get(c *gin.Context) {
	timerID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	timer, err := h.timerService.Get(c.Request.Context(), timerID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"timer": timer})
}

type UpdateTimerRequest struct {
	DurationMinutes *int    `json:"duration_minutes"`
	State           *string `json:"state" binding:"omitempty,oneof=idle running completed"`
}

// Update applies a partial timer update. This bypasses transition rules and
// exists for administrative correction only.
func (h *TimerHandler) Update(c *gin.Context) {
	timerID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req UpdateTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateTimer: invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var state *domain.TimerState
	if req.State != nil {
		s := domain.TimerState(*req.State)
		state = &s
	}

	timer, err := h.timerService.Update(c.Request.Context(), timerID, req.DurationMinutes, state)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Timer updated", "timer": timer})
}
