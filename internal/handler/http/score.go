package http

import (
	"net/http"

	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ScoreHandler serves focus score records.
type ScoreHandler struct {
	scoreService *service.ScoreService
}

func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// Create ensures the caller has a score record, starting at zero.
func (h *ScoreHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	score, err := h.scoreService.Create(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("user_id", userID).Info("Handler.CreateScore: score record ready")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Score record created", "score": score})
}

// Get returns the score of ?username=<name>, or the caller's own score.
func (h *ScoreHandler) Get(c *gin.Context) {
	var err error
	var score interface{}

	if username := c.Query("username"); username != "" {
		score, err = h.scoreService.GetByUsername(c.Request.Context(), username)
	} else {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		score, err = h.scoreService.GetByUserID(c.Request.Context(), userID)
	}
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"score": score})
}

type UpdateScoreRequest struct {
	Points *float64 `json:"points" binding:"required"`
}

// Update adds points to the named user's score.
func (h *ScoreHandler) Update(c *gin.Context) {
	username := c.Param("username")

	var req UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateScore: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: points is required")
		return
	}

	score, err := h.scoreService.Increment(c.Request.Context(), username, *req.Points)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"username": username, "points": *req.Points}).
		Info("Handler.UpdateScore: score incremented")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Score updated", "score": score})
}

type SetScoreRequest struct {
	Score float64 `json:"score" binding:"gte=0"`
}

// Set overwrites the caller's score. Administrative correction endpoint.
func (h *ScoreHandler) Set(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SetScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.SetScore: invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	score, err := h.scoreService.Set(c.Request.Context(), userID, req.Score)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Score updated", "score": score})
}
