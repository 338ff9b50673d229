package http

import (
	"net/http"
	"time"

	"focushive/internal/repository"
	"focushive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TaskHandler serves per-user to-do tasks.
type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskRequest struct {
	Title string    `json:"title" binding:"required,max=200"`
	Due   time.Time `json:"due" binding:"required"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateTask: invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), userID, req.Title, req.Due)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "task_id": task.ID}).
		Info("Handler.CreateTask: task created")
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Task created successfully", "task": task})
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByAuthor(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"tasks": tasks})
}

type UpdateTaskRequest struct {
	Title     *string    `json:"title" binding:"omitempty,max=200"`
	Due       *time.Time `json:"due"`
	Completed *bool      `json:"completed"`
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateTask: invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), userID, taskID, repository.TaskUpdate{
		Title:     req.Title,
		Due:       req.Due,
		Completed: req.Completed,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": "Task updated successfully", "task": task})
}
