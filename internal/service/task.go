package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// TaskService handles per-user to-do tasks.
type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	if taskRepo == nil {
		panic("TaskRepository cannot be nil for TaskService")
	}
	return &TaskService{taskRepo: taskRepo}
}

// Create adds a task for authorID.
func (s *TaskService) Create(ctx context.Context, authorID uint, title string, due time.Time) (*domain.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	task := &domain.Task{AuthorID: authorID, Title: title, Due: due}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		logrus.WithError(err).WithField("author_id", authorID).Error("Failed to save task")
		return nil, ErrInternalServer
	}
	return task, nil
}

// ListByAuthor returns the tasks of authorID, most recently updated first.
func (s *TaskService) ListByAuthor(ctx context.Context, authorID uint) ([]domain.Task, error) {
	tasks, err := s.taskRepo.FindByAuthor(ctx, authorID)
	if err != nil {
		logrus.WithError(err).WithField("author_id", authorID).Error("Failed to list tasks")
		return nil, ErrInternalServer
	}
	return tasks, nil
}

// Update applies a partial update to a task owned by userID.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, upd repository.TaskUpdate) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		logrus.WithError(err).WithField("task_id", taskID).Error("Failed to load task")
		return nil, ErrInternalServer
	}
	if task.AuthorID != userID {
		return nil, ErrNotTaskAuthor
	}

	if err := s.taskRepo.Update(ctx, taskID, upd); err != nil {
		logrus.WithError(err).WithField("task_id", taskID).Error("Failed to update task")
		return nil, ErrInternalServer
	}
	task, err = s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, ErrInternalServer
	}
	return task, nil
}
