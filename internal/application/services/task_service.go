package services

import (
	"context"
	"fmt"

	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
	"github.com/taskmaster/lite/internal/ports"
)

// TaskService handles task-related operations
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger.WithComponent("task_service"),
	}
}

// CreateTask stores a new task, overwriting any task with the same id
func (s *TaskService) CreateTask(ctx context.Context, req ports.TaskRequest) error {
	task := req.Task()
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID)
	return nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uint64) (entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return entities.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks returns every task in no particular order
func (s *TaskService) ListTasks(ctx context.Context) ([]entities.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask replaces the stored task with req
func (s *TaskService) UpdateTask(ctx context.Context, req ports.TaskRequest) error {
	task := req.Task()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "completed", task.Completed)
	return nil
}

// DeleteTask deletes a task if it exists
func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Infow("Task deleted", "task_id", id)
	return nil
}
