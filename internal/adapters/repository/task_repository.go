package repository

import (
	"context"
	"fmt"

	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/database"
	"github.com/taskmaster/lite/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task entities.Task) error {
	err := r.db.Update(ctx, func(s *database.State) error {
		s.Tasks.Insert(task)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uint64) (entities.Task, error) {
	var (
		task  entities.Task
		found bool
	)
	err := r.db.View(ctx, func(s *database.State) error {
		task, found = s.Tasks.Get(id)
		return nil
	})
	if err != nil {
		return entities.Task{}, fmt.Errorf("get task by id: %w", err)
	}
	if !found {
		return entities.Task{}, entities.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]entities.Task, error) {
	var tasks []entities.Task
	err := r.db.View(ctx, func(s *database.State) error {
		tasks = s.Tasks.All()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update replaces the whole task; a missing id is created.
func (r *TaskRepositoryImpl) Update(ctx context.Context, task entities.Task) error {
	err := r.db.Update(ctx, func(s *database.State) error {
		s.Tasks.Update(task)
		return nil
	})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes the task. A missing id is not an error, but the snapshot
// is still rewritten.
func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uint64) error {
	err := r.db.Update(ctx, func(s *database.State) error {
		s.Tasks.Delete(id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
