package ports

import (
	"context"

	"github.com/taskmaster/lite/internal/domain/entities"
)

// TaskService interface for task management operations
type TaskService interface {
	CreateTask(ctx context.Context, req TaskRequest) error
	GetTask(ctx context.Context, id uint64) (entities.Task, error)
	ListTasks(ctx context.Context) ([]entities.Task, error)
	UpdateTask(ctx context.Context, req TaskRequest) error
	DeleteTask(ctx context.Context, id uint64) error
}

// AuthService interface for registration and login
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (entities.User, error)
}

// GameService interface for the word-guessing game
type GameService interface {
	StartGame(ctx context.Context, word string) (entities.GameState, error)
	MakeMove(ctx context.Context, id uint64, letter string) (entities.GameState, error)
}

// Request types

// TaskRequest is the full task sent by clients on create and update. Every
// field must be present; there is no partial update.
type TaskRequest struct {
	ID        *uint64 `json:"id" validate:"required"`
	Name      *string `json:"name" validate:"required"`
	Completed *bool   `json:"completed" validate:"required"`
}

// Task converts a validated request into an entity
func (r TaskRequest) Task() entities.Task {
	return entities.Task{ID: *r.ID, Name: *r.Name, Completed: *r.Completed}
}

// RegisterRequest is the full user record sent on registration
type RegisterRequest struct {
	ID       *uint64 `json:"id" validate:"required"`
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// User converts a validated request into an entity
func (r RegisterRequest) User() entities.User {
	return entities.User{ID: *r.ID, Username: *r.Username, Password: *r.Password}
}

// LoginRequest carries the credentials to check. Clients send the same
// user record as on registration; the id is accepted and ignored.
type LoginRequest struct {
	ID       *uint64 `json:"id"`
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}
