package ports

import (
	"context"

	"github.com/taskmaster/lite/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations.
// Create and Update are both upserts.
type TaskRepository interface {
	Create(ctx context.Context, task entities.Task) error
	GetByID(ctx context.Context, id uint64) (entities.Task, error)
	List(ctx context.Context) ([]entities.Task, error)
	Update(ctx context.Context, task entities.Task) error
	Delete(ctx context.Context, id uint64) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user entities.User) error
	GetByUsername(ctx context.Context, username string) (entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
}

// GameRepository defines the interface for game data operations
type GameRepository interface {
	Create(ctx context.Context, game entities.GameState) error
	GetByID(ctx context.Context, id uint64) (entities.GameState, error)
	// Modify loads the game, applies fn and stores the result as one
	// atomic step.
	Modify(ctx context.Context, id uint64, fn func(*entities.GameState) error) (entities.GameState, error)
}
