package repository

import (
	"context"
	"fmt"

	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/database"
	"github.com/taskmaster/lite/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create stores the user, replacing any user with the same id. Usernames
// are not checked for uniqueness.
func (r *UserRepositoryImpl) Create(ctx context.Context, user entities.User) error {
	err := r.db.Update(ctx, func(s *database.State) error {
		s.Users.Insert(user)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (entities.User, error) {
	var (
		user  entities.User
		found bool
	)
	err := r.db.View(ctx, func(s *database.State) error {
		user, found = s.FindUserByName(username)
		return nil
	})
	if err != nil {
		return entities.User{}, fmt.Errorf("get user by username: %w", err)
	}
	if !found {
		return entities.User{}, entities.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	err := r.db.View(ctx, func(s *database.State) error {
		users = s.Users.All()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
