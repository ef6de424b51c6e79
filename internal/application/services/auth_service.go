package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
	"github.com/taskmaster/lite/internal/ports"
)

// AuthService handles registration and login. Passwords are stored and
// compared in plain text.
type AuthService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger.WithComponent("auth_service"),
	}
}

// Register stores the user. Registering an existing username creates a
// second user with that name.
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) error {
	user := req.User()
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Infow("User registered", "user_id", user.ID, "username", user.Username)
	return nil
}

// Login checks the credentials against the first user with that username.
// An unknown username and a wrong password both return
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (entities.User, error) {
	username, password := *req.Username, *req.Password

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			s.logger.Infow("Login attempt with unknown username", "username", username)
			return entities.User{}, entities.ErrInvalidCredentials
		}
		return entities.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.Matches(password) {
		s.logger.Infow("Login attempt with wrong password", "username", username)
		return entities.User{}, entities.ErrInvalidCredentials
	}

	s.logger.Infow("User logged in", "user_id", user.ID, "username", username)
	return user.Public(), nil
}
