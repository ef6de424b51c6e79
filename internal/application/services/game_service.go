package services

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
	"github.com/taskmaster/lite/internal/ports"
)

// GameService handles the word-guessing game
type GameService struct {
	gameRepo ports.GameRepository
	newID    func() uint64
	logger   *logger.Logger
}

// GameServiceOption configures a GameService
type GameServiceOption func(*GameService)

// WithIDGenerator replaces the random game id source
func WithIDGenerator(gen func() uint64) GameServiceOption {
	return func(s *GameService) {
		s.newID = gen
	}
}

// NewGameService creates a new game service
func NewGameService(gameRepo ports.GameRepository, logger *logger.Logger, opts ...GameServiceOption) *GameService {
	s := &GameService{
		gameRepo: gameRepo,
		newID:    randomID,
		logger:   logger.WithComponent("game_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// randomID takes 64 bits from a random UUID
func randomID() uint64 {
	u := uuid.New()
	return binary.BigEndian.Uint64(u[:8])
}

// StartGame creates a game for word with a fresh random id
func (s *GameService) StartGame(ctx context.Context, word string) (entities.GameState, error) {
	game := entities.NewGame(s.newID(), word)
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return entities.GameState{}, fmt.Errorf("failed to start game: %w", err)
	}

	s.logger.Infow("Game started", "game_id", game.ID)
	return game, nil
}

// MakeMove plays letter on the game with the given id
func (s *GameService) MakeMove(ctx context.Context, id uint64, letter string) (entities.GameState, error) {
	if err := entities.ValidateLetter(letter); err != nil {
		return entities.GameState{}, err
	}

	game, err := s.gameRepo.Modify(ctx, id, func(g *entities.GameState) error {
		return g.Guess(letter)
	})
	if err != nil {
		return entities.GameState{}, fmt.Errorf("failed to make move: %w", err)
	}

	s.logger.Infow("Move played", "game_id", id, "letter", letter, "incorrect_attempts", game.IncorrectAttempts)
	return game, nil
}
