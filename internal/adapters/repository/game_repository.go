package repository

import (
	"context"
	"fmt"

	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/database"
	"github.com/taskmaster/lite/internal/ports"
)

// GameRepositoryImpl implements the GameRepository interface
type GameRepositoryImpl struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) ports.GameRepository {
	return &GameRepositoryImpl{db: db}
}

func (r *GameRepositoryImpl) Create(ctx context.Context, game entities.GameState) error {
	err := r.db.Update(ctx, func(s *database.State) error {
		s.Games.Insert(game)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

func (r *GameRepositoryImpl) GetByID(ctx context.Context, id uint64) (entities.GameState, error) {
	var (
		game  entities.GameState
		found bool
	)
	err := r.db.View(ctx, func(s *database.State) error {
		game, found = s.Games.Get(id)
		return nil
	})
	if err != nil {
		return entities.GameState{}, fmt.Errorf("get game by id: %w", err)
	}
	if !found {
		return entities.GameState{}, entities.ErrGameNotFound
	}
	return game, nil
}

// Modify reads the game, applies fn and writes it back inside a single
// critical section. fn errors leave the game untouched.
func (r *GameRepositoryImpl) Modify(ctx context.Context, id uint64, fn func(*entities.GameState) error) (entities.GameState, error) {
	var game entities.GameState
	err := r.db.Update(ctx, func(s *database.State) error {
		current, ok := s.Games.Get(id)
		if !ok {
			return entities.ErrGameNotFound
		}
		if err := fn(&current); err != nil {
			return err
		}
		s.Games.Update(current)
		game = current
		return nil
	})
	if err != nil {
		return entities.GameState{}, fmt.Errorf("modify game: %w", err)
	}
	return game, nil
}
