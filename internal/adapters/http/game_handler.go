package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/lite/internal/infrastructure/logger"
	"github.com/taskmaster/lite/internal/ports"
)

// GameHandler handles word-guessing game requests
type GameHandler struct {
	gameService ports.GameService
	logger      *logger.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService ports.GameService, logger *logger.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// StartGame godoc
// @Summary Start a game
// @Description Start a game for the word sent as a JSON string
// @Tags games
// @Accept json
// @Produce json
// @Param word body string true "Word to guess"
// @Success 200 {object} entities.GameState
// @Failure 400 {object} ErrorResponse
// @Router /start [post]
func (h *GameHandler) StartGame(c echo.Context) error {
	word, err := bindString(c)
	if err != nil {
		return err
	}

	game, err := h.gameService.StartGame(c.Request().Context(), word)
	if err != nil {
		h.logger.Errorw("Start game failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, game)
}

// MakeMove godoc
// @Summary Guess a letter
// @Description Play one letter, sent as a JSON string, on the game
// @Tags games
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param letter body string true "Letter"
// @Success 200 {object} entities.GameState
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /move/{id} [post]
func (h *GameHandler) MakeMove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	letter, err := bindString(c)
	if err != nil {
		return err
	}

	game, err := h.gameService.MakeMove(c.Request().Context(), id, letter)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, game)
}

// bindString decodes a body holding a single JSON string. An empty body
// and null are rejected.
func bindString(c echo.Context) (string, error) {
	var s *string
	if err := (&echo.DefaultBinder{}).BindBody(c, &s); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if s == nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Request body must be a JSON string")
	}
	return *s, nil
}
