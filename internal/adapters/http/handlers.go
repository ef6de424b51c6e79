package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/database"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
	"github.com/taskmaster/lite/internal/ports"
)

// Login response bodies. Clients match on them verbatim.
const (
	LoginSucceeded = "Logged in!"
	LoginFailed    = "Invalid username or password"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a user
// @Description Store a user record. Usernames are not required to be unique.
// @Tags auth
// @Accept json
// @Param request body ports.RegisterRequest true "User"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.Register(c.Request().Context(), req); err != nil {
		h.logger.Errorw("Register failed", "error", err)
		return mapError(err)
	}

	return c.NoContent(http.StatusOK)
}

// Login godoc
// @Summary Log in
// @Description Check a username and password pair
// @Tags auth
// @Accept json
// @Produce plain
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {string} string "Logged in!"
// @Failure 400 {string} string "Invalid username or password"
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Login(c.Request().Context(), req)
	if errors.Is(err, entities.ErrInvalidCredentials) {
		h.logger.LogSecurityEvent("login_failed", *req.Username, c.RealIP(), nil)
		return c.String(http.StatusBadRequest, LoginFailed)
	}
	if err != nil {
		h.logger.Errorw("Login failed", "error", err)
		return mapError(err)
	}

	return c.String(http.StatusOK, LoginSucceeded)
}

// mapError turns service errors into HTTP errors. Context errors are
// returned as is for the timeout middleware.
func mapError(err error) error {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Task not found").SetInternal(err)
	case errors.Is(err, entities.ErrGameNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Game not found").SetInternal(err)
	case errors.Is(err, entities.ErrInvalidLetter):
		return echo.NewHTTPError(http.StatusBadRequest, entities.ErrInvalidLetter.Error()).SetInternal(err)
	case errors.Is(err, database.ErrSnapshotWrite), errors.Is(err, database.ErrClosed):
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to persist changes").SetInternal(err)
	default:
		return err
	}
}

// parseID reads the :id path parameter
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

// ErrorResponse is the body of framework errors
type ErrorResponse struct {
	Message string `json:"message"`
}
