package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/taskmaster/lite/docs"
	httpHandlers "github.com/taskmaster/lite/internal/adapters/http"
	"github.com/taskmaster/lite/internal/adapters/repository"
	"github.com/taskmaster/lite/internal/application/services"
	"github.com/taskmaster/lite/internal/infrastructure/config"
	"github.com/taskmaster/lite/internal/infrastructure/database"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	db       *database.DB
	registry *prometheus.Registry
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance. Metrics are registered on registry;
// a nil registry gets a private one.
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger, registry *prometheus.Registry) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, appLogger)
	taskService := services.NewTaskService(taskRepo, appLogger)
	gameService := services.NewGameService(gameRepo, appLogger)

	// Initialize handlers
	httpLogger := appLogger.WithComponent("http")
	authHandler := httpHandlers.NewAuthHandler(authService, httpLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, httpLogger)
	gameHandler := httpHandlers.NewGameHandler(gameService, httpLogger)

	server := &Server{
		echo:     e,
		config:   cfg,
		logger:   appLogger,
		db:       db,
		registry: registry,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if cfg.Metrics.Enabled {
		if err := server.setupMetrics(); err != nil {
			return nil, err
		}
	}

	// Setup routes
	server.setupRoutes(authHandler, taskHandler, gameHandler)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			s.logger.LogHTTPRequest(
				values.Method,
				values.URI,
				values.RequestID,
				values.RemoteIP,
				values.Status,
				float64(values.Latency.Nanoseconds())/1000000,
				values.Error,
			)
			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc:  originMatcher(s.config.Security.AllowedOrigins()),
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderAccept, echo.HeaderContentType},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
		MaxAge:           s.config.Security.CORSMaxAge,
	}))

	// Rate limiting middleware
	if limit := s.config.Security.RateLimitRequests; limit > 0 {
		window := s.config.Security.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(float64(limit) / window.Seconds()),
					Burst:     limit,
					ExpiresIn: window,
				},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return echo.NewHTTPError(http.StatusForbidden, "rate limit exceeded")
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				s.logger.LogSecurityEvent("rate_limited", "", identifier, map[string]interface{}{
					"path": context.Request().URL.Path,
				})
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			},
		}))
	}

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Handler deadline, covers waiting for the store lock
	if timeout := s.config.Server.RequestTimeout; timeout > 0 {
		s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout:      timeout,
			ErrorHandler: contextErrorHandler,
		}))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, taskHandler *httpHandlers.TaskHandler, gameHandler *httpHandlers.GameHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Task routes
	s.echo.POST("/task", taskHandler.CreateTask)
	s.echo.GET("/task", taskHandler.ListTasks)
	s.echo.PUT("/task", taskHandler.UpdateTask)
	s.echo.GET("/task/:id", taskHandler.GetTask)
	s.echo.DELETE("/task/:id", taskHandler.DeleteTask)

	// Auth routes
	s.echo.POST("/register", authHandler.Register)
	s.echo.POST("/login", authHandler.Login)

	// Game routes
	s.echo.POST("/start", gameHandler.StartGame)
	s.echo.POST("/move/:id", gameHandler.MakeMove)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() error {
	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	for _, c := range []prometheus.Collector{requestsTotal, requestDuration} {
		if err := s.registry.Register(c); err != nil {
			return err
		}
	}

	s.echo.Use(metricsMiddleware(requestsTotal, requestDuration))

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
	return nil
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	var counts map[string]int
	err := s.db.View(c.Request().Context(), func(st *database.State) error {
		counts = st.Counts()
		return nil
	})
	if err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status":  "ok",
			"path":    s.db.Path(),
			"records": counts,
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_closed",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server on the configured address
func (s *Server) Start() error {
	address := s.config.Server.Addr()
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}
