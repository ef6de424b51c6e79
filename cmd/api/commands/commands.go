package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskmaster/lite/internal/adapters/repository"
	"github.com/taskmaster/lite/internal/application/services"
	"github.com/taskmaster/lite/internal/infrastructure/config"
	"github.com/taskmaster/lite/internal/infrastructure/database"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
	"github.com/taskmaster/lite/internal/infrastructure/server"
	"github.com/taskmaster/lite/internal/ports"
)

// Build information, set with -ldflags
var (
	Version   = "dev"
	GitCommit = "development"
	BuildDate = "unknown"
)

// BindPersistentFlags adds the flags shared by every command and binds them
// to their configuration keys
func BindPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("data", "", "Path of the snapshot file (storage.path)")
	flags.Int("port", 0, "Port to listen on (server.port)")

	_ = viper.BindPFlag("storage.path", flags.Lookup("data"))
	_ = viper.BindPFlag("server.port", flags.Lookup("port"))
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TaskMaster Lite API server",
		Long:  "Start the API server and keep the store in sync with its snapshot file until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and list users in the snapshot file",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetUint64("id")
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			return createUser(cmd, id, username, password)
		},
	}

	createUserCmd.Flags().Uint64("id", 0, "User ID (required)")
	createUserCmd.Flags().String("username", "", "Username (required)")
	createUserCmd.Flags().String("password", "", "Password (required)")
	_ = createUserCmd.MarkFlagRequired("id")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")

	listUsersCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listUsers(cmd)
		},
	}

	userCmd.AddCommand(createUserCmd, listUsersCmd)
	return userCmd
}

// NewSnapshotCommand creates the snapshot inspection command
func NewSnapshotCommand() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot file commands",
	}

	snapshotCmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Validate the snapshot file and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectSnapshot(cmd)
		},
	})

	return snapshotCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print TaskMaster Lite version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "TaskMaster Lite %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	db, err := database.Open(cfg.Storage, appLogger, registry)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Errorw("Failed to close storage", "error", err)
		}
	}()

	srv, err := server.New(cfg, db, appLogger, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	appLogger.Infow("Starting TaskMaster Lite API server",
		"address", cfg.Server.Addr(),
		"storage", cfg.Storage.Path,
		"environment", cfg.App.Environment,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// openStore opens the configured snapshot for a one-off command
func openStore() (*database.DB, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Open(cfg.Storage, appLogger, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return db, appLogger, nil
}

func createUser(cmd *cobra.Command, id uint64, username, password string) error {
	db, appLogger, err := openStore()
	if err != nil {
		return err
	}
	defer appLogger.Close()

	authService := services.NewAuthService(repository.NewUserRepository(db), appLogger)
	req := ports.RegisterRequest{ID: &id, Username: &username, Password: &password}
	if err := authService.Register(cmd.Context(), req); err != nil {
		_ = db.Close()
		return err
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "User %q created with id %d\n", username, id)
	return nil
}

func listUsers(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	state, err := database.LoadSnapshot(cfg.Storage.Path)
	if errors.Is(err, database.ErrSnapshotNotFound) {
		state = database.NewState()
	} else if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, u := range state.Users.All() {
		fmt.Fprintf(out, "%d\t%s\n", u.ID, u.Username)
	}
	return nil
}

func inspectSnapshot(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	state, err := database.LoadSnapshot(cfg.Storage.Path)
	if err != nil {
		return err
	}

	data, err := database.Encode(state, true)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s", data)
	for _, name := range []string{"tasks", "users", "games"} {
		fmt.Fprintf(out, "%s: %d\n", name, state.Counts()[name])
	}
	return nil
}
