package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/lite/internal/adapters/repository"
	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/config"
	"github.com/taskmaster/lite/internal/infrastructure/database"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
	"github.com/taskmaster/lite/internal/ports"
)

func openDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(config.StorageConfig{Path: filepath.Join(t.TempDir(), "database.json")}, logger.NewNop(), nil)
	require.NoError(t, err)
	return db
}

func taskReq(id uint64, name string, completed bool) ports.TaskRequest {
	return ports.TaskRequest{ID: &id, Name: &name, Completed: &completed}
}

func TestTaskService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewTaskRepository(openDB(t)), logger.NewNop())

	require.NoError(t, svc.CreateTask(ctx, taskReq(7, "buy milk", false)))

	task, err := svc.GetTask(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, entities.Task{ID: 7, Name: "buy milk", Completed: false}, task)

	require.NoError(t, svc.UpdateTask(ctx, taskReq(7, "buy milk", true)))

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	require.NoError(t, svc.DeleteTask(ctx, 7))

	_, err = svc.GetTask(ctx, 7)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	tasks, err = svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_UpdateDoesNotMerge(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewTaskRepository(openDB(t)), logger.NewNop())

	require.NoError(t, svc.CreateTask(ctx, taskReq(1, "a", true)))
	require.NoError(t, svc.UpdateTask(ctx, taskReq(1, "b", false)))

	task, err := svc.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entities.Task{ID: 1, Name: "b", Completed: false}, task)
}

func TestTaskService_DeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(repository.NewTaskRepository(openDB(t)), logger.NewNop())
	require.NoError(t, svc.CreateTask(ctx, taskReq(1, "a", false)))

	assert.NoError(t, svc.DeleteTask(ctx, 99))

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repository.NewUserRepository(openDB(t)), logger.NewNop())

	id, username, password := uint64(1), "alice", "hunter2"
	require.NoError(t, svc.Register(ctx, ports.RegisterRequest{ID: &id, Username: &username, Password: &password}))

	login := func(u, p string) (entities.User, error) {
		return svc.Login(ctx, ports.LoginRequest{Username: &u, Password: &p})
	}

	user, err := login("alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), user.ID)
	assert.Empty(t, user.Password)

	_, wrongPassword := login("alice", "nope")
	_, unknownUser := login("mallory", "hunter2")
	assert.ErrorIs(t, wrongPassword, entities.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, entities.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_DuplicateUsernamesAllowed(t *testing.T) {
	ctx := context.Background()
	users := repository.NewUserRepository(openDB(t))
	svc := NewAuthService(users, logger.NewNop())

	name, pw := "bob", "same"
	for _, id := range []uint64{1, 2} {
		id := id
		require.NoError(t, svc.Register(ctx, ports.RegisterRequest{ID: &id, Username: &name, Password: &pw}))
	}

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Login(ctx, ports.LoginRequest{Username: &name, Password: &pw})
	assert.NoError(t, err)
}

func TestGameService_StartAndMove(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(repository.NewGameRepository(openDB(t)), logger.NewNop(),
		WithIDGenerator(func() uint64 { return 42 }))

	game, err := svc.StartGame(ctx, "gopher")
	require.NoError(t, err)
	assert.Equal(t, entities.GameState{ID: 42, Word: "gopher", GuessedLetters: []string{}}, game)

	game, err = svc.MakeMove(ctx, 42, "o")
	require.NoError(t, err)
	assert.Equal(t, []string{"o"}, game.GuessedLetters)
	assert.Equal(t, uint8(0), game.IncorrectAttempts)
	assert.Equal(t, "Guessed letter: o", game.LastMove)

	game, err = svc.MakeMove(ctx, 42, "z")
	require.NoError(t, err)
	assert.Equal(t, []string{"o", "z"}, game.GuessedLetters)
	assert.Equal(t, uint8(1), game.IncorrectAttempts)
	assert.Equal(t, "Guessed letter: z", game.LastMove)
}

func TestGameService_MoveErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(repository.NewGameRepository(openDB(t)), logger.NewNop(),
		WithIDGenerator(func() uint64 { return 1 }))
	_, err := svc.StartGame(ctx, "go")
	require.NoError(t, err)

	_, err = svc.MakeMove(ctx, 2, "g")
	assert.ErrorIs(t, err, entities.ErrGameNotFound)

	_, err = svc.MakeMove(ctx, 1, "go")
	assert.ErrorIs(t, err, entities.ErrInvalidLetter)

	_, err = svc.MakeMove(ctx, 1, "")
	assert.ErrorIs(t, err, entities.ErrInvalidLetter)
}

func TestGameService_ConcurrentMovesAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(repository.NewGameRepository(openDB(t)), logger.NewNop(),
		WithIDGenerator(func() uint64 { return 9 }))
	_, err := svc.StartGame(ctx, "a")
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.MakeMove(ctx, 9, "b")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	game, err := svc.MakeMove(ctx, 9, "a")
	require.NoError(t, err)
	assert.Len(t, game.GuessedLetters, n+1)
	assert.Equal(t, uint8(n), game.IncorrectAttempts)
}

func TestRandomID_Varies(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		seen[randomID()] = true
	}
	assert.Len(t, seen, 100)
}
