package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/lite/internal/domain/entities"
	"github.com/taskmaster/lite/internal/infrastructure/config"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
)

func openTestDB(t *testing.T, cfg config.StorageConfig) *DB {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "database.json")
	}
	db, err := Open(cfg, logger.NewNop(), nil)
	require.NoError(t, err)
	return db
}

func insertTask(ctx context.Context, db *DB, task entities.Task) error {
	return db.Update(ctx, func(s *State) error {
		s.Tasks.Insert(task)
		return nil
	})
}

func getTask(t *testing.T, db *DB, id uint64) (entities.Task, bool) {
	t.Helper()
	var (
		task entities.Task
		ok   bool
	)
	require.NoError(t, db.View(context.Background(), func(s *State) error {
		task, ok = s.Tasks.Get(id)
		return nil
	}))
	return task, ok
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	db := openTestDB(t, config.StorageConfig{})

	_, ok := getTask(t, db, 1)
	assert.False(t, ok)
	assert.NoError(t, db.Ping())
}

func TestOpen_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks":{"1":{"id":1,"name":"a","completed":false}`), 0o644))

	db := openTestDB(t, config.StorageConfig{Path: path})

	var n int
	require.NoError(t, db.View(context.Background(), func(s *State) error {
		n = s.Tasks.Len() + s.Users.Len() + s.Games.Len()
		return nil
	}))
	assert.Zero(t, n)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(config.StorageConfig{}, nil, nil)
	assert.Error(t, err)
}

func TestDB_UpdateWritesSnapshot(t *testing.T) {
	db := openTestDB(t, config.StorageConfig{})

	require.NoError(t, insertTask(context.Background(), db, entities.Task{ID: 7, Name: "buy milk"}))

	loaded, err := LoadSnapshot(db.Path())
	require.NoError(t, err)
	task, ok := loaded.Tasks.Get(7)
	require.True(t, ok)
	assert.Equal(t, "buy milk", task.Name)
}

func TestDB_FailedUpdateSkipsSnapshot(t *testing.T) {
	db := openTestDB(t, config.StorageConfig{})

	err := db.Update(context.Background(), func(s *State) error {
		return entities.ErrGameNotFound
	})
	assert.ErrorIs(t, err, entities.ErrGameNotFound)

	_, statErr := os.Stat(db.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestDB_ReopenRestoresState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	db := openTestDB(t, config.StorageConfig{Path: path})
	require.NoError(t, insertTask(context.Background(), db, entities.Task{ID: 1, Name: "a"}))
	require.NoError(t, db.Update(context.Background(), func(s *State) error {
		s.Users.Insert(entities.User{ID: 2, Username: "u", Password: "p"})
		s.Games.Insert(entities.NewGame(3, "go"))
		return nil
	}))
	require.NoError(t, db.Close())

	reopened := openTestDB(t, config.StorageConfig{Path: path})
	require.NoError(t, reopened.View(context.Background(), func(s *State) error {
		assert.Equal(t, map[string]int{"tasks": 1, "users": 1, "games": 1}, s.Counts())
		return nil
	}))
}

func TestDB_ConcurrentDisjointInserts(t *testing.T) {
	db := openTestDB(t, config.StorageConfig{})
	const n = 64

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(id uint64) {
			defer wg.Done()
			assert.NoError(t, insertTask(context.Background(), db, entities.Task{ID: id, Name: fmt.Sprintf("task %d", id)}))
		}(uint64(i))
	}
	wg.Wait()

	require.NoError(t, db.View(context.Background(), func(s *State) error {
		assert.Equal(t, n, s.Tasks.Len())
		return nil
	}))

	// The last save happened after the last mutation, so the file is complete too.
	loaded, err := LoadSnapshot(db.Path())
	require.NoError(t, err)
	assert.Equal(t, n, loaded.Tasks.Len())
}

func TestDB_CancelledBeforeLockHasNoEffect(t *testing.T) {
	db := openTestDB(t, config.StorageConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := insertTask(ctx, db, entities.Task{ID: 1, Name: "never"})
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := getTask(t, db, 1)
	assert.False(t, ok)
	_, statErr := os.Stat(db.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestDB_TimeoutWhileWaitingHasNoEffect(t *testing.T) {
	db := openTestDB(t, config.StorageConfig{})

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- db.Update(context.Background(), func(s *State) error {
			close(entered)
			<-release
			s.Tasks.Insert(entities.Task{ID: 1, Name: "holder"})
			return nil
		})
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := insertTask(ctx, db, entities.Task{ID: 2, Name: "waiter"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-done)

	_, ok := getTask(t, db, 1)
	assert.True(t, ok)
	_, ok = getTask(t, db, 2)
	assert.False(t, ok)
}

func TestDB_WriteFailureIsSwallowedByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "database.json")
	reg := prometheus.NewRegistry()
	db, err := Open(config.StorageConfig{Path: path}, logger.NewNop(), reg)
	require.NoError(t, err)

	require.NoError(t, insertTask(context.Background(), db, entities.Task{ID: 1, Name: "kept in memory"}))

	task, ok := getTask(t, db, 1)
	require.True(t, ok)
	assert.Equal(t, "kept in memory", task.Name)
	assert.Equal(t, float64(1), testutil.ToFloat64(db.metrics.snapshotWrites.WithLabelValues("error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(db.metrics.records.WithLabelValues("tasks")))
}

func TestDB_WriteFailureSurfacesWhenConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "database.json")
	db := openTestDB(t, config.StorageConfig{Path: path, FailOnWriteError: true})

	err := insertTask(context.Background(), db, entities.Task{ID: 1, Name: "a"})
	assert.ErrorIs(t, err, ErrSnapshotWrite)

	// The mutation itself is not rolled back.
	_, ok := getTask(t, db, 1)
	assert.True(t, ok)
}

func TestDB_Close(t *testing.T) {
	db := openTestDB(t, config.StorageConfig{})
	require.NoError(t, insertTask(context.Background(), db, entities.Task{ID: 1, Name: "a"}))

	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	assert.ErrorIs(t, db.Ping(), ErrClosed)
	assert.ErrorIs(t, insertTask(context.Background(), db, entities.Task{ID: 2}), ErrClosed)
	assert.ErrorIs(t, db.View(context.Background(), func(*State) error { return nil }), ErrClosed)

	loaded, err := LoadSnapshot(db.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Tasks.Len())
}

func TestDB_CloseFlushesEmptyStore(t *testing.T) {
	db := openTestDB(t, config.StorageConfig{})
	require.NoError(t, db.Close())

	loaded, err := LoadSnapshot(db.Path())
	require.NoError(t, err)
	assert.Zero(t, loaded.Tasks.Len())
}

func TestOpen_MetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	path := filepath.Join(t.TempDir(), "database.json")

	_, err := Open(config.StorageConfig{Path: path}, logger.NewNop(), reg)
	require.NoError(t, err)

	// A second store on the same registry would collide.
	_, err = Open(config.StorageConfig{Path: path}, logger.NewNop(), reg)
	assert.Error(t, err)
}
