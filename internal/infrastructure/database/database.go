package database

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"

	"github.com/taskmaster/lite/internal/infrastructure/config"
	"github.com/taskmaster/lite/internal/infrastructure/logger"
)

// ErrClosed is returned by operations on a closed DB
var ErrClosed = errors.New("database is closed")

// DB guards the in-memory state with a single exclusive lock and writes a
// full snapshot after every mutation, while still holding the lock.
// Reads take the same lock as writes.
type DB struct {
	lock   *semaphore.Weighted
	state  *State
	closed atomic.Bool

	path             string
	opts             SnapshotOptions
	failOnWriteError bool

	logger  *logger.Logger
	metrics *Metrics
}

// Open loads the snapshot at cfg.Path. A missing or malformed file is not
// an error: the DB starts empty and the next mutation overwrites the file.
func Open(cfg config.StorageConfig, log *logger.Logger, reg prometheus.Registerer) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register store metrics: %w", err)
	}

	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithComponent("database")

	state, err := LoadSnapshot(cfg.Path)
	switch {
	case err == nil:
		metrics.observeLoad("ok")
		log.Infow("Snapshot loaded", "path", cfg.Path, "records", state.Counts())
	case errors.Is(err, ErrSnapshotNotFound):
		metrics.observeLoad("missing")
		log.Infow("No snapshot found, starting with an empty store", "path", cfg.Path)
		state = NewState()
	default:
		metrics.observeLoad("invalid")
		log.Warnw("Failed to load snapshot, starting with an empty store", "path", cfg.Path, "error", err)
		state = NewState()
	}
	metrics.setCounts(state.Counts())

	return &DB{
		lock:  semaphore.NewWeighted(1),
		state: state,
		path:  cfg.Path,
		opts: SnapshotOptions{
			Pretty:   cfg.Pretty,
			FileMode: cfg.FileMode,
		},
		failOnWriteError: cfg.FailOnWriteError,
		logger:           log,
		metrics:          metrics,
	}, nil
}

func (db *DB) acquire(ctx context.Context) error {
	// Acquire may succeed on an uncontended lock even when ctx is done.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := db.lock.Acquire(ctx, 1); err != nil {
		return err
	}
	if db.closed.Load() {
		db.lock.Release(1)
		return ErrClosed
	}
	return nil
}

// View runs fn with the lock held. fn must not modify the state.
func (db *DB) View(ctx context.Context, fn func(*State) error) error {
	if err := db.acquire(ctx); err != nil {
		return err
	}
	defer db.lock.Release(1)

	return fn(db.state)
}

// Update runs fn with the lock held and, if fn succeeds, writes a snapshot
// before releasing the lock. ctx only bounds the wait for the lock; once
// acquired, fn and the write run to completion.
//
// A failed write is logged and dropped unless the DB was opened with
// FailOnWriteError, in which case the error is returned. Either way the
// in-memory change stays applied.
func (db *DB) Update(ctx context.Context, fn func(*State) error) error {
	if err := db.acquire(ctx); err != nil {
		return err
	}
	defer db.lock.Release(1)

	if err := fn(db.state); err != nil {
		return err
	}

	db.metrics.setCounts(db.state.Counts())
	if err := db.save(); err != nil {
		if db.failOnWriteError {
			return err
		}
	}
	return nil
}

// save must be called with the lock held
func (db *DB) save() error {
	start := time.Now()
	err := WriteSnapshot(db.path, db.state, db.opts)
	db.metrics.observeWrite(time.Since(start).Seconds(), err)
	if err != nil {
		db.logger.Errorw("Snapshot write failed", "path", db.path, "error", err)
	}
	return err
}

// Ping reports whether the DB still accepts operations
func (db *DB) Ping() error {
	if db.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Path returns the snapshot file path
func (db *DB) Path() string {
	return db.path
}

// Close waits for in-flight operations, writes a final snapshot and
// rejects all later calls. Closing twice is a no-op.
func (db *DB) Close() error {
	if err := db.lock.Acquire(context.Background(), 1); err != nil {
		return err
	}
	defer db.lock.Release(1)

	if db.closed.Load() {
		return nil
	}
	db.closed.Store(true)

	if err := db.save(); err != nil {
		return err
	}
	db.logger.Infow("Database closed", "path", db.path, "records", db.state.Counts())
	return nil
}
