package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dori/tackle/internal/config"
	"github.com/dori/tackle/internal/db"
	"github.com/dori/tackle/internal/filestore"
	"github.com/dori/tackle/internal/notify"
	"github.com/dori/tackle/internal/store"
	"github.com/gofrs/flock"
)

const (
	lockName = "tackle.lock"
	logName  = "tackle.log"
)

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	Store    *store.Store
	Notifier *notify.Notifier
	Logger   *log.Logger

	// DB is set when the sqlite backend is in use
	DB *db.DB

	lockFile *flock.Flock
	logFile  io.Closer
}

// New creates a new application instance: it takes the data directory lock,
// opens the configured backend and loads the state.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	a := &App{
		Config:   cfg,
		Notifier: notify.NewNotifier(),
	}
	a.Notifier.SetEnabled(cfg.Notifications)

	if err := a.acquireLock(); err != nil {
		return nil, err
	}

	// Log to a file; the terminal belongs to the TUI.
	f, err := os.OpenFile(filepath.Join(cfg.DataDir, logName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		a.releaseLock()
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	a.logFile = f
	a.Logger = log.New(f, "", log.LstdFlags)

	backend, err := a.openBackend(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Store = store.Open(ctx, backend,
		store.WithLogger(a.Logger),
		store.WithIDCheck(cfg.DebugIDs),
	)
	return a, nil
}

func (a *App) openBackend(ctx context.Context) (store.Backend, error) {
	switch a.Config.Backend {
	case config.BackendDiskv:
		return filestore.Open(filepath.Join(a.Config.DataDir, filestore.DirName)), nil
	default:
		database, err := db.Open(ctx, a.Config.DataDir)
		if err != nil {
			return nil, err
		}
		a.DB = database
		return database, nil
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, lockName)
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of tackle is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
