// Package app ties the credential manager together. It resolves the
// per-user directories, loads the configuration, opens the database,
// holds the single-instance lock for the duration of a command and
// guarantees that the database is synced and the lock released on
// every exit path once the lock is held.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/needlesslygrim/Locket/internal/web"
	"github.com/needlesslygrim/Locket/pkg/config"
	"github.com/needlesslygrim/Locket/pkg/lock"
	"github.com/needlesslygrim/Locket/pkg/locations"
	"github.com/needlesslygrim/Locket/pkg/store"
)

// File names looked up inside the resolved directories. The lock file
// lives in the system temporary directory instead so it is shared by
// every invocation on the machine.
const (
	ConfigFileName   = "gondolin.toml"
	DatabaseFileName = "gondolin.db"
	LockFileName     = "gondolin.lck"
)

// ErrAborted indicates the user declined the confirmation prompt of a
// destructive command.
var ErrAborted = errors.New("aborted by user")

// Prompter is the interactive I/O the commands depend on. The terminal
// package provides the real implementation; tests script their own.
type Prompter interface {
	PromptConfig(defaultDBPath string) (config.Config, error)
	PromptLogin() (store.Login, error)
	PromptName(label string) (string, error)
	Confirm(question string) (bool, error)
}

// App runs the credential manager's commands.
type App struct {
	Prompter Prompter
	// Out receives user-facing output.
	Out io.Writer
	// LockPath is where the single-instance lock lives.
	LockPath string
	// Dirs overrides directory resolution when non-nil.
	Dirs *locations.Dirs
	// ServeLogger overrides the logger the serve command builds.
	ServeLogger *zap.Logger
}

// New returns an App with the default wiring for a real invocation.
func New(pr Prompter) *App {
	return &App{
		Prompter: pr,
		Out:      os.Stdout,
		LockPath: filepath.Join(os.TempDir(), LockFileName),
	}
}

// Init creates the configuration file and an empty database. It is the
// only entry point that skips the single-instance lock: there is no
// database to protect yet.
func (a *App) Init() error {
	dirs, err := a.resolveDirs()
	if err != nil {
		return fmt.Errorf("failed to resolve project directories: %w", err)
	}

	confPath := filepath.Join(dirs.Config, ConfigFileName)
	defaultDB := filepath.Join(dirs.Data, DatabaseFileName)

	cfg, err := config.InitInteractive(a.Prompter, confPath, defaultDB)
	if err != nil {
		return fmt.Errorf("failed to initialise the config file: %w", err)
	}
	if _, err := store.Init(cfg.Path); err != nil {
		return fmt.Errorf("failed to initialise the database: %w", err)
	}

	fmt.Fprintln(a.Out, "Successfully initialised a database and configuration file")
	return nil
}

// Execute runs op under the single-instance lock. Once the lock is
// held, the database is synced and the lock released no matter how the
// operation itself fares; cleanup failures are reported alongside the
// operation's own error instead of masking it.
func (a *App) Execute(op Operation) (err error) {
	dirs, err := a.resolveDirs()
	if err != nil {
		return fmt.Errorf("failed to resolve project directories: %w", err)
	}

	confPath := filepath.Join(dirs.Config, ConfigFileName)
	defaultDB := filepath.Join(dirs.Data, DatabaseFileName)

	cfg, err := config.OpenInteractive(a.Prompter, confPath, defaultDB)
	if err != nil {
		return fmt.Errorf("failed to open the config file: %w", err)
	}

	db, err := store.Open(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open the existing database: %w", err)
	}

	handle, err := lock.Acquire(a.LockPath)
	if err != nil {
		if errors.Is(err, lock.ErrAlreadyRunning) {
			return err
		}
		return fmt.Errorf("failed to acquire the instance lock: %w", err)
	}

	defer func() {
		var syncErr, releaseErr error
		if e := db.Sync(); e != nil {
			syncErr = fmt.Errorf("failed to sync the database to disk: %w", e)
		}
		// Sync comes first: even a vanished lock must not stop the
		// database from reaching the disk.
		if e := handle.Release(); e != nil {
			if errors.Is(e, lock.ErrVanished) {
				releaseErr = e
			} else {
				releaseErr = fmt.Errorf("failed to release the instance lock: %w", e)
			}
		}
		err = errors.Join(err, syncErr, releaseErr)
	}()

	return a.dispatch(op, cfg, db)
}

func (a *App) dispatch(op Operation, cfg config.Config, db *store.Database) error {
	switch op := op.(type) {
	case NewOp:
		if err := a.addLogin(db); err != nil {
			return fmt.Errorf("failed to add a new login to the database: %w", err)
		}
		return nil
	case QueryOp:
		a.query(db, op.Name)
		return nil
	case RemoveOp:
		if err := a.removeLogin(db); err != nil {
			return fmt.Errorf("failed to remove a login from the database: %w", err)
		}
		return nil
	case ServeOp:
		if err := a.serve(cfg, db); err != nil {
			return fmt.Errorf("failed to serve the database: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unhandled operation %T", op)
	}
}

func (a *App) addLogin(db *store.Database) error {
	login, err := a.Prompter.PromptLogin()
	if err != nil {
		return err
	}
	if err := db.Add(login); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Added login %q\n", login.Name)
	return nil
}

func (a *App) query(db *store.Database, name string) {
	if name == "" {
		logins := db.List()
		if len(logins) == 0 {
			fmt.Fprintln(a.Out, "No logins stored yet")
			return
		}
		for _, l := range logins {
			fmt.Fprintf(a.Out, "%s (%s)\n", l.Name, l.Username)
		}
		return
	}

	login, ok := db.Get(name)
	if !ok {
		fmt.Fprintf(a.Out, "No login named %q\n", name)
		return
	}
	a.printLogin(login)
}

func (a *App) printLogin(l store.Login) {
	fmt.Fprintf(a.Out, "Name:     %s\n", l.Name)
	fmt.Fprintf(a.Out, "Username: %s\n", l.Username)
	fmt.Fprintf(a.Out, "Secret:   %s\n", l.Secret)
	if l.URL != "" {
		fmt.Fprintf(a.Out, "URL:      %s\n", l.URL)
	}
	fmt.Fprintf(a.Out, "Created:  %s\n", l.CreatedAt.Format(time.RFC3339))
}

func (a *App) removeLogin(db *store.Database) error {
	name, err := a.Prompter.PromptName("Name of the login to remove")
	if err != nil {
		return err
	}

	login, ok := db.Get(name)
	if !ok {
		return store.ErrLoginNotFound
	}

	confirmed, err := a.Prompter.Confirm(fmt.Sprintf("Remove login %q (username %s)?", login.Name, login.Username))
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrAborted
	}

	if _, err := db.Remove(name); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Removed login %q\n", login.Name)
	return nil
}

func (a *App) serve(cfg config.Config, db *store.Database) error {
	logger := a.ServeLogger
	if logger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return web.Serve(ctx, logger, db, cfg.Port)
}

func (a *App) resolveDirs() (locations.Dirs, error) {
	if a.Dirs != nil {
		return *a.Dirs, nil
	}
	return locations.Resolve()
}
