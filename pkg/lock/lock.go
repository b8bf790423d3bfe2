// Package lock enforces the single-instance rule with an exclusively
// created lock file. Whoever creates the file owns the lock; a second
// process fails immediately instead of blocking.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Sentinel errors for lock operations
var (
	// ErrAlreadyRunning indicates another process holds the lock.
	ErrAlreadyRunning = errors.New("lock: already held by another instance")
	// ErrVanished indicates the lock file disappeared before release,
	// meaning some other process interfered with it.
	ErrVanished = errors.New("lock: tried to remove the lock file, but it was already gone")
)

// FileMode restricts the lock file to the owning user.
const FileMode = 0600

// Handle represents an acquired lock. Release must be called exactly
// once when the protected work is finished; further calls are no-ops.
type Handle struct {
	path     string
	released bool
}

// Acquire creates the lock file at path with exclusive-create
// semantics. It never blocks: if the file already exists the attempt
// fails with ErrAlreadyRunning.
func Acquire(path string) (*Handle, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("lock: create %s: %w", path, err)
	}
	// The file's existence is the lock; the descriptor itself carries
	// no state worth holding on to.
	_ = f.Close()
	return &Handle{path: path}, nil
}

// Path returns the location of the lock file.
func (h *Handle) Path() string {
	return h.path
}

// Release removes the lock file. If the file has vanished since
// Acquire, Release reports ErrVanished so the caller can warn about
// outside interference.
func (h *Handle) Release() error {
	if h.released {
		return nil
	}
	h.released = true
	if err := os.Remove(h.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrVanished
		}
		return fmt.Errorf("lock: remove %s: %w", h.path, err)
	}
	return nil
}
