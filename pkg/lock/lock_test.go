package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "gondolin.lck")
}

func TestAcquireCreatesLockFile(t *testing.T) {
	path := lockPath(t)

	h, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	if h.Path() != path {
		t.Errorf("Path() = %q, want %q", h.Path(), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("lock file missing after Acquire: %v", err)
	}

	if err := h.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("lock file still present after Release: %v", err)
	}
}

func TestAcquireFailsWhenHeld(t *testing.T) {
	path := lockPath(t)

	h, err := Acquire(path)
	if err != nil {
		t.Fatalf("first Acquire() failed: %v", err)
	}
	defer h.Release()

	if _, err := Acquire(path); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Acquire() = %v, want ErrAlreadyRunning", err)
	}
}

func TestAcquireAfterRelease(t *testing.T) {
	path := lockPath(t)

	h, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	if err := h.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}

	h2, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() after Release() failed: %v", err)
	}
	if err := h2.Release(); err != nil {
		t.Fatalf("second Release() failed: %v", err)
	}
}

func TestAcquireUnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "gondolin.lck")

	_, err := Acquire(path)
	if err == nil {
		t.Fatal("Acquire() in a missing directory succeeded")
	}
	if errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Acquire() = ErrAlreadyRunning, want a create error")
	}
}

func TestReleaseVanished(t *testing.T) {
	path := lockPath(t)

	h, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove lock file out of band: %v", err)
	}

	if err := h.Release(); !errors.Is(err, ErrVanished) {
		t.Fatalf("Release() = %v, want ErrVanished", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	path := lockPath(t)

	h, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	if err := h.Release(); err != nil {
		t.Fatalf("first Release() failed: %v", err)
	}
	if err := h.Release(); err != nil {
		t.Errorf("second Release() = %v, want nil", err)
	}
}
