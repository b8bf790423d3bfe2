package locations

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adrg/xdg"
)

// setBaseDirs points the XDG base directories at throwaway roots so the
// tests never touch the real user directories.
func setBaseDirs(t *testing.T) (configRoot, dataRoot string) {
	t.Helper()
	configRoot = t.TempDir()
	dataRoot = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configRoot)
	t.Setenv("XDG_DATA_HOME", dataRoot)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return configRoot, dataRoot
}

func TestResolveCreatesBothDirectories(t *testing.T) {
	configRoot, dataRoot := setBaseDirs(t)

	dirs, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	wantConfig := filepath.Join(configRoot, "gondolin")
	if dirs.Config != wantConfig {
		t.Errorf("config dir = %q, want %q", dirs.Config, wantConfig)
	}
	wantData := filepath.Join(dataRoot, "gondolin")
	if dirs.Data != wantData {
		t.Errorf("data dir = %q, want %q", dirs.Data, wantData)
	}

	for _, dir := range []string{dirs.Config, dirs.Data} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%q is not a directory", dir)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != DirMode {
			t.Errorf("permissions for %q = %o, want %o", dir, info.Mode().Perm(), DirMode)
		}
	}
}

func TestResolveRecreatesMissingDirectory(t *testing.T) {
	setBaseDirs(t)

	dirs, err := Resolve()
	if err != nil {
		t.Fatalf("first Resolve() failed: %v", err)
	}

	// Simulate a half-deleted installation.
	if err := os.RemoveAll(dirs.Data); err != nil {
		t.Fatalf("failed to remove data dir: %v", err)
	}

	again, err := Resolve()
	if err != nil {
		t.Fatalf("second Resolve() failed: %v", err)
	}
	if again != dirs {
		t.Errorf("Resolve() = %+v, want %+v", again, dirs)
	}
	if _, err := os.Stat(again.Data); err != nil {
		t.Errorf("data dir was not recreated: %v", err)
	}
	if _, err := os.Stat(again.Config); err != nil {
		t.Errorf("config dir went missing: %v", err)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	setBaseDirs(t)

	first, err := Resolve()
	if err != nil {
		t.Fatalf("first Resolve() failed: %v", err)
	}
	second, err := Resolve()
	if err != nil {
		t.Fatalf("second Resolve() failed: %v", err)
	}
	if first != second {
		t.Errorf("Resolve() is not stable: %+v vs %+v", first, second)
	}
}
