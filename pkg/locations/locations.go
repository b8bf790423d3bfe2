// Package locations resolves the per-user configuration and data
// directories that hold the credential database and its configuration
// file, creating them on first use.
package locations

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Application is the fixed identity the directories are derived from.
// Under the XDG base-directory conventions the identity collapses to a
// single lowercased directory name.
const Application = "Gondolin"

// Directory permissions
const (
	// DirMode restricts the directories to the owning user.
	DirMode = 0700
)

// Dirs holds the resolved absolute directories for the current user.
type Dirs struct {
	// Config is the directory the configuration file lives in.
	Config string
	// Data is the directory the database lives in by default.
	Data string
}

// Resolve derives the configuration and data directories from the
// application identity and guarantees both exist. If either directory
// is missing, both are (re)created in lockstep so a fresh machine and a
// half-deleted installation end up in the same state.
func Resolve() (Dirs, error) {
	name := strings.ToLower(Application)
	d := Dirs{
		Config: filepath.Join(xdg.ConfigHome, name),
		Data:   filepath.Join(xdg.DataHome, name),
	}

	confExists, err := dirExists(d.Config)
	if err != nil {
		return Dirs{}, fmt.Errorf("locations: stat config directory: %w", err)
	}
	dataExists, err := dirExists(d.Data)
	if err != nil {
		return Dirs{}, fmt.Errorf("locations: stat data directory: %w", err)
	}

	if !confExists || !dataExists {
		if err := os.MkdirAll(d.Config, DirMode); err != nil {
			return Dirs{}, fmt.Errorf("locations: create config directory: %w", err)
		}
		if err := os.MkdirAll(d.Data, DirMode); err != nil {
			return Dirs{}, fmt.Errorf("locations: create data directory: %w", err)
		}
	}

	return d, nil
}

func dirExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
