// Package store implements the credential database: an in-memory
// collection of logins backed by a single YAML file. The collection is
// the source of truth while a process runs; Sync writes the whole
// collection back to disk in one shot.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for database operations
var (
	// ErrExists indicates a database file is already present at the
	// target path.
	ErrExists = errors.New("store: database file already exists")
	// ErrNotFound indicates no database file exists at the configured
	// path.
	ErrNotFound = errors.New("store: database file not found")
	// ErrCorrupt indicates the database file exists but cannot be
	// decoded.
	ErrCorrupt = errors.New("store: database file is corrupt")
	// ErrDuplicateName indicates a login with the same name is already
	// stored.
	ErrDuplicateName = errors.New("store: a login with that name already exists")
	// ErrLoginNotFound indicates no stored login matches the name.
	ErrLoginNotFound = errors.New("store: no login with that name")
	// ErrEmptyName indicates the login name is empty after
	// normalization.
	ErrEmptyName = errors.New("store: login name is empty")
)

// Storage constants
const (
	// FormatVersion is the on-disk document version this build reads
	// and writes.
	FormatVersion = 1
	// FileMode restricts the database file to the owning user.
	FileMode = 0600
)

// document is the on-disk shape of a database file.
type document struct {
	Version int     `yaml:"version"`
	Logins  []Login `yaml:"logins"`
}

// Database is an open credential database. It is safe for concurrent
// use; mutations only touch the in-memory collection until Sync is
// called.
type Database struct {
	mu     sync.RWMutex
	path   string
	logins []Login
}

// Init creates a new empty database file at path and returns the open
// database. It fails with ErrExists if a file is already present, so an
// existing database can never be clobbered.
func Init(path string) (*Database, error) {
	d := &Database{path: path}
	data, err := d.encode()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, ErrExists
		}
		return nil, fmt.Errorf("store: create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("store: close %s: %w", path, err)
	}
	return d, nil
}

// Open reads the database file at path into memory. A missing file is
// ErrNotFound and an undecodable one is ErrCorrupt; the two are kept
// distinct because their remediations differ.
func Open(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, doc.Version)
	}

	return &Database{path: path, logins: doc.Logins}, nil
}

// Path returns the file the database syncs to.
func (d *Database) Path() string {
	return d.path
}

// Len returns the number of stored logins.
func (d *Database) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.logins)
}

// Add stores a new login in memory. The login's name must be non-empty
// and must not collide with an existing login under NFC normalization.
func (d *Database) Add(login Login) error {
	name := NormalizeName(login.Name)
	if name == "" {
		return ErrEmptyName
	}
	login.Name = name

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.indexOf(name) >= 0 {
		return ErrDuplicateName
	}
	d.logins = append(d.logins, login)
	return nil
}

// Get looks up a login by name. The boolean reports whether a login
// with that name is stored.
func (d *Database) Get(name string) (Login, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i := d.indexOf(NormalizeName(name)); i >= 0 {
		return d.logins[i], true
	}
	return Login{}, false
}

// List returns a copy of all stored logins in insertion order.
func (d *Database) List() []Login {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Login, len(d.logins))
	copy(out, d.logins)
	return out
}

// Remove deletes the named login from memory and returns it. It fails
// with ErrLoginNotFound if no login matches.
func (d *Database) Remove(name string) (Login, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexOf(NormalizeName(name))
	if i < 0 {
		return Login{}, ErrLoginNotFound
	}
	removed := d.logins[i]
	d.logins = append(d.logins[:i], d.logins[i+1:]...)
	return removed, nil
}

// Sync writes the whole in-memory collection back to the database
// file, replacing its previous contents.
func (d *Database) Sync() error {
	d.mu.RLock()
	data, err := d.encode()
	d.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.path, data, FileMode); err != nil {
		return fmt.Errorf("store: write %s: %w", d.path, err)
	}
	return nil
}

// indexOf returns the position of the login whose normalized name
// matches name, or -1. Callers must hold d.mu. Names written by this
// package are already normalized, but hand-edited files may not be, so
// the stored side is normalized again before comparing.
func (d *Database) indexOf(name string) int {
	for i, l := range d.logins {
		if NormalizeName(l.Name) == name {
			return i
		}
	}
	return -1
}

func (d *Database) encode() ([]byte, error) {
	doc := document{Version: FormatVersion, Logins: d.logins}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("store: encode database: %w", err)
	}
	return data, nil
}
