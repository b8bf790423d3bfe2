// Package config reads and writes the TOML configuration file that
// points at the credential database and names the port the serve
// command listens on.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrCorrupt indicates the configuration file exists but cannot be
// parsed. A corrupt file is surfaced, never silently rewritten.
var ErrCorrupt = errors.New("config: config file is corrupt")

// Defaults applied when the user accepts the suggested values
const (
	// DefaultPort is the port the serve command listens on unless the
	// configuration says otherwise.
	DefaultPort uint16 = 8080
	// FileMode restricts the config file to the owning user.
	FileMode = 0600
)

// Config is the decoded configuration file.
type Config struct {
	// Path is the location of the credential database.
	Path string `toml:"path"`
	// Port is the TCP port the serve command binds.
	Port uint16 `toml:"port"`
}

// Prompter supplies configuration values interactively. defaultDBPath
// is the suggested database location the user can accept as-is.
type Prompter interface {
	PromptConfig(defaultDBPath string) (Config, error)
}

// InitInteractive collects configuration values from the prompter,
// fills in defaults for anything left blank and writes the file to
// confPath, replacing whatever was there.
func InitInteractive(pr Prompter, confPath, defaultDBPath string) (Config, error) {
	cfg, err := pr.PromptConfig(defaultDBPath)
	if err != nil {
		return Config{}, fmt.Errorf("config: prompt for values: %w", err)
	}
	if cfg.Path == "" {
		cfg.Path = defaultDBPath
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(confPath, data, FileMode); err != nil {
		return Config{}, fmt.Errorf("config: write %s: %w", confPath, err)
	}
	return cfg, nil
}

// OpenInteractive loads the configuration file at confPath. A missing
// file is not an error: the user is prompted as if running init and the
// freshly written values are returned. A file that exists but fails to
// decode is reported as ErrCorrupt.
func OpenInteractive(pr Prompter, confPath, defaultDBPath string) (Config, error) {
	data, err := os.ReadFile(confPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return InitInteractive(pr, confPath, defaultDBPath)
		}
		return Config{}, fmt.Errorf("config: read %s: %w", confPath, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return cfg, nil
}
