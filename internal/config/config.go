package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FileName is the config file searched for in the working directory and
// its ancestors.
const FileName = ".jire.config"

// ErrNotFound reports that no config file exists anywhere in the
// directory chain.
var ErrNotFound = errors.New("missing config file")

// ErrInvalid reports a config file that exists but lacks required keys
// or cannot be parsed.
var ErrInvalid = errors.New("invalid config file")

// Config is the resolved project configuration.
type Config struct {
	// Project is the default project tag applied to new tickets.
	Project string
	// DBPath is the absolute path to the ticket database.
	DBPath string
	// BusyTimeoutMS overrides the engine lock-wait; zero means default.
	BusyTimeoutMS int
}

// FindPath searches startDir and then each ancestor directory for the
// config file, returning the first match.
func FindPath(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load parses the INI config at path. The [Project] section must
// provide name and db_path; db_path is resolved relative to the config
// file's directory when not absolute.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	name := v.GetString("Project.name")
	if name == "" {
		return nil, fmt.Errorf("%w: missing key Project.name", ErrInvalid)
	}
	dbPath := v.GetString("Project.db_path")
	if dbPath == "" {
		return nil, fmt.Errorf("%w: missing key Project.db_path", ErrInvalid)
	}
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(filepath.Dir(path), dbPath)
	}

	return &Config{
		Project:       name,
		DBPath:        dbPath,
		BusyTimeoutMS: v.GetInt("Project.busy_timeout_ms"),
	}, nil
}
