// Package config provides reading and writing of tagfs configuration.
// Supports both global (~/.tagfs/config.yaml) and local (.tagfs/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: Save writes back to the scope the config was read from; use
// --local to read and write local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.tagfs/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .tagfs/config.yaml
	ScopeLocal
)

// Author represents the author metadata recorded against audit log entries.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxPath *int `yaml:"max_path,omitempty"`
	MaxTag  *int `yaml:"max_tag,omitempty"`
}

// Default limits applied when not configured.
const (
	DefaultMaxPath = 4096
	DefaultMaxTag  = 256
)

// Validation bounds for configuration values.
const (
	MinMaxPath = 1
	MaxMaxPath = 65536 // 64 KB - reasonable upper bound for paths
	MinMaxTag  = 1
	MaxMaxTag  = 65536
)

// Config contains configuration for tagfs.
type Config struct {
	Author        Author `yaml:"author,omitempty"`
	Limits        Limits `yaml:"limits,omitempty"`
	CaseSensitive *bool  `yaml:"case_sensitive,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxPath != nil {
		v := *c.Limits.MaxPath
		if v < MinMaxPath || v > MaxMaxPath {
			return fmt.Errorf("%w: max_path must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxPath, MaxMaxPath, v)
		}
	}
	if c.Limits.MaxTag != nil {
		v := *c.Limits.MaxTag
		if v < MinMaxTag || v > MaxMaxTag {
			return fmt.Errorf("%w: max_tag must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxTag, MaxMaxTag, v)
		}
	}
	return nil
}

// CaseFold returns whether tag matching should fold case (defaults to
// false: tags are case-sensitive unless explicitly relaxed).
func (c *Config) CaseFold() bool {
	if c.CaseSensitive == nil {
		return false
	}
	return !*c.CaseSensitive
}

// MaxPath returns the maximum path length in bytes (defaults to 4096).
func (c *Config) MaxPath() int {
	if c.Limits.MaxPath == nil {
		return DefaultMaxPath
	}
	return *c.Limits.MaxPath
}

// MaxTag returns the maximum tag length in bytes (defaults to 256).
func (c *Config) MaxTag() int {
	if c.Limits.MaxTag == nil {
		return DefaultMaxTag
	}
	return *c.Limits.MaxTag
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return filepath.Join(".tagfs", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.tagfs/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tagfs", "config.yaml")
}

// Path returns the local config path (for backwards compatibility).
func Path() string {
	return LocalPath()
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
