// Package config persists the application's paths and upload-assistant
// argument defaults. The on-disk form is a YAML file; components never touch
// the file directly, they go through the Store interface so the persistence
// can be swapped out in tests.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"uaman/internal/errors"
	"uaman/pkg/types"

	"gopkg.in/yaml.v3"
)

// Section names recognized by Get and Set.
const (
	SectionPaths     = "paths"
	SectionArguments = "arguments"
)

// Keys of the paths section.
const (
	KeyLogsDir         = "logs_dir"
	KeyTorrentsDir     = "torrents_dir"
	KeyUploadAssistant = "upload_assistant_path"
	KeyLogPattern      = "log_pattern"
	KeyHistoryDB       = "history_db"
)

// Store is the persisted configuration capability handed to components.
// Set persists immediately.
type Store interface {
	Get(section, key, def string) string
	Set(section, key, value string) error
}

// Paths holds the filesystem locations the application works against:
// the logs directory scanned for missing-item lines, the base path the
// browser starts at, the upload-assistant executable, the filename pattern
// selecting log files, and the SQLite file recording launches.
type Paths struct {
	LogsDir             string `yaml:"logs_dir"`
	TorrentsDir         string `yaml:"torrents_dir"`
	UploadAssistantPath string `yaml:"upload_assistant_path"`
	LogPattern          string `yaml:"log_pattern"`
	HistoryDB           string `yaml:"history_db"`
}

// Config represents the application configuration structure.
type Config struct {
	Paths Paths `yaml:"paths"`
	// Arguments maps argument key names to string values. Boolean keys
	// store the literal strings "true" or "false".
	Arguments map[string]string `yaml:"arguments"`

	path string // file the config was loaded from; Save writes back here
}

// DefaultPath returns the default config file location
// (~/.config/uaman/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "uaman", "config.yaml"), nil
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration bound to that
// path, so the first Set creates it.
func LoadFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()
	cfg.path = path

	// Try to read the config file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, errors.Wrap(err, "error reading config file")
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, errors.Wrap(err, "error parsing config file")
	}

	// Merge the loaded config with defaults
	if loaded.Paths.LogsDir != "" {
		cfg.Paths.LogsDir = loaded.Paths.LogsDir
	}
	if loaded.Paths.TorrentsDir != "" {
		cfg.Paths.TorrentsDir = loaded.Paths.TorrentsDir
	}
	if loaded.Paths.UploadAssistantPath != "" {
		cfg.Paths.UploadAssistantPath = loaded.Paths.UploadAssistantPath
	}
	if loaded.Paths.LogPattern != "" {
		cfg.Paths.LogPattern = loaded.Paths.LogPattern
	}
	if loaded.Paths.HistoryDB != "" {
		cfg.Paths.HistoryDB = loaded.Paths.HistoryDB
	}
	// Unknown argument keys are carried along untouched; only declared keys
	// are ever emitted as flags.
	for k, v := range loaded.Arguments {
		cfg.Arguments[k] = v
	}

	// Validate the final configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with the stock paths and
// every argument key present.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Paths.LogsDir = "/mnt/user/appdata/cross-pollinator/logs"
	cfg.Paths.TorrentsDir = "/mnt/user/data/torrents"
	cfg.Paths.UploadAssistantPath = "upload-assistant"
	cfg.Paths.LogPattern = "*.log"
	cfg.Paths.HistoryDB = defaultHistoryPath()

	cfg.Arguments = make(map[string]string, len(types.ArgKeys()))
	for _, k := range types.ArgKeys() {
		if k.Bool() {
			cfg.Arguments[string(k)] = "false"
		} else {
			cfg.Arguments[string(k)] = ""
		}
	}

	return cfg
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".config", "uaman", "history.db")
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// NewTestConfig creates an in-memory configuration for testing purposes.
// It is not bound to a file, so Set does not persist.
func NewTestConfig() *Config {
	return defaultConfig()
}

// Path returns the file the config persists to, if any.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from.
// Unbound (in-memory) configs are left alone.
func (c *Config) Save() error {
	if c.path == "" {
		return nil
	}
	return c.SaveTo(c.path)
}

// SaveTo saves the configuration to the specified file. The write goes to a
// temporary file in the same directory first and is renamed over the target,
// so a concurrent reader never observes a half-written config.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return errors.Wrap(err, "failed to create temp config file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to write config")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to write config")
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to write config")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to replace config file")
	}

	c.path = path
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if strings.TrimSpace(c.Paths.UploadAssistantPath) == "" {
		return errors.NewConfigError("value is required", KeyUploadAssistant, errors.InvalidConfig, nil)
	}
	if strings.TrimSpace(c.Paths.LogsDir) == "" {
		return errors.NewConfigError("value is required", KeyLogsDir, errors.InvalidConfig, nil)
	}
	if strings.TrimSpace(c.Paths.TorrentsDir) == "" {
		return errors.NewConfigError("value is required", KeyTorrentsDir, errors.InvalidConfig, nil)
	}
	if strings.TrimSpace(c.Paths.LogPattern) == "" {
		return errors.NewConfigError("value is required", KeyLogPattern, errors.InvalidConfig, nil)
	}

	// Boolean arguments only ever hold the two literal strings
	for k, v := range c.Arguments {
		if types.IsValidArgKey(k) && types.ArgKey(k).Bool() && v != "true" && v != "false" {
			return errors.NewConfigError(`boolean argument must be "true" or "false"`, k, errors.InvalidConfig, nil)
		}
	}

	return nil
}

// Get returns the stored value for section.key, or def when the key is not
// recognized.
func (c *Config) Get(section, key, def string) string {
	switch section {
	case SectionPaths:
		if v, ok := c.pathValue(key); ok {
			return v
		}
	case SectionArguments:
		if v, ok := c.Arguments[key]; ok {
			return v
		}
	}
	return def
}

// Set updates section.key and persists immediately when the config is bound
// to a file.
func (c *Config) Set(section, key, value string) error {
	switch section {
	case SectionPaths:
		switch key {
		case KeyLogsDir:
			c.Paths.LogsDir = value
		case KeyTorrentsDir:
			c.Paths.TorrentsDir = value
		case KeyUploadAssistant:
			c.Paths.UploadAssistantPath = value
		case KeyLogPattern:
			c.Paths.LogPattern = value
		case KeyHistoryDB:
			c.Paths.HistoryDB = value
		default:
			return errors.NewConfigError("unknown path key", key, errors.InvalidConfig, nil)
		}
	case SectionArguments:
		if !types.IsValidArgKey(key) {
			return errors.NewConfigError("unknown argument key", key, errors.InvalidConfig, nil)
		}
		if types.ArgKey(key).Bool() && value != "true" && value != "false" {
			return errors.NewConfigError(`boolean argument must be "true" or "false"`, key, errors.InvalidConfig, nil)
		}
		if c.Arguments == nil {
			c.Arguments = make(map[string]string)
		}
		c.Arguments[key] = value
	default:
		return errors.NewConfigError("unknown section", section, errors.InvalidConfig, nil)
	}
	return c.Save()
}

func (c *Config) pathValue(key string) (string, bool) {
	switch key {
	case KeyLogsDir:
		return c.Paths.LogsDir, true
	case KeyTorrentsDir:
		return c.Paths.TorrentsDir, true
	case KeyUploadAssistant:
		return c.Paths.UploadAssistantPath, true
	case KeyLogPattern:
		return c.Paths.LogPattern, true
	case KeyHistoryDB:
		return c.Paths.HistoryDB, true
	}
	return "", false
}

// Argument returns the stored value for a declared argument key.
func (c *Config) Argument(key types.ArgKey) string {
	return c.Arguments[string(key)]
}

// ArgumentBool reports whether a boolean argument key is set.
func (c *Config) ArgumentBool(key types.ArgKey) bool {
	return c.Arguments[string(key)] == "true"
}
