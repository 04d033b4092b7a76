// Package config handles global sfarc configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied by Normalize when the config file omits a value.
const (
	DefaultMaxBytes       = 150
	DefaultDockerImage    = "capsulecode/singlefile"
	DefaultDockerTimeout  = 120 * time.Second
	DefaultRetryAttempts  = 10
	DefaultRetryDelay     = 2 * time.Second
	DefaultDebounce       = 500 * time.Millisecond
	DefaultPollInterval   = 30 * time.Second
	DefaultManifestName   = ".sfarc-renames.yaml"
	DefaultCSVName        = "urls.csv"
	defaultArchiveSubdir  = "SingleFile"
	defaultIncomingSubdir = "Downloads"
)

// Config represents the global sfarc configuration.
type Config struct {
	// ArchiveDir is the directory holding optimized .html archives.
	ArchiveDir string `toml:"archive_dir"`

	// IncomingDir is the download directory the monitor watches for fresh
	// SingleFile captures.
	IncomingDir string `toml:"incoming_dir"`

	// MaxBytes is the filename byte budget including the .html extension.
	MaxBytes int `toml:"max_bytes"`

	// KeyTerms overrides the built-in key-term table used when similar
	// filenames need to be told apart.
	KeyTerms []string `toml:"key_terms"`

	// CSVPath is the url-list file consumed by `sfarc archive --from-csv`.
	// Relative paths resolve against ArchiveDir.
	CSVPath string `toml:"csv_path"`

	// Archiver configures the dockerized SingleFile capture tool.
	Archiver ArchiverConfig `toml:"archiver"`

	// Monitor configures the incoming-directory watcher.
	Monitor MonitorConfig `toml:"monitor"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// ArchiverConfig configures the dockerized capture pipeline.
type ArchiverConfig struct {
	// Image is the docker image that runs SingleFile.
	Image string `toml:"image"`

	// TimeoutSeconds bounds a single capture run.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// CookiesPath is an optional cookies file mounted into the container so
	// login-walled pages capture with full content.
	CookiesPath string `toml:"cookies_path"`

	// RetryAttempts is how many times a failed capture is retried.
	RetryAttempts int `toml:"retry_attempts"`

	// RetryDelaySeconds is the pause between retries.
	RetryDelaySeconds int `toml:"retry_delay_seconds"`
}

// MonitorConfig configures the incoming-directory watcher.
type MonitorConfig struct {
	// DebounceMs is how long a file must sit unchanged before it is picked
	// up; browsers write large captures in bursts.
	DebounceMs int `toml:"debounce_ms"`

	// PollSeconds is the rescan interval used when inotify watches cannot be
	// established (network mounts, exhausted watch limits).
	PollSeconds int `toml:"poll_seconds"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Timeout returns the per-capture timeout.
func (a ArchiverConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return DefaultDockerTimeout
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// RetryDelay returns the pause between capture retries.
func (a ArchiverConfig) RetryDelay() time.Duration {
	if a.RetryDelaySeconds <= 0 {
		return DefaultRetryDelay
	}
	return time.Duration(a.RetryDelaySeconds) * time.Second
}

// Debounce returns the quiet period before the monitor processes a file.
func (m MonitorConfig) Debounce() time.Duration {
	if m.DebounceMs <= 0 {
		return DefaultDebounce
	}
	return time.Duration(m.DebounceMs) * time.Millisecond
}

// PollInterval returns the fallback rescan interval.
func (m MonitorConfig) PollInterval() time.Duration {
	if m.PollSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(m.PollSeconds) * time.Second
}

// Normalize fills unset fields with defaults. Directory defaults are rooted
// in the user's home so a bare `sfarc watch` works out of the box.
func (c *Config) Normalize() {
	if c.MaxBytes == 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.Archiver.Image == "" {
		c.Archiver.Image = DefaultDockerImage
	}
	if c.Archiver.RetryAttempts <= 0 {
		c.Archiver.RetryAttempts = DefaultRetryAttempts
	}
	if home, err := os.UserHomeDir(); err == nil {
		if c.ArchiveDir == "" {
			c.ArchiveDir = filepath.Join(home, defaultArchiveSubdir)
		}
		if c.IncomingDir == "" {
			c.IncomingDir = filepath.Join(home, defaultIncomingSubdir)
		}
	}
	if c.CSVPath == "" {
		c.CSVPath = DefaultCSVName
	}
	if !filepath.IsAbs(c.CSVPath) && c.ArchiveDir != "" {
		c.CSVPath = filepath.Join(c.ArchiveDir, c.CSVPath)
	}
}

// ManifestPath is where the batch renamer records its rollback manifest.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.ArchiveDir, DefaultManifestName)
}

// Load loads the configuration from the default location.
// Returns a normalized default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.Normalize()
		return cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	config.Normalize()
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/sfarc/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "sfarc", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "sfarc", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/sfarc/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sfarc", "config.toml"), nil
}

// CreateDefault creates a commented default config file if it doesn't exist.
func CreateDefault() (string, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // Already exists
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# sfarc configuration

# Directory holding optimized SingleFile archives.
# archive_dir = "/path/to/SingleFile"

# Download directory watched by 'sfarc watch'.
# incoming_dir = "/path/to/Downloads"

# Filename byte budget including the .html extension.
# max_bytes = 150

# Extra key terms preserved when similar filenames need differentiation.
# key_terms = ["Zig", "Elixir"]

# URL list for 'sfarc archive --from-csv'; relative to archive_dir.
# csv_path = "urls.csv"

[archiver]
# image = "capsulecode/singlefile"
# timeout_seconds = 120
# retry_attempts = 10
# retry_delay_seconds = 2
# cookies_path = "/path/to/cookies.txt"

[monitor]
# debounce_ms = 500
# poll_seconds = 30

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
