package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcreach/sfarc/internal/atomicfile"
)

// persistedConfig mirrors Config with omitempty pointers so a saved file only
// contains the values the user actually set.
type persistedConfig struct {
	ArchiveDir  *string            `toml:"archive_dir,omitempty"`
	IncomingDir *string            `toml:"incoming_dir,omitempty"`
	MaxBytes    *int               `toml:"max_bytes,omitempty"`
	KeyTerms    []string           `toml:"key_terms,omitempty"`
	CSVPath     *string            `toml:"csv_path,omitempty"`
	Archiver    *persistedArchiver `toml:"archiver,omitempty"`
	Monitor     *persistedMonitor  `toml:"monitor,omitempty"`
	UI          *persistedUI       `toml:"ui,omitempty"`
}

type persistedArchiver struct {
	Image             *string `toml:"image,omitempty"`
	TimeoutSeconds    *int    `toml:"timeout_seconds,omitempty"`
	CookiesPath       *string `toml:"cookies_path,omitempty"`
	RetryAttempts     *int    `toml:"retry_attempts,omitempty"`
	RetryDelaySeconds *int    `toml:"retry_delay_seconds,omitempty"`
}

type persistedMonitor struct {
	DebounceMs  *int `toml:"debounce_ms,omitempty"`
	PollSeconds *int `toml:"poll_seconds,omitempty"`
}

type persistedUI struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func positivePtr(value int) *int {
	if value <= 0 {
		return nil
	}
	return &value
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		ArchiveDir:  nonEmptyPtr(cfg.ArchiveDir),
		IncomingDir: nonEmptyPtr(cfg.IncomingDir),
		MaxBytes:    positivePtr(cfg.MaxBytes),
		CSVPath:     nonEmptyPtr(cfg.CSVPath),
	}
	if len(cfg.KeyTerms) > 0 {
		out.KeyTerms = cfg.KeyTerms
	}

	image := nonEmptyPtr(cfg.Archiver.Image)
	timeout := positivePtr(cfg.Archiver.TimeoutSeconds)
	cookies := nonEmptyPtr(cfg.Archiver.CookiesPath)
	attempts := positivePtr(cfg.Archiver.RetryAttempts)
	delay := positivePtr(cfg.Archiver.RetryDelaySeconds)
	if image != nil || timeout != nil || cookies != nil || attempts != nil || delay != nil {
		out.Archiver = &persistedArchiver{
			Image:             image,
			TimeoutSeconds:    timeout,
			CookiesPath:       cookies,
			RetryAttempts:     attempts,
			RetryDelaySeconds: delay,
		}
	}

	debounce := positivePtr(cfg.Monitor.DebounceMs)
	poll := positivePtr(cfg.Monitor.PollSeconds)
	if debounce != nil || poll != nil {
		out.Monitor = &persistedMonitor{DebounceMs: debounce, PollSeconds: poll}
	}

	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUI{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
