package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
archive_dir = "/data/archives"
incoming_dir = "/data/downloads"
max_bytes = 120
key_terms = ["Zig", "Elixir"]
csv_path = "links.csv"

[archiver]
image = "capsulecode/singlefile"
timeout_seconds = 60
cookies_path = "/data/cookies.txt"
retry_attempts = 3
retry_delay_seconds = 5

[monitor]
debounce_ms = 250
poll_seconds = 10

[ui]
accent = "#FF0000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.ArchiveDir != "/data/archives" {
		t.Fatalf("ArchiveDir = %q", cfg.ArchiveDir)
	}
	if cfg.IncomingDir != "/data/downloads" {
		t.Fatalf("IncomingDir = %q", cfg.IncomingDir)
	}
	if cfg.MaxBytes != 120 {
		t.Fatalf("MaxBytes = %d, want 120", cfg.MaxBytes)
	}
	if len(cfg.KeyTerms) != 2 || cfg.KeyTerms[0] != "Zig" {
		t.Fatalf("KeyTerms = %v", cfg.KeyTerms)
	}
	if got := cfg.CSVPath; got != filepath.Join("/data/archives", "links.csv") {
		t.Fatalf("CSVPath = %q, want it resolved against archive_dir", got)
	}
	if got := cfg.Archiver.Timeout(); got != 60*time.Second {
		t.Fatalf("Archiver.Timeout() = %v", got)
	}
	if cfg.Archiver.CookiesPath != "/data/cookies.txt" {
		t.Fatalf("CookiesPath = %q", cfg.Archiver.CookiesPath)
	}
	if cfg.Archiver.RetryAttempts != 3 {
		t.Fatalf("RetryAttempts = %d", cfg.Archiver.RetryAttempts)
	}
	if got := cfg.Archiver.RetryDelay(); got != 5*time.Second {
		t.Fatalf("RetryDelay() = %v", got)
	}
	if got := cfg.Monitor.Debounce(); got != 250*time.Millisecond {
		t.Fatalf("Monitor.Debounce() = %v", got)
	}
	if got := cfg.Monitor.PollInterval(); got != 10*time.Second {
		t.Fatalf("Monitor.PollInterval() = %v", got)
	}
	if cfg.UI.Accent != "#FF0000" {
		t.Fatalf("UI.Accent = %q", cfg.UI.Accent)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("LoadFrom should fail on a missing explicit path")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{ArchiveDir: "/data/archives", IncomingDir: "/data/in"}
	cfg.Normalize()

	if cfg.MaxBytes != DefaultMaxBytes {
		t.Fatalf("MaxBytes = %d, want %d", cfg.MaxBytes, DefaultMaxBytes)
	}
	if cfg.Archiver.Image != DefaultDockerImage {
		t.Fatalf("Image = %q, want %q", cfg.Archiver.Image, DefaultDockerImage)
	}
	if cfg.Archiver.RetryAttempts != DefaultRetryAttempts {
		t.Fatalf("RetryAttempts = %d, want %d", cfg.Archiver.RetryAttempts, DefaultRetryAttempts)
	}
	if got := cfg.Archiver.Timeout(); got != DefaultDockerTimeout {
		t.Fatalf("Timeout() = %v, want %v", got, DefaultDockerTimeout)
	}
	if got := cfg.Monitor.Debounce(); got != DefaultDebounce {
		t.Fatalf("Debounce() = %v, want %v", got, DefaultDebounce)
	}
	if got := cfg.CSVPath; got != filepath.Join("/data/archives", DefaultCSVName) {
		t.Fatalf("CSVPath = %q", got)
	}
	if got := cfg.ManifestPath(); got != filepath.Join("/data/archives", DefaultManifestName) {
		t.Fatalf("ManifestPath() = %q", got)
	}
}

func TestNormalizeKeepsAbsoluteCSVPath(t *testing.T) {
	cfg := &Config{ArchiveDir: "/data/archives", CSVPath: "/elsewhere/urls.csv"}
	cfg.Normalize()
	if cfg.CSVPath != "/elsewhere/urls.csv" {
		t.Fatalf("CSVPath = %q, want absolute path untouched", cfg.CSVPath)
	}
}

func TestCreateDefaultIsLoadable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	path, err := CreateDefault()
	if err != nil {
		t.Fatalf("CreateDefault: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom(created default): %v", err)
	}
	if cfg.MaxBytes != DefaultMaxBytes {
		t.Fatalf("default config MaxBytes = %d", cfg.MaxBytes)
	}

	// Second call is a no-op on an existing file.
	again, err := CreateDefault()
	if err != nil || again != path {
		t.Fatalf("CreateDefault second call = %q, %v", again, err)
	}
}
