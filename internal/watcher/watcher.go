// Package watcher monitors a download directory for fresh SingleFile
// captures and moves them into the archive under an optimized name.
//
// It can be used standalone via `sfarc watch` or embedded in other tooling.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/arcreach/sfarc/internal/atomicfile"
	"github.com/arcreach/sfarc/internal/batch"
	"github.com/arcreach/sfarc/internal/namegen"
)

// Watcher moves recognized captures from an incoming directory into the
// archive directory, renaming them through the name generator.
type Watcher struct {
	incomingDir string
	archiveDir  string
	gen         *namegen.Generator

	// Configuration
	debounceDelay time.Duration
	pollInterval  time.Duration
	debug         bool

	// Internal state
	fsWatcher *fsnotify.Watcher
	pending   map[string]pendingFile
	mu        sync.Mutex

	// Callbacks
	onMove func(src, dst string, err error)
}

// pendingFile tracks a scheduled file along with the size last observed, so
// a capture still being written keeps getting pushed back.
type pendingFile struct {
	scheduledAt time.Time
	size        int64
}

// Config holds configuration options for the Watcher.
type Config struct {
	IncomingDir   string
	ArchiveDir    string
	Generator     *namegen.Generator
	DebounceDelay time.Duration // Default: 500ms
	PollInterval  time.Duration // Default: 30s; rescan cadence when inotify is unavailable
	Debug         bool
	OnMove        func(src, dst string, err error) // Optional callback
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.IncomingDir == "" {
		return nil, fmt.Errorf("incoming directory is required")
	}
	if cfg.ArchiveDir == "" {
		return nil, fmt.Errorf("archive directory is required")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	poll := cfg.PollInterval
	if poll == 0 {
		poll = 30 * time.Second
	}

	return &Watcher{
		incomingDir:   cfg.IncomingDir,
		archiveDir:    cfg.ArchiveDir,
		gen:           cfg.Generator,
		debounceDelay: debounce,
		pollInterval:  poll,
		debug:         cfg.Debug,
		pending:       make(map[string]pendingFile),
		onMove:        cfg.OnMove,
	}, nil
}

// Start begins watching the incoming directory.
// It blocks until the context is cancelled. When inotify watches cannot be
// established the watcher degrades to periodic rescans.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.archiveDir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		err = fsw.Add(w.incomingDir)
	}
	if err != nil {
		if fsw != nil {
			fsw.Close()
		}
		w.logDebug("inotify unavailable (%v), falling back to polling", err)
		return w.pollLoop(ctx)
	}
	w.fsWatcher = fsw
	defer fsw.Close()

	w.logDebug("Watching incoming dir: %s", w.incomingDir)

	// Pick up captures that landed before we started.
	w.scanIncoming()

	// Start debounce processor
	go w.processDebounced(ctx)

	// Event loop
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logDebug("Watcher error: %v", err)
		}
	}
}

// pollLoop is the degraded mode: rescan the incoming directory on a timer.
func (w *Watcher) pollLoop(ctx context.Context) error {
	go w.processDebounced(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scanIncoming()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.scanIncoming()
		}
	}
}

// scanIncoming schedules every recognized capture currently in the incoming
// directory.
func (w *Watcher) scanIncoming() {
	entries, err := os.ReadDir(w.incomingDir)
	if err != nil {
		w.logDebug("scan failed: %v", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !IsCapture(entry.Name()) {
			continue
		}
		w.schedule(filepath.Join(w.incomingDir, entry.Name()))
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if !IsCapture(filepath.Base(path)) {
		return
	}

	w.logDebug("Event: %s %s", event.Op, path)

	switch {
	case event.Op&fsnotify.Create != 0, event.Op&fsnotify.Write != 0:
		w.schedule(path)
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
	}
}

// schedule adds a file to the pending queue with debouncing.
func (w *Watcher) schedule(path string) {
	size := int64(-1)
	if st, err := os.Stat(path); err == nil {
		size = st.Size()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = pendingFile{scheduledAt: time.Now(), size: size}
}

// processDebounced processes pending files after the debounce delay.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending moves files whose debounce window has passed and whose size
// has stopped changing.
func (w *Watcher) processPending() {
	w.mu.Lock()
	now := time.Now()
	ready := make([]string, 0)

	for path, p := range w.pending {
		if now.Sub(p.scheduledAt) < w.debounceDelay {
			continue
		}
		if st, err := os.Stat(path); err == nil && st.Size() != p.size {
			// Still growing; restart the clock.
			w.pending[path] = pendingFile{scheduledAt: now, size: st.Size()}
			continue
		}
		ready = append(ready, path)
		delete(w.pending, path)
	}
	w.mu.Unlock()

	for _, path := range ready {
		dst, err := w.Process(path)
		if w.onMove != nil {
			w.onMove(path, dst, err)
		}
		if err != nil {
			w.logDebug("Failed to move %s: %v", path, err)
		} else {
			w.logDebug("Moved: %s -> %s", path, dst)
		}
	}
}

// Process moves a single capture into the archive under its optimized name
// and returns the destination path. It can be called directly without
// starting the watcher.
func (w *Watcher) Process(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("stat capture: %w", err)
	}

	names, err := ArchiveNames(w.archiveDir)
	if err != nil {
		return "", err
	}

	title := batch.TitleFromName(filepath.Base(path))
	res := w.gen.Generate(title, "", names)
	dst := filepath.Join(w.archiveDir, res.Stem+w.gen.Extension())

	if err := atomicfile.Move(path, dst); err != nil {
		return "", fmt.Errorf("move capture: %w", err)
	}
	return dst, nil
}

// ArchiveNames seeds a NameSet with the stems already claimed in dir.
func ArchiveNames(dir string) (*namegen.NameSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read archive dir: %w", err)
	}
	names := namegen.NewNameSet()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".html" || ext == ".htm" {
			names.Add(entry.Name()[:len(entry.Name())-len(ext)])
		}
	}
	return names, nil
}

// logDebug logs a debug message if debug mode is enabled.
func (w *Watcher) logDebug(format string, args ...interface{}) {
	if w.debug {
		fmt.Fprintf(os.Stderr, "[sfarc-watch] "+format+"\n", args...)
	}
}
