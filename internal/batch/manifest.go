package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/arcreach/sfarc/internal/atomicfile"
)

// Manifest records every applied rename so a batch run can be undone. It
// lives inside the archive directory and accumulates runs newest-last.
type Manifest struct {
	Runs []Run `yaml:"runs"`
}

// Run is one apply invocation.
type Run struct {
	// Label is a slug identifying the run, derived from its timestamp.
	Label string `yaml:"label"`

	// StartedAt is when the run was applied.
	StartedAt time.Time `yaml:"started_at"`

	// Renames lists what happened, in apply order.
	Renames []Rename `yaml:"renames"`
}

// Rename is a single recorded from→to pair (base filenames).
type Rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// RunLabel derives the slug label for a run started at t.
func RunLabel(t time.Time) string {
	return slug.Make("run " + t.Format("2006-01-02 150405"))
}

// LoadManifest reads the manifest at path. A missing file is an empty
// manifest, not an error.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the manifest atomically.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// Record appends a run built from applied ops.
func (m *Manifest) Record(startedAt time.Time, ops []Op) {
	if len(ops) == 0 {
		return
	}
	run := Run{
		Label:     RunLabel(startedAt),
		StartedAt: startedAt,
	}
	for _, op := range ops {
		run.Renames = append(run.Renames, Rename{From: op.OldName, To: op.NewName})
	}
	m.Runs = append(m.Runs, run)
}

// LastRun returns the most recent run, or false when the manifest is empty.
func (m *Manifest) LastRun() (Run, bool) {
	if len(m.Runs) == 0 {
		return Run{}, false
	}
	return m.Runs[len(m.Runs)-1], true
}

// Rollback undoes the most recent run in dir, reversing renames in reverse
// apply order, and drops the run from the manifest. It stops at the first
// failure so a re-run can finish the job.
func (m *Manifest) Rollback(dir string) (Run, error) {
	run, ok := m.LastRun()
	if !ok {
		return Run{}, fmt.Errorf("manifest has no runs to roll back")
	}

	for i := len(run.Renames) - 1; i >= 0; i-- {
		r := run.Renames[i]
		fromPath := filepath.Join(dir, r.To)
		toPath := filepath.Join(dir, r.From)
		if _, err := os.Lstat(toPath); err == nil {
			return run, fmt.Errorf("rollback target exists: %s", r.From)
		}
		if err := os.Rename(fromPath, toPath); err != nil {
			return run, fmt.Errorf("rollback %s: %w", r.To, err)
		}
	}

	m.Runs = m.Runs[:len(m.Runs)-1]
	return run, nil
}
