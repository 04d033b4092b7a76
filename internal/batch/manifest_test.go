package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunLabel(t *testing.T) {
	at := time.Date(2024, 10, 11, 13, 4, 5, 0, time.UTC)
	if got := RunLabel(at); got != "run-2024-10-11-130405" {
		t.Fatalf("RunLabel = %q", got)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sfarc-renames.yaml")
	at := time.Date(2024, 10, 11, 13, 4, 5, 0, time.UTC)

	m := &Manifest{}
	m.Record(at, []Op{
		{OldName: "🚀 old.html", NewName: "new_name.html"},
		{OldName: "second old.html", NewName: "second_new.html"},
	})
	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	run, ok := loaded.LastRun()
	if !ok {
		t.Fatalf("no runs after round trip")
	}
	if run.Label != RunLabel(at) {
		t.Fatalf("Label = %q", run.Label)
	}
	if len(run.Renames) != 2 || run.Renames[0].From != "🚀 old.html" || run.Renames[1].To != "second_new.html" {
		t.Fatalf("renames did not round-trip: %+v", run.Renames)
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if _, ok := m.LastRun(); ok {
		t.Fatalf("missing manifest should be empty")
	}
}

func TestManifestRecordSkipsEmptyRuns(t *testing.T) {
	m := &Manifest{}
	m.Record(time.Now(), nil)
	if len(m.Runs) != 0 {
		t.Fatalf("empty run recorded: %+v", m.Runs)
	}
}

func TestRollback(t *testing.T) {
	dir := seedDir(t, "new_name.html")
	at := time.Now()

	m := &Manifest{}
	m.Record(at, []Op{{OldName: "🚀 old.html", NewName: "new_name.html"}})

	run, err := m.Rollback(dir)
	if err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if len(run.Renames) != 1 {
		t.Fatalf("rolled back run = %+v", run)
	}
	if _, err := os.Stat(filepath.Join(dir, "🚀 old.html")); err != nil {
		t.Fatalf("original name not restored: %v", err)
	}
	if _, ok := m.LastRun(); ok {
		t.Fatalf("run should be dropped after rollback")
	}
}

func TestRollbackRefusesToClobber(t *testing.T) {
	dir := seedDir(t, "new_name.html", "old.html")

	m := &Manifest{}
	m.Record(time.Now(), []Op{{OldName: "old.html", NewName: "new_name.html"}})

	if _, err := m.Rollback(dir); err == nil {
		t.Fatalf("Rollback overwrote an existing file")
	}
	if len(m.Runs) != 1 {
		t.Fatalf("failed rollback should keep the run recorded")
	}
}

func TestRollbackEmptyManifest(t *testing.T) {
	m := &Manifest{}
	if _, err := m.Rollback(t.TempDir()); err == nil {
		t.Fatalf("Rollback on empty manifest should fail")
	}
}
