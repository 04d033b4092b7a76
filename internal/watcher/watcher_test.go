package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcreach/sfarc/internal/namegen"
)

func TestIsCapture(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"X 上的 宝玉 分析.html", true},
		{"X_上的_DN-Samuel.htm", true},
		{"Some Article (2024-10-11 13_04_05).html", true},
		{"Some Article (10_11_2024 1_04_05 PM).html", true},
		{"Some Article (2024-10-11).html", true},
		{"invoice.pdf", false},
		{"X 上的 宝玉 分析.txt", false},
		{"random download.html", false},
		{"report (1).html", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCapture(tt.name); got != tt.want {
				t.Fatalf("IsCapture(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func newTestWatcher(t *testing.T) (*Watcher, string, string) {
	t.Helper()
	incoming := t.TempDir()
	archive := t.TempDir()

	gen, err := namegen.New(namegen.Options{})
	if err != nil {
		t.Fatalf("namegen.New: %v", err)
	}
	w, err := New(Config{
		IncomingDir: incoming,
		ArchiveDir:  archive,
		Generator:   gen,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w, incoming, archive
}

func TestNewValidatesConfig(t *testing.T) {
	gen, _ := namegen.New(namegen.Options{})
	if _, err := New(Config{ArchiveDir: "a", Generator: gen}); err == nil {
		t.Fatalf("New accepted missing incoming dir")
	}
	if _, err := New(Config{IncomingDir: "i", Generator: gen}); err == nil {
		t.Fatalf("New accepted missing archive dir")
	}
	if _, err := New(Config{IncomingDir: "i", ArchiveDir: "a"}); err == nil {
		t.Fatalf("New accepted missing generator")
	}
}

func TestProcessMovesAndRenames(t *testing.T) {
	w, incoming, archive := newTestWatcher(t)

	src := filepath.Join(incoming, "X 上的 宝玉 🚀OpenAI分析.html")
	if err := os.WriteFile(src, []byte("<html>capture</html>"), 0o644); err != nil {
		t.Fatalf("seed capture: %v", err)
	}

	dst, err := w.Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if filepath.Dir(dst) != archive {
		t.Fatalf("moved outside archive dir: %s", dst)
	}
	base := filepath.Base(dst)
	if len(base) > w.gen.MaxBytes() {
		t.Fatalf("destination name %q over budget", base)
	}
	if strings.ContainsAny(base, "🚀") {
		t.Fatalf("emoji survived renaming: %q", base)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source still in incoming dir")
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "<html>capture</html>" {
		t.Fatalf("archive content: %q, %v", got, err)
	}
}

func TestProcessAvoidsExistingArchiveNames(t *testing.T) {
	w, incoming, archive := newTestWatcher(t)

	// The capture's optimized name is already taken in the archive.
	title := "X 上的 宝玉 分析"
	gen := w.gen
	first := gen.Generate(title, "", namegen.NewNameSet())
	taken := filepath.Join(archive, first.Stem+".html")
	if err := os.WriteFile(taken, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed archive: %v", err)
	}

	src := filepath.Join(incoming, title+".html")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatalf("seed capture: %v", err)
	}

	dst, err := w.Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if dst == taken {
		t.Fatalf("Process reused a claimed name")
	}
	old, _ := os.ReadFile(taken)
	if string(old) != "old" {
		t.Fatalf("existing archive overwritten")
	}
}

func TestArchiveNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"One.html", "Two.htm", "skip.txt"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644)
	}

	names, err := ArchiveNames(dir)
	if err != nil {
		t.Fatalf("ArchiveNames: %v", err)
	}
	if !names.Has("one") || !names.Has("Two") {
		t.Fatalf("stems not seeded")
	}
	if names.Has("skip") || names.Len() != 2 {
		t.Fatalf("unexpected members, len=%d", names.Len())
	}
}
