// Package batch implements directory-wide filename optimization: scanning an
// archive directory, planning renames through the name generator, applying
// them, and recording a rollback manifest.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/arcreach/sfarc/internal/namegen"
)

// reDupCounter matches the " (1)" duplicate counters browsers append when a
// download name is already taken.
var reDupCounter = regexp.MustCompile(`[ _]\(\d{1,2}\)$`)

// Op is a single planned rename inside the archive directory.
type Op struct {
	// OldName and NewName are base filenames, extension included.
	OldName string
	NewName string

	// Title is the text the new name was generated from.
	Title string

	// Format tags which naming strategy produced the new name.
	Format string

	// Fallback marks names that needed a numbered/hash suffix.
	Fallback bool
}

// Stats summarizes a planning or apply run.
type Stats struct {
	Scanned        int
	Planned        int
	Renamed        int
	AlreadyOptimal int
	Fallbacks      int
	Differentiated int
}

// Planner builds rename plans for one archive directory.
type Planner struct {
	gen *namegen.Generator
}

// NewPlanner wraps a configured generator.
func NewPlanner(gen *namegen.Generator) *Planner {
	return &Planner{gen: gen}
}

// archiveExts are the file types the optimizer touches.
func isArchiveFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// Plan scans dir and returns the renames needed to bring every archive file
// within the byte budget with a clean, unique name. Files already optimal are
// left alone and their names are reserved so new names cannot collide with
// them. Processing order is sorted for reproducible plans.
func (p *Planner) Plan(dir string) ([]Op, Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read archive dir: %w", err)
	}

	var stats Stats
	var candidates []string
	names := namegen.NewNameSet()

	for _, entry := range entries {
		if entry.IsDir() || !isArchiveFile(entry.Name()) {
			continue
		}
		stats.Scanned++
		name := entry.Name()
		if p.needsRename(name) {
			candidates = append(candidates, name)
			continue
		}
		stats.AlreadyOptimal++
		names.Add(stem(name))
	}
	sort.Strings(candidates)

	var ops []Op
	for _, name := range candidates {
		title := TitleFromName(name)
		res := p.gen.Generate(title, "", names)
		names.Add(res.Stem)

		newName := res.Stem + p.gen.Extension()
		if newName == name {
			stats.AlreadyOptimal++
			continue
		}

		stats.Planned++
		if res.Fallback {
			stats.Fallbacks++
		}
		if res.Differentiated {
			stats.Differentiated++
		}
		ops = append(ops, Op{
			OldName:  name,
			NewName:  newName,
			Title:    title,
			Format:   res.Format.String(),
			Fallback: res.Fallback,
		})
	}

	return ops, stats, nil
}

// needsRename reports whether a filename is over budget, carries characters
// the sanitizer would remove, or still wears a capture-tool wrapper.
func (p *Planner) needsRename(name string) bool {
	if len(name) > p.gen.MaxBytes() {
		return true
	}
	s := stem(name)
	if namegen.Sanitize(s) != s {
		return true
	}
	return hasCaptureWrapper(s)
}

// hasCaptureWrapper detects the "(Title)" shells and browser duplicate
// counters some capture flows leave on filenames.
func hasCaptureWrapper(s string) bool {
	if strings.HasPrefix(s, "(") && strings.Contains(s, ")") {
		return true
	}
	return reDupCounter.MatchString(s)
}

// TitleFromName recovers the title text embedded in an existing filename:
// extension dropped, "(Title)" wrappers unwrapped, browser "(1)" duplicate
// counters removed.
func TitleFromName(name string) string {
	s := stem(name)
	s = reDupCounter.ReplaceAllString(s, "")

	if strings.HasPrefix(s, "(") {
		if end := strings.LastIndex(s, ")"); end > 0 {
			inner := s[1:end]
			rest := strings.TrimLeft(s[end+1:], " _-")
			if rest != "" {
				inner = inner + "_" + rest
			}
			s = inner
		}
	}
	return strings.TrimSpace(s)
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Apply performs the planned renames inside dir, stopping at the first
// failure. It returns the ops that actually happened; the caller records
// those in the manifest so a partial run can still roll back.
func Apply(dir string, ops []Op) ([]Op, error) {
	var done []Op
	for _, op := range ops {
		oldPath := filepath.Join(dir, op.OldName)
		newPath := filepath.Join(dir, op.NewName)
		if _, err := os.Lstat(newPath); err == nil {
			return done, fmt.Errorf("rename target exists: %s", op.NewName)
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			return done, fmt.Errorf("rename %s: %w", op.OldName, err)
		}
		done = append(done, op)
	}
	return done, nil
}
