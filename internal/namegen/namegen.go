// Package namegen converts arbitrary web-page titles into filesystem-safe,
// byte-bounded, collision-free base filenames.
//
// The pipeline runs in fixed stages: platform extraction, URL resolution,
// format assembly, byte-aware semantic truncation, and collision handling
// (differentiation first, then numbered/hash suffixes). Each stage is a pure
// function over the previous stage's output; the only shared state is the
// caller-owned NameSet of already-claimed names.
package namegen

import (
	"fmt"
	"time"
)

const (
	// DefaultMaxBytes is the canonical budget for a final filename including
	// its extension, measured in UTF-8 bytes. Historical call sites used 120,
	// 220, and 255; those are superseded.
	DefaultMaxBytes = 150

	// DefaultExtension is appended by callers after the engine produces a stem.
	// The engine reserves its byte length up front.
	DefaultExtension = ".html"

	// suffixHeadroom is the minimum stem width the conflict resolver needs to
	// stay useful: room for a hash suffix plus at least a few content bytes.
	suffixHeadroom = 16
)

// Options configures a Generator.
type Options struct {
	// MaxBytes is the budget for the final filename including the extension.
	// Zero means DefaultMaxBytes.
	MaxBytes int

	// Extension is the filename extension the caller will append, including
	// the leading dot. Zero value means DefaultExtension.
	Extension string

	// KeyTerms overrides the heuristic keyword table used by the
	// differentiation engine's key-term preservation stage. The table affects
	// readability of differentiated names, never uniqueness or budget.
	KeyTerms []string
}

// Generator produces unique, budget-respecting filename stems.
// It holds only configuration; all mutable context is passed per call.
type Generator struct {
	maxBytes int
	ext      string
	keyTerms []string
	now      func() time.Time
}

// New validates opts and returns a ready Generator.
//
// The only rejected input is a budget too small to fit the extension plus the
// conflict resolver's suffix headroom; everything else is handled internally.
func New(opts Options) (*Generator, error) {
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	if min := len(ext) + suffixHeadroom; maxBytes < min {
		return nil, fmt.Errorf("max bytes %d too small: need at least %d for extension %q plus suffix headroom", maxBytes, min, ext)
	}
	keyTerms := opts.KeyTerms
	if keyTerms == nil {
		keyTerms = defaultKeyTerms
	}
	return &Generator{
		maxBytes: maxBytes,
		ext:      ext,
		keyTerms: keyTerms,
		now:      time.Now,
	}, nil
}

// MaxBytes reports the configured budget including the extension.
func (g *Generator) MaxBytes() int { return g.maxBytes }

// Extension reports the extension whose byte length the engine reserves.
func (g *Generator) Extension() string { return g.ext }

// Result is the engine's output: a stem plus observability tags describing
// which naming strategy produced it.
type Result struct {
	// Stem is the final base filename without extension. It is guaranteed to
	// fit the budget once the extension is appended, to be valid UTF-8, and
	// to be absent from the NameSet at the moment of production.
	Stem string

	// Format records which assembly template was used.
	Format Format

	// Differentiated is set when the collision-avoidance sweep or term
	// splicing altered the truncated candidate.
	Differentiated bool

	// Fallback is set when the last-resort conflict resolver (numbered, hash,
	// or timestamp suffix) produced the stem. Callers may count these for
	// batch statistics; they are expected outcomes, not errors.
	Fallback bool
}

// Generate runs the full pipeline for one title.
//
// sourceURL may be empty; when set it wins over any URL recovered from the
// title itself. names is the caller-owned existing-names context: Generate
// only queries it, and the caller adds the returned stem once it commits to
// the result. Given identical inputs and an identical names snapshot, the
// output is reproducible.
func (g *Generator) Generate(title, sourceURL string, names *NameSet) Result {
	budget := g.maxBytes - len(g.ext)

	info := ExtractPlatform(title)
	rawURL := sourceURL
	if rawURL == "" {
		rawURL = ResolveURL(title, info)
	}

	candidate, format := assemble(title, info, rawURL)
	stem := SemanticTruncate(candidate, budget)
	if !names.Has(stem) {
		return Result{Stem: stem, Format: format}
	}

	if alt, ok := g.differentiate(candidate, names, budget); ok {
		return Result{Stem: alt, Format: format, Differentiated: true}
	}

	return Result{
		Stem:     g.resolveConflict(stem, names, budget, title),
		Format:   format,
		Fallback: true,
	}
}
