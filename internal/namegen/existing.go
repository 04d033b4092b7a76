package namegen

import (
	"sort"
	"strings"
)

// NameSet is the run-scoped existing-names context. The caller seeds it from
// the target directory at scan start, the engine queries membership during
// generation, and the caller adds each accepted stem before processing the
// next title. Membership is case-insensitive.
//
// NameSet is not goroutine-safe. Batch runs are sequential by design: the
// processing order determines first-come allocation of short names, and a
// caller that parallelizes must serialize all access itself.
type NameSet struct {
	members map[string]struct{}
}

// NewNameSet returns an empty set, optionally pre-seeded.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{members: make(map[string]struct{}, len(names))}
	s.Seed(names...)
	return s
}

// Normalize maps a name to its membership key.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Seed adds existing names in bulk (typically on-disk stems at scan start).
func (s *NameSet) Seed(names ...string) {
	for _, n := range names {
		s.Add(n)
	}
}

// Add claims a name. Adding an already-claimed name is a no-op.
func (s *NameSet) Add(name string) {
	s.members[Normalize(name)] = struct{}{}
}

// Has reports whether name is already claimed.
func (s *NameSet) Has(name string) bool {
	_, ok := s.members[Normalize(name)]
	return ok
}

// Len reports the number of claimed names.
func (s *NameSet) Len() int { return len(s.members) }

// Names returns all claimed names in sorted order. Sorting keeps the
// differentiation engine's sibling mining deterministic.
func (s *NameSet) Names() []string {
	out := make([]string, 0, len(s.members))
	for n := range s.members {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
