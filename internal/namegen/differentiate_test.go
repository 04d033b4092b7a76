package namegen

import "testing"

func TestDifferentiateSweep(t *testing.T) {
	g := newTestGenerator(t)

	// The full-length truncation is claimed; a shorter cut exposes a free stem.
	candidate := "Complete_Programming_Guide_for_Absolute_Beginners_in_Java"
	names := NewNameSet("Complete_Programming_Guide_for…")

	got, ok := g.differentiate(candidate, names, 40)
	if !ok {
		t.Fatalf("differentiate(%q) failed, want sweep result", candidate)
	}
	if want := "Complete_Programming_Guide…"; got != want {
		t.Fatalf("differentiate(%q) = %q, want %q", candidate, got, want)
	}
	if len(got) > 40 {
		t.Fatalf("sweep result %q is %d bytes over budget", got, len(got))
	}
}

func TestDifferentiateGivesUpOnBarrenCandidate(t *testing.T) {
	g := newTestGenerator(t)

	names := NewNameSet("aaaa")
	if got, ok := g.differentiate("aaaa", names, 40); ok {
		t.Fatalf("differentiate(%q) = %q, want failure", "aaaa", got)
	}
}

func TestUniqueTerm(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		name      string
		candidate string
		existing  []string
		want      string
	}{
		{
			name:      "key term outranks everything",
			candidate: "Complete_Programming_Guide_JavaScript",
			existing:  []string{"complete_programming_guide_java"},
			want:      "JavaScript",
		},
		{
			name:      "capitalized token when no key term",
			candidate: "Complete_Programming_Guide_covering_Zig_basics",
			existing:  []string{"complete_programming_guide_covering_basics"},
			want:      "Zig",
		},
		{
			name:      "all tokens taken",
			candidate: "Complete_Programming_Guide",
			existing:  []string{"complete_programming_guide"},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := NewNameSet(tt.existing...)
			if got := g.uniqueTerm(tt.candidate, names); got != tt.want {
				t.Fatalf("uniqueTerm(%q) = %q, want %q", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestSpliceTerm(t *testing.T) {
	g := newTestGenerator(t)
	names := NewNameSet()

	candidate := "Complete_Programming_Guide_JavaScript_Edition_Extended"
	got, ok := g.spliceTerm(candidate, names, 40, "JavaScript")
	if !ok {
		t.Fatalf("spliceTerm failed")
	}
	if want := "Complete_Programming_Guide…JavaScript"; got != want {
		t.Fatalf("spliceTerm = %q, want %q", got, want)
	}
	if len(got) > 40 {
		t.Fatalf("spliceTerm result %q is %d bytes over budget", got, len(got))
	}

	// Empty term and over-budget terms are rejected.
	if _, ok := g.spliceTerm(candidate, names, 40, ""); ok {
		t.Fatalf("spliceTerm accepted empty term")
	}
	if _, ok := g.spliceTerm(candidate, names, 20, "JavaScript"); ok {
		t.Fatalf("spliceTerm accepted term leaving no head room")
	}
}
