package namegen

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewRejectsTinyBudget(t *testing.T) {
	if _, err := New(Options{MaxBytes: 10}); err == nil {
		t.Fatalf("New accepted a budget with no room for extension plus suffix")
	}
	if _, err := New(Options{MaxBytes: 21}); err != nil {
		t.Fatalf("New rejected the minimum viable budget: %v", err)
	}
}

func TestGenerateFormats(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		name      string
		title     string
		sourceURL string
		wantStem  string
		want      Format
	}{
		{
			name:     "clean title passes through sanitized",
			title:    "Complete Python Programming Guide for Absolute Beginners 2024",
			wantStem: "Complete_Python_Programming_Guide_for_Absolute_Beginners_2024",
			want:     FormatRaw,
		},
		{
			name:      "explicit source url wins",
			title:     "X_上的_DN-Samuel_tweet内容",
			sourceURL: "https://x.com/SamuelQZQ/status/1976062342451667233",
			wantStem:  "X_上的_DN-Samuel_[URL]_https%3A%2F%2Fx.com%2FSamuelQZQ%2Fstatus%2F1976062342451667233",
			want:      FormatURL,
		},
		{
			name:     "status path reconstructs a canonical link",
			title:    "twitter.com_jack_status_20",
			wantStem: "X_上的_jack_[URL]_https%3A%2F%2Fx.com%2Fjack%2Fstatus%2F20",
			want:     FormatURL,
		},
		{
			name:     "handle without link keeps content",
			title:    "X_上的_宝玉_OpenAI新功能分析",
			wantStem: "X_上的_宝玉_OpenAI新功能分析",
			want:     FormatContent,
		},
		{
			name:     "emoji stripped from content format",
			title:    "X_上的_宝玉_🚀发布了新模型",
			wantStem: "X_上的_宝玉_发布了新模型",
			want:     FormatContent,
		},
		{
			name:     "pure emoji title degrades to digest stem",
			title:    "😀🎉🚀",
			wantStem: "untitled_" + Digest8("😀🎉🚀"),
			want:     FormatRaw,
		},
		{
			name:     "empty title degrades to digest stem",
			title:    "",
			wantStem: "untitled_" + Digest8(""),
			want:     FormatRaw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Generate(tt.title, tt.sourceURL, NewNameSet())
			if res.Stem != tt.wantStem {
				t.Fatalf("Generate(%q).Stem = %q, want %q", tt.title, res.Stem, tt.wantStem)
			}
			if res.Format != tt.want {
				t.Fatalf("Generate(%q).Format = %v, want %v", tt.title, res.Format, tt.want)
			}
			if res.Differentiated || res.Fallback {
				t.Fatalf("Generate(%q) flags = %+v, want clean first allocation", tt.title, res)
			}
			if len(res.Stem)+len(g.Extension()) > g.MaxBytes() {
				t.Fatalf("Generate(%q) over budget: %d bytes", tt.title, len(res.Stem))
			}
		})
	}
}

func TestGenerateNumberedConflicts(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		title    string
		existing []string
		want     string
	}{
		{"test", []string{"test"}, "test_001"},
		{"test", []string{"test", "test_001"}, "test_002"},
		{"X_上的_宝玉_OpenAI新功能分析", []string{"X_上的_宝玉_OpenAI新功能分析"}, "X_上的_宝玉_OpenAI新功能分析_001"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			res := g.Generate(tt.title, "", NewNameSet(tt.existing...))
			if res.Stem != tt.want {
				t.Fatalf("Generate(%q) = %q, want %q", tt.title, res.Stem, tt.want)
			}
			if !res.Fallback {
				t.Fatalf("Generate(%q) should report the conflict-resolver fallback", tt.title)
			}
		})
	}
}

func TestGenerateDifferentiatesSimilarTitles(t *testing.T) {
	g, err := New(Options{MaxBytes: 45})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	names := NewNameSet()
	langs := []string{"Java", "JavaScript", "TypeScript"}
	wants := []string{
		"Complete_Programming_Guide_for…",
		"Complete_Programming_Guide…",
		"Complete_Programming…",
	}

	for i, lang := range langs {
		title := "Complete Programming Guide for Absolute Beginners 2024 Edition " + lang
		res := g.Generate(title, "", names)
		if res.Stem != wants[i] {
			t.Fatalf("Generate(%q) = %q, want %q", title, res.Stem, wants[i])
		}
		if res.Fallback {
			t.Fatalf("Generate(%q) hit the numeric fallback before differentiation", title)
		}
		names.Add(res.Stem)
	}
}

func TestGenerateHundredSimilarTitles(t *testing.T) {
	g, err := New(Options{MaxBytes: 45})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	budget := g.MaxBytes() - len(g.Extension())

	names := NewNameSet()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		title := fmt.Sprintf("Complete Programming Guide for Absolute Beginners Volume %d Extended Edition", i)
		res := g.Generate(title, "", names)

		if res.Stem == "" {
			t.Fatalf("iteration %d: empty stem", i)
		}
		if len(res.Stem) > budget {
			t.Fatalf("iteration %d: %q is %d bytes over budget %d", i, res.Stem, len(res.Stem), budget)
		}
		if !utf8.ValidString(res.Stem) {
			t.Fatalf("iteration %d: invalid UTF-8 %q", i, res.Stem)
		}
		key := Normalize(res.Stem)
		if _, dup := seen[key]; dup {
			t.Fatalf("iteration %d: duplicate stem %q", i, res.Stem)
		}
		seen[key] = struct{}{}
		names.Add(res.Stem)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := newTestGenerator(t)

	title := "X_上的_宝玉_OpenAI新功能分析"
	existing := []string{"x_上的_宝玉_openai新功能分析", "other_name"}

	a := g.Generate(title, "", NewNameSet(existing...))
	b := g.Generate(title, "", NewNameSet(existing...))
	if a != b {
		t.Fatalf("Generate not reproducible: %+v vs %+v", a, b)
	}
}

func TestGenerateBudgetInvariantAcrossConfigs(t *testing.T) {
	long := strings.Repeat("很长的标题内容 mixed with ASCII words ", 8) + "结尾。"

	for _, maxBytes := range []int{21, 40, 80, DefaultMaxBytes} {
		g, err := New(Options{MaxBytes: maxBytes})
		if err != nil {
			t.Fatalf("New(%d): %v", maxBytes, err)
		}
		res := g.Generate(long, "", NewNameSet())
		total := len(res.Stem) + len(g.Extension())
		if total > maxBytes {
			t.Fatalf("budget %d: stem %q makes a %d-byte filename", maxBytes, res.Stem, total)
		}
		if !utf8.ValidString(res.Stem) {
			t.Fatalf("budget %d: invalid UTF-8 %q", maxBytes, res.Stem)
		}
	}
}

func TestGenerateCustomKeyTerms(t *testing.T) {
	g, err := New(Options{MaxBytes: 45, KeyTerms: []string{"Zig"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Stems produced with a custom table still respect uniqueness and budget;
	// the table only changes which token splicing prefers.
	names := NewNameSet()
	for i := 0; i < 10; i++ {
		title := fmt.Sprintf("Complete Programming Guide for Absolute Beginners Volume %d in Zig", i)
		res := g.Generate(title, "", names)
		if names.Has(res.Stem) {
			t.Fatalf("iteration %d: colliding stem %q", i, res.Stem)
		}
		names.Add(res.Stem)
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		f    Format
		want string
	}{
		{FormatURL, "url"},
		{FormatContent, "content"},
		{FormatRaw, "raw"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Fatalf("Format(%d).String() = %q, want %q", int(tt.f), got, tt.want)
		}
	}
}

var reNumSuffix = regexp.MustCompile(`_\d{3}$`)

func TestDifferentiationBeforeNumbering(t *testing.T) {
	g, err := New(Options{MaxBytes: 45})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	names := NewNameSet()
	for _, lang := range []string{"Java", "JavaScript", "TypeScript", "Kotlin"} {
		title := "Complete Programming Guide for Absolute Beginners 2024 Edition " + lang
		res := g.Generate(title, "", names)
		if reNumSuffix.MatchString(res.Stem) {
			t.Fatalf("Generate(%q) = %q: numeric suffix before differentiation was exhausted", title, res.Stem)
		}
		names.Add(res.Stem)
	}
}
