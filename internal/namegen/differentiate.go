package namegen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minSweepStem is the floor for the progressive truncation sweep; going
// shorter destroys too much content to be worth avoiding a numeric suffix.
const minSweepStem = 12

// siblingPrefixBytes is how much of the candidate's head is used to find the
// existing names it is colliding with.
const siblingPrefixBytes = 24

// defaultKeyTerms is the heuristic table behind key-term preservation:
// languages, platforms, and strong category words that keep a differentiated
// name recognizable. It is replaceable via Options.KeyTerms and affects
// readability only, never uniqueness.
var defaultKeyTerms = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "Rust", "Swift",
	"Kotlin", "Ruby", "PHP", "C++", "React", "Vue", "Angular", "Node",
	"Docker", "Kubernetes", "Linux", "AWS", "SQL",
	"AI", "OpenAI", "GPT", "ChatGPT", "Claude", "LLM", "API",
	"iPhone", "Android", "Bitcoin", "Ethereum",
	"Tutorial", "Guide", "Review", "Analysis", "News",
	"Complete", "Ultimate", "Advanced", "Beginners",
}

// differentiate tries to turn a colliding candidate into a unique stem while
// keeping it readable, in three stages: a progressive truncation sweep,
// unique-term splicing mined from colliding siblings, and key-term
// preservation from the heuristic table. It reports false when every stage
// produced a colliding (or no) stem, which hands off to the conflict
// resolver.
func (g *Generator) differentiate(candidate string, names *NameSet, budget int) (string, bool) {
	// Stage 1: sweep shorter truncation lengths in fine-grained steps. A
	// nearby boundary often shifts the cut enough to expose distinguishing
	// content that the first truncation dropped.
	floor := budget / 2
	if floor < minSweepStem {
		floor = minSweepStem
	}
	for limit := budget - 2; limit >= floor; limit -= 2 {
		stem := SemanticTruncate(candidate, limit)
		if stem != "" && !names.Has(stem) {
			return stem, true
		}
	}

	// Stage 2: splice in a term the colliding siblings don't have.
	if stem, ok := g.spliceTerm(candidate, names, budget, g.uniqueTerm(candidate, names)); ok {
		return stem, true
	}

	// Stage 3: fall back to the first recognizable key term anywhere in the
	// candidate.
	for _, term := range g.keyTerms {
		if !containsToken(candidate, term) {
			continue
		}
		if stem, ok := g.spliceTerm(candidate, names, budget, term); ok {
			return stem, true
		}
	}

	return "", false
}

// uniqueTerm picks the token most likely to distinguish candidate from the
// existing names sharing its prefix. Preference order: key-table terms,
// capitalized tokens, then the last content-bearing token. Empty result means
// no usable token exists.
func (g *Generator) uniqueTerm(candidate string, names *NameSet) string {
	siblingTokens := make(map[string]struct{})
	prefix := Normalize(candidate[:runeSafeCut(candidate, siblingPrefixBytes)])
	for _, name := range names.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, tok := range tokenize(name) {
			siblingTokens[Normalize(tok)] = struct{}{}
		}
	}

	tokens := tokenize(candidate)
	best := ""
	bestScore := 0
	for i, tok := range tokens {
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if _, taken := siblingTokens[Normalize(tok)]; taken {
			continue
		}
		score := 1
		if i == len(tokens)-1 {
			score = 2
		}
		if isCapitalized(tok) {
			score = 3
		}
		if g.isKeyTerm(tok) {
			score = 4
		}
		if score > bestScore {
			best, bestScore = tok, score
		}
	}
	return best
}

// spliceTerm builds "{truncated-head}…{term}" within budget and reports
// whether the result is non-colliding.
func (g *Generator) spliceTerm(candidate string, names *NameSet, budget int, term string) (string, bool) {
	if term == "" {
		return "", false
	}
	headBudget := budget - len(Ellipsis) - len(term)
	if headBudget < minSweepStem {
		return "", false
	}
	head := strings.TrimRight(candidate[:runeSafeCut(candidate, headBudget)], " _")
	if b := boundaryCut(candidate, runeSafeCut(candidate, headBudget)); b > 0 {
		head = strings.TrimRight(candidate[:b], " _")
	}
	if head == "" || strings.HasSuffix(head, term) {
		return "", false
	}
	stem := head + Ellipsis + term
	if len(stem) > budget || names.Has(stem) {
		return "", false
	}
	return stem, true
}

func (g *Generator) isKeyTerm(tok string) bool {
	for _, kt := range g.keyTerms {
		if strings.EqualFold(tok, kt) {
			return true
		}
	}
	return false
}

// tokenize splits a stem or title on the separators assembly produces.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '_', ' ', '\t', '…':
			return true
		}
		return false
	})
}

// containsToken reports whether term appears in s as a whole token.
func containsToken(s, term string) bool {
	for _, tok := range tokenize(s) {
		if strings.EqualFold(tok, term) {
			return true
		}
	}
	return false
}

// isCapitalized reports an ASCII-capitalized token (proper-noun shaped).
func isCapitalized(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return r < utf8.RuneSelf && unicode.IsUpper(r)
}
