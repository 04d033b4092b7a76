package namegen

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis marks truncated stems. It counts against the byte budget.
const Ellipsis = "…"

// boundaryWindow caps how far (in bytes) the truncator looks back from the
// ideal cut point for a semantic boundary. Wide enough to catch a boundary on
// normal prose, narrow enough to avoid degenerate one-word stems on
// boundary-sparse text.
const boundaryWindow = 15

// Boundary preference order: sentence > clause > word.
func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

func isClauseEnd(r rune) bool {
	switch r {
	case ',', ';', ':', '，', '；', '：', '、':
		return true
	}
	return false
}

func isWordSep(r rune) bool {
	switch r {
	case ' ', '\t', '_', '-':
		return true
	}
	return false
}

// SemanticTruncate shrinks s to at most maxBytes UTF-8 bytes, preferring cuts
// at sentence, clause, and word boundaries near the limit. A string that
// already fits is returned unchanged. Truncated results carry a trailing
// ellipsis when the budget has room for one; the cut never splits a
// multi-byte code point.
func SemanticTruncate(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) <= maxBytes {
		return s
	}

	budget := maxBytes
	marker := ""
	if maxBytes > len(Ellipsis) {
		budget = maxBytes - len(Ellipsis)
		marker = Ellipsis
	}

	cut := runeSafeCut(s, budget)
	if b := boundaryCut(s, cut); b > 0 {
		cut = b
	}

	out := strings.TrimRight(s[:cut], " _")
	if out == "" {
		out = s[:runeSafeCut(s, budget)]
	}
	return out + marker
}

// runeSafeCut returns the largest byte offset <= limit that does not land
// inside a multi-byte UTF-8 sequence.
func runeSafeCut(s string, limit int) int {
	if limit >= len(s) {
		return len(s)
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return limit
}

// boundaryCut searches backward from cut, within boundaryWindow bytes, for
// the best semantic boundary. It returns the byte offset to cut at, or 0 when
// no boundary lies inside the window. Sentence and clause terminators are
// kept in the output; word separators are not.
func boundaryCut(s string, cut int) int {
	low := cut - boundaryWindow
	if low < 0 {
		low = 0
	}

	var sentence, clause, word int
	for i := runeSafeCut(s, low); i < cut; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			break
		}
		end := i + size
		if end > cut {
			break
		}
		switch {
		case isSentenceEnd(r):
			sentence = end
		case isClauseEnd(r):
			clause = end
		case isWordSep(r):
			word = i
		}
		i = end
	}

	switch {
	case sentence > 0:
		return sentence
	case clause > 0:
		return clause
	case word > 0:
		return word
	}
	return 0
}
