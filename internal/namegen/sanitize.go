package namegen

import (
	"strings"
	"unicode"
)

// emojiRanges covers the symbol blocks stripped from titles before assembly.
// CJK punctuation is deliberately not listed: the truncator keys on it.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200D, Hi: 0x200D, Stride: 1}, // zero-width joiner
		{Lo: 0x20E3, Hi: 0x20E3, Stride: 1}, // combining keycap
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // misc symbols
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1}, // dingbats
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1}, // misc symbols and arrows
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1F0FF, Stride: 1}, // mahjong, dominoes, cards
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1}, // regional indicators (flags)
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // misc symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport and map
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1}, // symbols and pictographs extended
	},
}

// StripEmoji removes emoji, pictographs, and their joiner/selector plumbing.
func StripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(emojiRanges, r) {
			return -1
		}
		return r
	}, s)
}

// isQuoteRune reports quoting characters trimmed from handles and content
// descriptions, covering both ASCII and CJK forms.
func isQuoteRune(r rune) bool {
	switch r {
	case '"', '\'', '`',
		'“', '”', '‘', '’', // “ ” ‘ ’
		'「', '」', '『', '』', // 「 」 『 』
		'〈', '〉', '《', '》': // 〈 〉 《 》
		return true
	}
	return false
}

// TrimHandle strips quotes, colons, and CJK punctuation from both ends of a
// captured user handle.
func TrimHandle(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		if isQuoteRune(r) {
			return true
		}
		switch r {
		case ':', '：', '、', '。', '，', '！', '？': // ： 、 。 ， ！ ？
			return true
		}
		return unicode.IsSpace(r)
	})
}

// Sanitize produces the filesystem-safe form of a title fragment: emoji and
// control characters removed, filesystem-reserved characters and whitespace
// runs replaced with single underscores, leading/trailing separators trimmed.
func Sanitize(s string) string {
	s = StripEmoji(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		// Whitespace first: tab and newline are controls too, but they
		// separate words and must collapse to an underscore, not vanish.
		case unicode.IsSpace(r), r == '<', r == '>', r == ':', r == '"',
			r == '/', r == '\\', r == '|', r == '?', r == '*':
			pendingSep = true
		case r < 0x20 || r == 0x7F:
			// remaining control characters dropped outright
		default:
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}
