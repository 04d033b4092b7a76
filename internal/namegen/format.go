package namegen

import (
	"regexp"
	"strings"
	"unicode"
)

// Format tags which assembly template produced a candidate. It is carried on
// the Result for logging and batch statistics.
type Format int

const (
	// FormatURL embeds a percent-encoded source link so the page remains
	// reachable from the filename alone.
	FormatURL Format = iota

	// FormatContent keeps as much descriptive text as possible when no link
	// can be recovered.
	FormatContent

	// FormatRaw is the degraded path for titles with no recognizable
	// platform structure.
	FormatRaw
)

func (f Format) String() string {
	switch f {
	case FormatURL:
		return "url"
	case FormatContent:
		return "content"
	default:
		return "raw"
	}
}

// domainPathRes are the platform path shapes scrubbed out of content
// descriptions; their information lives on in PlatformInfo instead.
var domainPathRes = []*regexp.Regexp{
	reXStatus, reInstagramPost, reLinkedInPost, reTikTokVideo,
	reYouTubeVideo, reRedditComments,
}

// assemble builds the not-yet-truncated candidate stem. URL-bearing titles
// get the URL format (the link is the primary archival value); titles with a
// platform but no link keep their descriptive text; everything else falls
// through to the lightly sanitized raw title.
func assemble(title string, info PlatformInfo, rawURL string) (string, Format) {
	social := info.Platform != PlatformNone && info.Platform != PlatformWeb

	if rawURL != "" {
		encoded := EncodeURLComponent(rawURL)
		if social && info.User != "" {
			return joinStem(string(info.Platform), postedBy, Sanitize(info.User), "[URL]", encoded), FormatURL
		}
		desc := contentDescription(title, info)
		if desc == "" {
			desc = "page"
		}
		return joinStem(desc, "[URL]", encoded), FormatURL
	}

	if info.Platform != PlatformNone {
		desc := contentDescription(title, info)
		parts := []string{string(info.Platform)}
		if social && info.User != "" {
			parts = append(parts, postedBy, Sanitize(info.User))
		}
		if desc != "" {
			parts = append(parts, desc)
		}
		return joinStem(parts...), FormatContent
	}

	stem := Sanitize(strings.TrimFunc(title, func(r rune) bool {
		return isQuoteRune(r) || unicode.IsSpace(r)
	}))
	if stem == "" {
		stem = "untitled_" + Digest8(title)
	}
	return stem, FormatRaw
}

// contentDescription is the title with platform/user markers, URL tails, and
// surrounding quotes stripped, sanitized for filesystem use.
func contentDescription(title string, info PlatformInfo) string {
	s := title

	// The [URL] marker and whatever follows it never belong in a description.
	if loc := reURLMarker.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}

	// Drop the posted-by marker together with the captured handle.
	if loc := rePostedBy.FindStringIndex(s); loc != nil {
		s = s[:loc[0]] + s[loc[1]:]
	}

	// Scrub platform path shapes and loose URLs; PlatformInfo already holds
	// their extractable pieces.
	for _, re := range domainPathRes {
		s = re.ReplaceAllString(s, "")
	}
	s = reBareURL.ReplaceAllString(s, "")
	s = reEncodedURL.ReplaceAllString(s, "")

	s = strings.TrimFunc(s, func(r rune) bool {
		if isQuoteRune(r) || unicode.IsSpace(r) {
			return true
		}
		switch r {
		case ':', '：', ',', '，', '、', '_', '-':
			return true
		}
		return false
	})
	return Sanitize(s)
}

// joinStem joins non-empty parts with the underscore separator.
func joinStem(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "_")
}
