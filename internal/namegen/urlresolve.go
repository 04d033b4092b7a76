package namegen

import (
	"net/url"
	"regexp"
	"strings"
)

// Strategies for recovering a source URL from a title, tried in order.
var (
	// Explicit "[URL]" marker followed by an encoded or plain URL.
	reURLMarker = regexp.MustCompile(`\[URL\][ _]*(\S+)`)

	// A URL-shaped substring; the last one in the string wins since captures
	// append the source link after the content.
	reBareURL = regexp.MustCompile(`https?://[^\s"“”‘’<>]+`)

	// Percent-encoded scheme as it appears inside filenames.
	reEncodedURL = regexp.MustCompile(`(?i)https?%3A%2F%2F\S+`)
)

// ResolveURL recovers a canonical absolute URL from a title, or returns the
// empty string when nothing resolves. The empty result is the signal that
// assembly should use the content format instead of the URL format.
func ResolveURL(title string, info PlatformInfo) string {
	// 1. Explicit [URL] marker.
	if m := reURLMarker.FindStringSubmatch(title); m != nil {
		if u := decodeMarkedURL(m[1]); u != "" {
			return u
		}
	}

	// 2. A plain or encoded URL embedded in the title.
	if matches := reBareURL.FindAllString(title, -1); len(matches) > 0 {
		return trimURLTail(matches[len(matches)-1])
	}
	if m := reEncodedURL.FindString(title); m != "" {
		if u, err := url.QueryUnescape(m); err == nil {
			return trimURLTail(u)
		}
	}

	// 3. Platform-specific reconstruction from the extracted path pieces.
	return reconstructURL(info)
}

// decodeMarkedURL normalizes the token captured after a [URL] marker.
func decodeMarkedURL(token string) string {
	token = trimURLTail(token)
	if strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://") {
		return token
	}
	decoded, err := url.QueryUnescape(token)
	if err != nil {
		return ""
	}
	if strings.HasPrefix(decoded, "http://") || strings.HasPrefix(decoded, "https://") {
		return decoded
	}
	return ""
}

// trimURLTail drops closing punctuation that regularly trails captured URLs.
func trimURLTail(u string) string {
	return strings.TrimRight(u, ")]}>,.;:”’）】」…")
}

// reconstructURL synthesizes the canonical URL template for a platform when a
// content id (or at least a handle) was captured. twitter.com links
// canonicalize to x.com.
func reconstructURL(info PlatformInfo) string {
	switch info.Platform {
	case PlatformX:
		if info.User != "" && info.ContentID != "" {
			return "https://x.com/" + info.User + "/status/" + info.ContentID
		}
	case PlatformInstagram:
		if info.ContentID != "" {
			return "https://instagram.com/p/" + info.ContentID
		}
	case PlatformYouTube:
		if info.ContentID != "" {
			return "https://youtube.com/watch?v=" + info.ContentID
		}
	case PlatformTikTok:
		if info.User != "" && info.ContentID != "" {
			return "https://tiktok.com/@" + info.User + "/video/" + info.ContentID
		}
	case PlatformLinkedIn:
		if info.User != "" && info.ContentID != "" {
			return "https://linkedin.com/posts/" + info.User + "-activity-" + info.ContentID
		}
	case PlatformReddit:
		if info.User != "" && info.ContentID != "" {
			return "https://reddit.com/r/" + info.User + "/comments/" + info.ContentID
		}
	}
	return ""
}

// EncodeURLComponent percent-encodes a URL for embedding in a filename. Every
// reserved character is encoded, matching the capture tool's own output, so
// the link survives a round-trip through the filesystem.
func EncodeURLComponent(raw string) string {
	return strings.ReplaceAll(url.QueryEscape(raw), "+", "%20")
}
