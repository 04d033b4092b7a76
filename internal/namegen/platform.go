package namegen

import (
	"regexp"
	"strings"
)

// Platform identifies the social network or site a title was captured from.
type Platform string

// Known platforms. PlatformNone means no recognizable pattern was found;
// PlatformWeb is a generic non-social page identified only by its domain.
const (
	PlatformX         Platform = "X"
	PlatformInstagram Platform = "Instagram"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformTikTok    Platform = "TikTok"
	PlatformYouTube   Platform = "YouTube"
	PlatformReddit    Platform = "Reddit"
	PlatformWeb       Platform = "Web"
	PlatformNone      Platform = ""
)

// PlatformInfo is the Content Extractor's output: the detected platform plus
// whatever user handle and content id the matched rule could capture. Both
// strings may be empty.
type PlatformInfo struct {
	Platform  Platform
	User      string
	ContentID string
}

// postedBy is the localized "posted by" separator glyph that SingleFile
// captures emit between platform and handle (e.g. "X_上的_宝玉").
const postedBy = "上的"

// extractRule pairs a compiled pattern with an extraction function. Rules are
// evaluated in order by [ExtractPlatform]; first match wins. New platforms
// are added by appending rows, not by branching logic.
type extractRule struct {
	name    string
	re      *regexp.Regexp
	extract func(m []string) PlatformInfo
}

// Titles frequently arrive as prior filenames, so the domain rules accept
// both "/" and "_" as path separators.
var (
	rePostedBy = regexp.MustCompile(
		`(?i)\b(X|Twitter|Instagram|LinkedIn|TikTok|YouTube|Reddit)[ _]?上的[ _]?([^_\s“”"'‘’：:，。！？、]+)`)

	reXStatus = regexp.MustCompile(
		`(?i)(?:https?://)?(?:www\.)?(?:twitter|x)\.com[/_]([A-Za-z0-9_.\-]+)[/_]status(?:es)?[/_]([0-9]+)`)

	reInstagramPost = regexp.MustCompile(
		`(?i)(?:https?://)?(?:www\.)?instagram\.com[/_](?:p|reel)[/_]([A-Za-z0-9_\-]+)`)

	reLinkedInPost = regexp.MustCompile(
		`(?i)(?:https?://)?(?:www\.)?linkedin\.com[/_]posts[/_]([A-Za-z0-9\-]+)`)

	reLinkedInActivity = regexp.MustCompile(`(?i)activity[-_]([0-9]+)`)

	reTikTokVideo = regexp.MustCompile(
		`(?i)(?:https?://)?(?:www\.)?tiktok\.com[/_]@([A-Za-z0-9_.]+)[/_]video[/_]([0-9]+)`)

	reYouTubeVideo = regexp.MustCompile(
		`(?i)(?:https?://)?(?:www\.)?(?:youtube\.com[/_]watch\?v=|youtu\.be[/_])([A-Za-z0-9_\-]{6,})`)

	reRedditComments = regexp.MustCompile(
		`(?i)(?:https?://)?(?:www\.)?reddit\.com[/_]r[/_]([A-Za-z0-9_]+)[/_]comments[/_]([a-z0-9]+)`)

	reBareDomain = regexp.MustCompile(
		`^(?:https?://)?(?:www\.)?([a-z0-9\-]+(?:\.[a-z0-9\-]+)*\.[a-z]{2,})(?:[/_]\S*)?`)
)

var extractRules = []extractRule{
	{"posted-by-marker", rePostedBy, func(m []string) PlatformInfo {
		return PlatformInfo{
			Platform: canonicalPlatform(m[1]),
			User:     TrimHandle(m[2]),
		}
	}},
	{"x-status", reXStatus, func(m []string) PlatformInfo {
		return PlatformInfo{Platform: PlatformX, User: TrimHandle(m[1]), ContentID: m[2]}
	}},
	{"instagram-post", reInstagramPost, func(m []string) PlatformInfo {
		return PlatformInfo{Platform: PlatformInstagram, ContentID: m[1]}
	}},
	{"linkedin-post", reLinkedInPost, func(m []string) PlatformInfo {
		return PlatformInfo{Platform: PlatformLinkedIn, User: TrimHandle(m[1])}
	}},
	{"tiktok-video", reTikTokVideo, func(m []string) PlatformInfo {
		return PlatformInfo{Platform: PlatformTikTok, User: TrimHandle(m[1]), ContentID: m[2]}
	}},
	{"youtube-video", reYouTubeVideo, func(m []string) PlatformInfo {
		return PlatformInfo{Platform: PlatformYouTube, ContentID: m[1]}
	}},
	{"reddit-comments", reRedditComments, func(m []string) PlatformInfo {
		return PlatformInfo{Platform: PlatformReddit, User: m[1], ContentID: m[2]}
	}},
	{"bare-domain", reBareDomain, func(m []string) PlatformInfo {
		return PlatformInfo{Platform: PlatformWeb, User: ""}
	}},
}

// canonicalPlatform folds case variants and legacy names onto the enum.
func canonicalPlatform(token string) Platform {
	switch strings.ToLower(token) {
	case "x", "twitter":
		return PlatformX
	case "instagram":
		return PlatformInstagram
	case "linkedin":
		return PlatformLinkedIn
	case "tiktok":
		return PlatformTikTok
	case "youtube":
		return PlatformYouTube
	case "reddit":
		return PlatformReddit
	}
	return PlatformWeb
}

// ExtractPlatform parses a raw title for platform markers. Absence of a match
// is a normal PlatformNone result, never an error.
func ExtractPlatform(title string) PlatformInfo {
	for _, rule := range extractRules {
		m := rule.re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		info := rule.extract(m)

		// Domain rules carry the content id in the path; the posted-by rule
		// does not, but the title may still embed a status path later on.
		if info.Platform == PlatformX && info.ContentID == "" {
			if sm := reXStatus.FindStringSubmatch(title); sm != nil {
				if info.User == "" {
					info.User = TrimHandle(sm[1])
				}
				info.ContentID = sm[2]
			}
		}
		if info.Platform == PlatformLinkedIn && info.ContentID == "" {
			if am := reLinkedInActivity.FindStringSubmatch(title); am != nil {
				info.ContentID = am[1]
			}
		}
		return info
	}
	return PlatformInfo{Platform: PlatformNone}
}
