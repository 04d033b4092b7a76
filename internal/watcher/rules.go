package watcher

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Capture recognition: only files that look like SingleFile output are moved
// out of the download directory. Everything else in there belongs to the
// user.
var (
	// Timestamps SingleFile appends in parentheses, e.g.
	// "Title (2024-10-11 13_04_05).html" or "Title (10_11_2024 1_04_05 PM).html".
	reISOStamp = regexp.MustCompile(`\((?:19|20)\d{2}[-_.]\d{1,2}[-_.]\d{1,2}[^)]*\)`)
	reUSStamp  = regexp.MustCompile(`\(\d{1,2}_\d{1,2}_(?:19|20)\d{2}[^)]*\)`)
)

// IsCapture reports whether a base filename looks like a SingleFile capture:
// an .html file carrying either a social "上的" posted-by marker or a
// parenthesized capture timestamp.
func IsCapture(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
	default:
		return false
	}

	if strings.Contains(name, "上的") {
		return true
	}
	return reISOStamp.MatchString(name) || reUSStamp.MatchString(name)
}
