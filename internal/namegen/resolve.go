package namegen

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// numericReserve holds room for the "_NNN" suffix pattern.
const numericReserve = 4

// digestBytes is the length of the short content digest used by the hash
// fallback (8 hex characters).
const digestBytes = 4

// Digest8 returns a short deterministic content digest of s, suitable for
// filename suffixes and fallback stems.
func Digest8(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:digestBytes])
}

// resolveConflict is the deterministic last-resort uniqueness stage. It
// always succeeds: numbered suffixes _001.._999 first, then a content-derived
// digest of seed, then a second-precision timestamp, then a counter-salted
// digest as the absolute terminal case for adversarial batches.
func (g *Generator) resolveConflict(stem string, names *NameSet, budget int, seed string) string {
	base := suffixBase(stem, budget-numericReserve)
	for n := 1; n <= 999; n++ {
		candidate := fmt.Sprintf("%s_%03d", base, n)
		if !names.Has(candidate) {
			return candidate
		}
	}

	digest := Digest8(seed)
	base = suffixBase(stem, budget-len(digest)-1)
	if candidate := base + "_" + digest; !names.Has(candidate) {
		return candidate
	}

	timestamp := g.now().Format("150405")
	base = suffixBase(stem, budget-len(timestamp)-1)
	if candidate := base + "_" + timestamp; !names.Has(candidate) {
		return candidate
	}

	for n := 1; ; n++ {
		salted := Digest8(fmt.Sprintf("%s#%d", seed, n))
		base = suffixBase(stem, budget-len(salted)-1)
		if candidate := base + "_" + salted; !names.Has(candidate) {
			return candidate
		}
	}
}

// suffixBase re-truncates a stem to leave room for a suffix, guarding against
// empty results on degenerate inputs.
func suffixBase(stem string, limit int) string {
	base := strings.TrimRight(SemanticTruncate(stem, limit), "_ ")
	base = strings.TrimSuffix(base, Ellipsis)
	base = strings.TrimRight(base, "_ ")
	if base == "" {
		base = "untitled"
	}
	return base
}
