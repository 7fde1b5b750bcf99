package intent

import (
	"strings"

	"github.com/kfarah/kitchenbuddy/internal/domain"
)

// similarityThreshold is the minimum edit-similarity ratio for a
// non-substring candidate to be considered a match.
const similarityThreshold = 0.6

// FindRecipeByName resolves a spoken recipe name against the candidate
// list. An exact case-insensitive title match short-circuits. Otherwise
// every candidate is scored two ways, substring coverage
// (len(name)/len(title) when the name appears inside the title) and
// edit-similarity ratio gated at similarityThreshold, and the highest
// score wins. Ties go to the earlier candidate, substring check first.
// Returns nil when nothing clears the bar.
func FindRecipeByName(name string, candidates []*domain.Recipe) *domain.Recipe {
	if name == "" {
		return nil
	}
	lowerName := strings.ToLower(name)

	var best *domain.Recipe
	bestScore := 0.0

	for _, r := range candidates {
		lowerTitle := strings.ToLower(r.Title)
		if lowerTitle == lowerName {
			return r
		}

		if strings.Contains(lowerTitle, lowerName) {
			score := float64(len(name)) / float64(len(r.Title))
			if score > bestScore {
				bestScore = score
				best = r
			}
		}

		if score := similarity(lowerName, lowerTitle); score > bestScore && score > similarityThreshold {
			bestScore = score
			best = r
		}
	}
	return best
}

// similarity computes the normalized edit-similarity ratio between two
// strings: 2*M / (len(a)+len(b)), where M is the total length of the
// matching blocks found by repeatedly taking the longest common
// substring and recursing into the unmatched regions on either side.
func similarity(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchLen(a, b)) / float64(total)
}

func matchLen(a, b string) int {
	ai, bi, n := longestCommonBlock(a, b)
	if n == 0 {
		return 0
	}
	return matchLen(a[:ai], b[:bi]) + n + matchLen(a[ai+n:], b[bi+n:])
}

// longestCommonBlock returns the start offsets and length of the longest
// common substring of a and b, preferring the leftmost occurrence in a,
// then in b.
func longestCommonBlock(a, b string) (besti, bestj, size int) {
	// lengths[j] holds the common-suffix length ending at a[i-1], b[j-1]
	// for the current row.
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0 // lengths[j-1] from the previous row
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > size {
					size = lengths[j]
					besti = i - size
					bestj = j - size
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return besti, bestj, size
}
