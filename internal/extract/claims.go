package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Claim length bounds: pieces at or outside these limits are discarded.
const (
	minClaimLen = 20
	maxClaimLen = 500
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

	// A sentence qualifies as a candidate claim when it matches at least
	// one of these indicators.
	yearRe        = regexp.MustCompile(`\d{4}`)
	verbRe        = regexp.MustCompile(`(?i)(is|are|was|were|has|have|will|can|should|must)\s+`)
	attributionRe = regexp.MustCompile(`(?i)(according to|research shows|studies|data|report|found|discovered)`)

	digitRe = regexp.MustCompile(`\d`)
)

// ExtractClaims extracts up to maxClaims candidate factual claims from
// free page text. Sentences are split on terminating punctuation,
// filtered by length and claim indicators, then ordered best-first:
// digit-bearing sentences ahead of the rest, longest first within each
// group. An empty result means the page has nothing verifiable; callers
// treat that as a distinct condition, not a reason to re-extract.
func ExtractClaims(text string, maxClaims int) []string {
	if maxClaims <= 0 {
		return nil
	}

	var candidates []string
	for _, piece := range sentenceSplitRe.Split(text, -1) {
		s := strings.TrimSpace(piece)
		if len(s) <= minClaimLen || len(s) >= maxClaimLen {
			continue
		}
		if isClaimLike(s) {
			candidates = append(candidates, s)
		}
	}

	// Stable sort keeps the original relative order for ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		aDigit, bDigit := digitRe.MatchString(a), digitRe.MatchString(b)
		if aDigit != bDigit {
			return aDigit
		}
		return len(a) > len(b)
	})

	if len(candidates) > maxClaims {
		candidates = candidates[:maxClaims]
	}
	return candidates
}

// isClaimLike reports whether a sentence matches any claim indicator:
// a candidate year, a copula/modal verb, or an attribution phrase.
func isClaimLike(s string) bool {
	return yearRe.MatchString(s) || verbRe.MatchString(s) || attributionRe.MatchString(s)
}
