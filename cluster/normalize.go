package cluster

import (
	"regexp"
	"strings"
)

var (
	dashRunRe = regexp.MustCompile(`-{2,}`)
	dotRunRe  = regexp.MustCompile(`\.{2,}`)
)

// Normalize cleans extracted text: non-breaking spaces and right single
// quotes become ASCII, whitespace collapses to single spaces, stray
// punctuation tokens between words are dropped, and runs of dashes or
// periods are removed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	for {
		next := normalizeOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func normalizeOnce(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\u2019", "'")

	fields := strings.Fields(s)
	kept := make([]string, 0, len(fields))
	for i, f := range fields {
		if i > 0 && i < len(fields)-1 && isStrayPunct(f) {
			continue
		}
		kept = append(kept, f)
	}
	s = strings.Join(kept, " ")

	s = dashRunRe.ReplaceAllString(s, "")
	s = dotRunRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func isStrayPunct(tok string) bool {
	return len(tok) == 1 && strings.Contains("(),;.?!", tok)
}
