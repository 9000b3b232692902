package keywords

import (
	"regexp"
	"strings"

	"github.com/revradar/revradar/internal/sentiment"
	"github.com/revradar/revradar/internal/textproc"
)

var punctPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// filterKeywords applies the rejection policy in order and returns the
// first MaxKeywords survivors, deduplicated in first-seen order.
func filterKeywords(candidates []string, positiveBucket bool) []string {
	var filtered []string
	seen := make(map[string]struct{}, len(candidates))

	for _, kw := range candidates {
		clean := strings.TrimSpace(punctPattern.ReplaceAllString(kw, ""))
		words := strings.Fields(strings.ToLower(clean))
		if len(words) == 0 {
			continue
		}

		if isDomainStopword(words[0]) || isDomainStopword(words[len(words)-1]) {
			continue
		}

		if positiveBucket {
			if containsAny(clean, negativeConcepts) {
				continue
			}
			if !containsAny(clean, techConcepts) {
				continue
			}
			// A "positive" keyword must not itself read as negative.
			if sentiment.Compound(clean) < sentiment.NegativeThreshold {
				continue
			}
		}

		if !textproc.HasNoun(clean) {
			continue
		}

		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		filtered = append(filtered, clean)

		if len(filtered) == MaxKeywords {
			break
		}
	}
	return filtered
}

func containsAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
