package snippets

import (
	"sort"

	"github.com/revradar/revradar/internal/models"
	"github.com/revradar/revradar/internal/sentiment"
	"github.com/revradar/revradar/internal/textproc"
)

const (
	// Length bounds are exclusive on both ends.
	minSentenceLen = 20
	maxSentenceLen = 300

	positiveCutoff = 0.6
	negativeCutoff = -0.4

	maxPerBucket = 3
)

// Select splits a persona's review pool into sentences and picks the top
// evidence per polarity: up to three sentences scoring above 0.6 and up to
// three below -0.4. Fewer than three, including zero, is valid output.
func Select(reviews []string) models.GroupSnippets {
	var scored []models.ScoredSnippet
	for _, review := range reviews {
		clean := textproc.StripArtifacts(review)
		for _, sent := range textproc.SplitSentences(clean) {
			if len(sent) <= minSentenceLen || len(sent) >= maxSentenceLen {
				continue
			}
			scored = append(scored, models.ScoredSnippet{
				Text:  sent,
				Score: sentiment.Compound(sent),
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	var positive []string
	for _, s := range scored {
		if s.Score > positiveCutoff && len(positive) < maxPerBucket {
			positive = append(positive, s.Text)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score < scored[j].Score })
	var negative []string
	for _, s := range scored {
		if s.Score < negativeCutoff && len(negative) < maxPerBucket {
			negative = append(negative, s.Text)
		}
	}

	return models.GroupSnippets{Positive: positive, Negative: negative}
}
