package sentiment

import (
	"math"

	"github.com/jonreiter/govader"

	"github.com/revradar/revradar/internal/models"
)

// Classification thresholds over the VADER compound score. Fixed, not
// tunable per call.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// The lexicon loads once and is read-only afterwards, safe to share across
// concurrent pipeline goroutines.
var analyzer = govader.NewSentimentIntensityAnalyzer()

// Compound returns the VADER compound polarity in [-1, 1].
func Compound(text string) float64 {
	return analyzer.PolarityScores(text).Compound
}

// Score computes the compound polarity and its label for one text.
func Score(text string) models.ScoredSnippet {
	compound := Compound(text)

	var label string
	switch {
	case compound >= PositiveThreshold:
		label = "positive"
	case compound <= NegativeThreshold:
		label = "negative"
	default:
		label = "neutral"
	}

	return models.ScoredSnippet{Text: text, Label: label, Score: compound}
}

// Aggregate computes the lightweight per-pool stats.
func Aggregate(reviews []string) models.GroupSentiment {
	var pos, neg, neu int
	var compoundTotal float64

	for _, r := range reviews {
		s := Score(r)
		compoundTotal += s.Score
		switch s.Label {
		case "positive":
			pos++
		case "negative":
			neg++
		default:
			neu++
		}
	}

	agg := models.GroupSentiment{
		Positive:     pos,
		Neutral:      neu,
		Negative:     neg,
		TotalReviews: len(reviews),
	}
	if agg.TotalReviews > 0 {
		agg.SentimentScore = round3(float64(pos-neg) / float64(agg.TotalReviews))
		agg.AvgCompound = round3(compoundTotal / float64(agg.TotalReviews))
	}
	return agg
}

// Detailed returns the aggregate plus per-review labels, which keyword
// extraction uses to split pools by polarity.
func Detailed(reviews []string) (models.GroupSentiment, []models.ScoredSnippet) {
	agg := Aggregate(reviews)
	scored := make([]models.ScoredSnippet, 0, len(reviews))
	for _, r := range reviews {
		scored = append(scored, Score(r))
	}
	return agg, scored
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
