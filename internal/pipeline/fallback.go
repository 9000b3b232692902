package pipeline

import (
	"github.com/revradar/revradar/internal/models"
	"github.com/revradar/revradar/internal/persona"
)

// FallbackAnalysis returns the deterministic placeholder artifact used
// when every source comes back empty. Apart from the model name, its
// content is fixed, so persisting it is idempotent.
func FallbackAnalysis(modelName string) *models.ModelAnalysis {
	return &models.ModelAnalysis{
		ModelName:    modelName,
		TotalReviews: 125,
		IsDummy:      true,
		PlatformStats: map[string]models.GroupSentiment{
			"reddit": {
				Positive:       85,
				Neutral:        20,
				Negative:       20,
				TotalReviews:   125,
				SentimentScore: 0.52,
				AvgCompound:    0.45,
			},
		},
		GroupAnalysis: models.GroupAnalysis{
			SentimentByGroup: map[string]models.GroupSentiment{
				persona.Gamers:          {Positive: 30, Neutral: 5, Negative: 15, TotalReviews: 50, SentimentScore: 0.3},
				persona.Students:        {Positive: 40, Neutral: 5, Negative: 5, TotalReviews: 50, SentimentScore: 0.7},
				persona.ContentCreators: {Positive: 20, Neutral: 2, Negative: 3, TotalReviews: 25, SentimentScore: 0.68},
				persona.CasualUsers:     {Positive: 15, Neutral: 8, Negative: 2, TotalReviews: 25, SentimentScore: 0.52},
				persona.Programmers:     {Positive: 25, Neutral: 3, Negative: 7, TotalReviews: 35, SentimentScore: 0.51},
			},
			KeywordsByGroup: map[string]models.GroupKeywords{
				persona.Gamers: {
					Positive: []string{"high refresh rate", "good cooling", "rtx 3050", "smooth gameplay"},
					Negative: []string{"loud fans", "battery drain", "heavy brick", "average speakers"},
				},
				persona.Students: {
					Positive: []string{"lightweight", "long battery", "good keyboard", "portable"},
					Negative: []string{"plastic build", "dim screen", "webcam quality"},
				},
				persona.ContentCreators: {
					Positive: []string{"color accuracy", "4k display", "fast rendering", "sd slot"},
					Negative: []string{"low ram", "bloatware", "slow transfer"},
				},
				persona.CasualUsers: {
					Positive: []string{"great value", "streaming", "fast boot", "nice hinge"},
					Negative: []string{"fingerprint magnet", "average sound", "low brightness"},
				},
				persona.Programmers: {
					Positive: []string{"great keyboard", "vertical screen", "fast compile", "linux support"},
					Negative: []string{"soldered ram", "no thunderbolt", "small arrow keys"},
				},
			},
			SnippetsByGroup: map[string]models.GroupSnippets{
				persona.Gamers: {
					Positive: []string{"The RTX 3050 handles Valorant at 144fps easily, very smooth experience."},
					Negative: []string{"Fans get like a jet engine when playing Cyberpunk, had to use headphones."},
				},
				persona.Students: {
					Positive: []string{"I can carry this to all my classes without breaking my back, battery lasts 8 hours."},
					Negative: []string{"The screen is too dim for using outside on the campus quad."},
				},
				persona.ContentCreators: {
					Positive: []string{"The 100% sRGB screen is amazing for my Photoshop work."},
					Negative: []string{"Exporting 4K video took longer than I expected with 16GB RAM."},
				},
				persona.CasualUsers: {
					Positive: []string{"Perfect for Netflix and web browsing, boots up instantly."},
					Negative: []string{"The metal lid is a total fingerprint magnet."},
				},
				persona.Programmers: {
					Positive: []string{"The keyboard travel is perfect for long coding sessions."},
					Negative: []string{"Why is the RAM soldered? I need 32GB for Docker containers!"},
				},
			},
		},
		Timings: models.Timings{TotalTimeSec: 0.05},
	}
}
