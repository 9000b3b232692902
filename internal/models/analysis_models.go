package models

// GroupSentiment holds the aggregate lexicon sentiment for one pool of
// reviews, either a persona group or a single source platform.
type GroupSentiment struct {
	Positive       int     `json:"positive"`
	Neutral        int     `json:"neutral"`
	Negative       int     `json:"negative"`
	TotalReviews   int     `json:"total_reviews"`
	SentimentScore float64 `json:"sentiment_score"`
	AvgCompound    float64 `json:"avg_compound"`
}

// ScoredSnippet is a single review text with its compound score and label.
type ScoredSnippet struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// GroupKeywords holds up to five representative phrases per polarity bucket.
type GroupKeywords struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// GroupSnippets holds up to three evidence sentences per polarity bucket.
type GroupSnippets struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

type GroupAnalysis struct {
	SentimentByGroup map[string]GroupSentiment `json:"sentiment_by_group"`
	KeywordsByGroup  map[string]GroupKeywords  `json:"keywords_by_group"`
	SnippetsByGroup  map[string]GroupSnippets  `json:"snippets_by_group"`
}

type Timings struct {
	TotalTimeSec float64 `json:"total_time_sec"`
}

// ModelAnalysis is the unified per-model artifact, the unit of caching.
type ModelAnalysis struct {
	ModelName     string                    `json:"model_name"`
	TotalReviews  int                       `json:"total_reviews"`
	IsDummy       bool                      `json:"is_dummy,omitempty"`
	PlatformStats map[string]GroupSentiment `json:"platform_stats"`
	GroupAnalysis GroupAnalysis             `json:"group_analysis"`
	Timings       Timings                   `json:"timings"`
}
