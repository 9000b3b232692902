package collector

import (
	"context"
	"log/slog"
	"strings"

	"github.com/revradar/revradar/internal/clients"
)

const (
	youtubeSource        = "youtube"
	youtubeVideoLimit    = 10
	youtubeCommentsLimit = 100
)

// YouTubeCollector gathers top-level comments from review videos matching
// the model name. It sits behind the same interface and cache contract as
// the Reddit collector.
type YouTubeCollector struct {
	opts Options
}

func NewYouTubeCollector(opts Options) *YouTubeCollector {
	return &YouTubeCollector{opts: opts}
}

func (yc *YouTubeCollector) Source() string { return youtubeSource }

func (yc *YouTubeCollector) Fetch(ctx context.Context, modelName string) ([]string, error) {
	query := modelName
	if !strings.Contains(strings.ToLower(query), "review") {
		query += " review"
	}

	if cached, ok := lookup(ctx, yc.opts, youtubeSource, query); ok {
		return cached, nil
	}

	client := clients.GetYouTubeClient()
	videoIDs, err := client.SearchVideos(ctx, query, youtubeVideoLimit)
	if err != nil {
		return nil, err
	}

	var reviews []string
	for _, videoID := range videoIDs {
		comments, err := client.FetchComments(ctx, videoID, youtubeCommentsLimit)
		if err != nil {
			slog.Warn("[YouTubeCollector] Failed to fetch comments",
				slog.String("video_id", videoID),
				slog.String("error", err.Error()))
			continue
		}
		reviews = append(reviews, comments...)
	}

	persist(ctx, yc.opts, youtubeSource, query, reviews)
	return reviews, nil
}
