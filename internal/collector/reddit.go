package collector

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/revradar/revradar/internal/clients"
	"github.com/revradar/revradar/internal/textproc"
)

const (
	redditSource      = "reddit"
	redditSearchLimit = 50
)

// RedditCollector gathers submissions and their comments from one
// subreddit via the search API.
type RedditCollector struct {
	opts      Options
	subreddit string
}

func NewRedditCollector(opts Options) *RedditCollector {
	subreddit := os.Getenv("REDDIT_SUBREDDIT")
	if subreddit == "" {
		subreddit = "laptops"
	}
	return &RedditCollector{opts: opts, subreddit: subreddit}
}

func (rc *RedditCollector) Source() string { return redditSource }

func (rc *RedditCollector) Fetch(ctx context.Context, modelName string) ([]string, error) {
	query := modelName
	if !strings.Contains(strings.ToLower(query), "review") {
		query += " review"
	}

	if cached, ok := lookup(ctx, rc.opts, redditSource, query); ok {
		return cached, nil
	}

	client := clients.GetRedditClient()
	posts, err := client.SearchPosts(ctx, rc.subreddit, query, redditSearchLimit)
	if err != nil {
		return nil, err
	}

	reviews := make([]string, 0, len(posts))
	for _, post := range posts {
		reviews = append(reviews, textproc.ConvertMarkdownToText(post.Title+" "+post.Selftext))

		comments, err := client.FetchComments(ctx, rc.subreddit, post.ID)
		if err != nil {
			// Partial results are acceptable; keep whatever was gathered.
			slog.Warn("[RedditCollector] Failed to fetch comments",
				slog.String("post_id", post.ID),
				slog.String("error", err.Error()))
			continue
		}
		for _, comment := range comments {
			reviews = append(reviews, textproc.ConvertMarkdownToText(comment))
		}
	}

	persist(ctx, rc.opts, redditSource, query, reviews)
	return reviews, nil
}
