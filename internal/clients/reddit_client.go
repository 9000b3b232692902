package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/revradar/revradar/internal/models"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"
)

var (
	redditClientInstance *RedditClient
	redditClientOnce     sync.Once
	redditRateLimitMutex sync.Mutex
)

type RedditClient struct {
	Config *clientcredentials.Config
	Client *http.Client
	mu     *sync.Mutex
}

func GetRedditClient() *RedditClient {
	redditClientOnce.Do(func() {
		oauthConf := &clientcredentials.Config{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			TokenURL:     REDDIT_AUTH_URL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}

		redditClientInstance = &RedditClient{
			Config: oauthConf,
			Client: oauthConf.Client(context.Background()),
			mu:     &sync.Mutex{},
		}
	})

	return redditClientInstance
}

func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.Client = rc.Config.Client(context.Background())
}

// SearchPosts runs a subreddit search for the query and returns the
// matching submissions.
func (rc *RedditClient) SearchPosts(ctx context.Context, subreddit, query string, limit int) ([]models.RedditAPIChildData, error) {
	endpoint := fmt.Sprintf("%s/r/%s/search", REDDIT_API_URL, subreddit)
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "relevance")
	params.Set("restrict_sr", "true")
	params.Set("limit", fmt.Sprintf("%d", limit))

	body, err := rc.get(ctx, endpoint+"?"+params.Encode(), 0)
	if err != nil {
		return nil, err
	}

	var response models.RedditAPIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("[RedditClient] Failed to decode search response: %w", err)
	}

	posts := make([]models.RedditAPIChildData, 0, len(response.Data.Children))
	for _, child := range response.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

// FetchComments returns the flattened comment bodies for one submission.
// Reddit responds with a two-element listing; the second element holds the
// comment tree.
func (rc *RedditClient) FetchComments(ctx context.Context, subreddit, postID string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/r/%s/comments/%s?depth=2&limit=100", REDDIT_API_URL, subreddit, postID)

	body, err := rc.get(ctx, endpoint, 0)
	if err != nil {
		return nil, err
	}

	var listings []models.RedditAPIResponse
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("[RedditClient] Failed to decode comments response: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []string
	for _, child := range listings[1].Data.Children {
		if child.Kind == "t1" && child.Data.Body != "" {
			comments = append(comments, child.Data.Body)
		}
	}
	return comments, nil
}

func (rc *RedditClient) get(ctx context.Context, rawURL string, attempt int) ([]byte, error) {
	redditRateLimitMutex.Lock()
	time.Sleep(INITIAL_BACKOFF)
	redditRateLimitMutex.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := rc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if attempt >= MAX_RETRIES {
			return nil, fmt.Errorf("[RedditClient] Unauthorized after token refresh")
		}
		slog.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
		rc.RefreshClient()
		return rc.get(ctx, rawURL, attempt+1)
	case http.StatusTooManyRequests:
		slog.Warn("[RedditClient] 429 Too Many Requests - Retrying with backoff")
		return rc.retryWithBackoff(ctx, rawURL, attempt)
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	}
	return nil, fmt.Errorf("[RedditClient] Unexpected status %d", resp.StatusCode)
}

func (rc *RedditClient) retryWithBackoff(ctx context.Context, rawURL string, attempt int) ([]byte, error) {
	backoff := INITIAL_BACKOFF
	for i := attempt + 1; i < MAX_RETRIES; i++ {
		slog.Warn("[RedditClient] Retrying request",
			slog.Int("attempt", i), slog.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}

		data, err := rc.get(ctx, rawURL, i)
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("[RedditClient] Max retries reached request failed")
}
