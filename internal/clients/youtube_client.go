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

	"github.com/revradar/revradar/internal/models"
)

const (
	YOUTUBE_SEARCH_ENDPOINT   = "https://www.googleapis.com/youtube/v3/search"
	YOUTUBE_COMMENTS_ENDPOINT = "https://www.googleapis.com/youtube/v3/commentThreads"
)

var (
	youtubeInstance *YouTubeClient
	youtubeOnce     sync.Once
)

type YouTubeClient struct {
	Client *http.Client
	APIKey string
}

func GetYouTubeClient() *YouTubeClient {
	youtubeOnce.Do(func() {
		timeout := 30 * time.Second
		if os.Getenv("APP_ENV") == "production" {
			timeout = 10 * time.Second
		}

		slog.Info("[YouTubeClient] Initializing Client", slog.Duration("timeout", timeout))
		youtubeInstance = &YouTubeClient{
			Client: &http.Client{Timeout: timeout},
			APIKey: os.Getenv("YOUTUBE_API_KEY"),
		}
	})
	return youtubeInstance
}

// SearchVideos returns the video IDs matching the query.
func (y *YouTubeClient) SearchVideos(ctx context.Context, query string, limit int) ([]string, error) {
	if y.APIKey == "" {
		return nil, fmt.Errorf("[YouTubeClient] API key is missing")
	}

	params := url.Values{}
	params.Set("part", "id")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", limit))
	params.Set("key", y.APIKey)

	var response models.YouTubeSearchResponse
	if err := y.getJSON(ctx, YOUTUBE_SEARCH_ENDPOINT+"?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	var ids []string
	for _, item := range response.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

// FetchComments returns top-level comment texts for one video.
func (y *YouTubeClient) FetchComments(ctx context.Context, videoID string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", fmt.Sprintf("%d", limit))
	params.Set("textFormat", "plainText")
	params.Set("key", y.APIKey)

	var response models.YouTubeCommentsResponse
	if err := y.getJSON(ctx, YOUTUBE_COMMENTS_ENDPOINT+"?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	var comments []string
	for _, item := range response.Items {
		if text := item.Snippet.TopLevelComment.Snippet.TextDisplay; text != "" {
			comments = append(comments, text)
		}
	}
	return comments, nil
}

func (y *YouTubeClient) getJSON(ctx context.Context, rawURL string, output interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("[YouTubeClient] failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := y.doWithRetry(req)
	if err != nil {
		return fmt.Errorf("[YouTubeClient] request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("[YouTubeClient] failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("[YouTubeClient] unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, output); err != nil {
		slog.Error("[YouTubeClient] Failed to unmarshal response",
			slog.String("error", err.Error()),
			slog.Int("raw_response_length", len(body)))
		return fmt.Errorf("[YouTubeClient] failed to unmarshal response: %w", err)
	}
	return nil
}

func (y *YouTubeClient) doWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := INITIAL_BACKOFF

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		resp, err = y.Client.Do(req)
		if err == nil && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
		}

		slog.Warn("[YouTubeClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		time.Sleep(backoff)
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return resp, err
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}
