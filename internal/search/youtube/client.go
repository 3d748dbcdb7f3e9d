package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/learnify/backend/internal/classify"
	"github.com/learnify/backend/internal/storage/models"
	"github.com/learnify/backend/pkg/circuitbreaker"
	"github.com/learnify/backend/pkg/logger"
)

const searchEndpoint = "https://www.googleapis.com/youtube/v3/search"

// Client queries the YouTube Data API for video candidates. Every error is
// returned to the caller; the recommendation pipeline treats any failure as
// an empty result set.
type Client struct {
	apiKey     string
	maxResults int
	endpoint   string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
}

func NewClient(apiKey string, maxResults, timeoutSec int) *Client {
	if maxResults <= 0 {
		maxResults = 6
	}
	if timeoutSec <= 0 {
		timeoutSec = 10
	}

	cb := circuitbreaker.NewCircuitBreaker("youtube", circuitbreaker.Config{
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	return &Client{
		apiKey:     apiKey,
		maxResults: maxResults,
		endpoint:   searchEndpoint,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		cb: cb,
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search returns video candidates for the query. Items missing a video id
// or title are skipped rather than failing the whole response.
func (c *Client) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	var videos []models.Candidate

	err := c.cb.Execute(ctx, func() error {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("type", "video")
		params.Set("maxResults", fmt.Sprintf("%d", c.maxResults))
		params.Set("q", query)
		params.Set("key", c.apiKey)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to search videos: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("video search returned status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		var searchResp searchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		videos = make([]models.Candidate, 0, len(searchResp.Items))
		for _, item := range searchResp.Items {
			if item.ID.VideoID == "" || item.Snippet.Title == "" {
				continue
			}

			videos = append(videos, models.Candidate{
				Title:     item.Snippet.Title,
				URL:       fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID.VideoID),
				Thumbnail: item.Snippet.Thumbnails.Medium.URL,
				Level:     string(classify.DetectLevel(item.Snippet.Title)),
				Category:  string(classify.DetectCategory(item.Snippet.Title)),
				Platform:  "YouTube",
			})
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Debug("Video search completed", zap.String("query", query), zap.Int("results", len(videos)))
	return videos, nil
}

// WithEndpoint overrides the API endpoint. Test hook.
func (c *Client) WithEndpoint(endpoint string) *Client {
	clone := *c
	clone.endpoint = endpoint
	return &clone
}
