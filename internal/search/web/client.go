package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/classify"
	"github.com/learnify/backend/internal/storage/models"
	"github.com/learnify/backend/pkg/logger"
)

// Client scrapes a web search results page for learning articles. It serves
// as the fallback candidate source when the static catalog has no dedicated
// bucket for a topic. Fail-soft: the pipeline drops it on any error.
type Client struct {
	searchURL  string
	maxResults int
	httpClient *http.Client
}

func NewClient(maxResults, timeoutSec int) *Client {
	if maxResults <= 0 {
		maxResults = 5
	}
	if timeoutSec <= 0 {
		timeoutSec = 10
	}

	return &Client{
		searchURL:  "https://duckduckgo.com/html/",
		maxResults: maxResults,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// Search returns article candidates for "<topic> tutorial" style queries.
func (c *Client) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	results := make([]models.Candidate, 0, c.maxResults)
	doc.Find("div.result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(results) >= c.maxResults {
			return false
		}

		title := s.Find("a.result__a").Text()
		link, _ := s.Find("a.result__a").Attr("href")
		snippet := s.Find("a.result__snippet").Text()

		if title == "" || link == "" {
			return true
		}

		text := title + " " + snippet
		results = append(results, models.Candidate{
			Title:       title,
			URL:         link,
			Description: snippet,
			Level:       string(classify.DetectLevel(text)),
			Category:    string(classify.DetectCategory(text)),
			Platform:    classify.DetectPlatform(text),
		})
		return true
	})

	logger.Debug("Web article search completed", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}
