// Package news searches NewsData.io for articles corroborating a claim
// and provides the trending headline feed.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/project-clarion/core/internal/modules/sources"
)

const (
	defaultEndpoint   = "https://newsdata.io/api/1/latest"
	defaultMaxResults = 5
	providerName      = "newsdata"
)

// Client is the news search adapter.
type Client struct {
	apiKey     string
	endpoint   string
	maxResults int
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint (tests point this at a stub).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/") }
}

// WithMaxResults bounds the article count per search.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a news search client. An empty API key is allowed;
// queries then report an auth failure so the caller can degrade.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		endpoint:   defaultEndpoint,
		maxResults: defaultMaxResults,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type latestResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		SourceName  string `json:"source_name"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
	} `json:"results"`
}

// Search returns up to maxResults articles matching the claim, in the
// provider's relevance order. Zero matches is a valid empty result.
func (c *Client) Search(ctx context.Context, query string) ([]sources.Article, error) {
	params := neturl.Values{}
	params.Set("q", query)
	return c.fetch(ctx, params, c.maxResults)
}

// Trending returns the current top headlines, newest first.
func (c *Client) Trending(ctx context.Context, limit int) ([]sources.Article, error) {
	if limit <= 0 {
		limit = defaultMaxResults
	}
	params := neturl.Values{}
	params.Set("category", "top")
	return c.fetch(ctx, params, limit)
}

func (c *Client) fetch(ctx context.Context, params neturl.Values, limit int) ([]sources.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: %w: api key not configured", providerName, sources.ErrAuth)
	}

	params.Set("apikey", c.apiKey)
	params.Set("language", "en")
	params.Set("size", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", providerName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", providerName, sources.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", providerName, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, sources.ClassifyStatus(providerName, resp.StatusCode, string(body))
	}

	var payload latestResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", providerName, err)
	}
	if payload.Status != "success" {
		return nil, fmt.Errorf("%s: %w: status %q", providerName, sources.ErrUnavailable, payload.Status)
	}

	articles := make([]sources.Article, 0, len(payload.Results))
	for _, item := range payload.Results {
		if len(articles) == limit {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		articles = append(articles, sources.Article{
			Title:       title,
			Source:      strings.TrimSpace(item.SourceName),
			Description: strings.TrimSpace(item.Description),
			URL:         strings.TrimSpace(item.Link),
			PublishedAt: strings.TrimSpace(item.PubDate),
		})
	}
	return articles, nil
}
