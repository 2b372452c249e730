// Package factcheckdb queries the Google Fact Check Tools claim search
// API and maps its free-form rating vocabulary onto the canonical
// verdict labels.
package factcheckdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/project-clarion/core/internal/modules/sources"
)

const (
	defaultEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"
	providerName    = "factcheckdb"
)

// Client is the fact-check database adapter.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint (tests point this at a stub).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a fact-check database client. An empty API key is allowed;
// queries then report an auth failure so the caller can degrade.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type claimSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
			} `json:"publisher"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Query looks the claim up in the fact-check database. A database with
// no matching record returns Found=false and a nil error.
func (c *Client) Query(ctx context.Context, claim string) (*sources.FactCheckHit, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s: %w: api key not configured", providerName, sources.ErrAuth)
	}

	params := neturl.Values{}
	params.Set("query", claim)
	params.Set("languageCode", "en")
	params.Set("pageSize", "1")
	params.Set("key", c.apiKey)

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

	var payload claimSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", providerName, err)
	}

	if len(payload.Claims) == 0 || len(payload.Claims[0].ClaimReview) == 0 {
		return &sources.FactCheckHit{
			Verdict: sources.LabelUnchecked,
			Source:  "N/A",
			Summary: "No previous fact-check found",
		}, nil
	}

	hit := payload.Claims[0]
	review := hit.ClaimReview[0]
	source := strings.TrimSpace(review.Publisher.Name)
	if source == "" {
		source = "Unknown"
	}
	summary := strings.TrimSpace(hit.Text)
	if summary == "" {
		summary = "No summary available"
	}

	return &sources.FactCheckHit{
		Verdict: MapRating(review.TextualRating),
		Source:  source,
		Summary: summary,
		Found:   true,
	}, nil
}

// MapRating folds the provider's textual rating vocabulary onto the
// canonical label set. Unknown ratings come back UNCHECKED.
func MapRating(rating string) sources.Label {
	r := strings.ToLower(strings.TrimSpace(rating))
	switch {
	case r == "":
		return sources.LabelUnchecked
	case strings.Contains(r, "pants on fire"),
		strings.Contains(r, "false"),
		strings.Contains(r, "incorrect"),
		strings.Contains(r, "fake"),
		strings.Contains(r, "fabricat"),
		strings.Contains(r, "hoax"):
		if strings.Contains(r, "mostly false") || strings.Contains(r, "partly false") {
			return sources.LabelMisleading
		}
		return sources.LabelFalse
	case strings.Contains(r, "misleading"),
		strings.Contains(r, "mixture"),
		strings.Contains(r, "half true"),
		strings.Contains(r, "partly true"),
		strings.Contains(r, "missing context"),
		strings.Contains(r, "exaggerat"),
		strings.Contains(r, "out of context"):
		return sources.LabelMisleading
	case strings.Contains(r, "true"),
		strings.Contains(r, "correct"),
		strings.Contains(r, "accurate"),
		strings.Contains(r, "verified"):
		return sources.LabelVerified
	default:
		return sources.LabelUnchecked
	}
}
