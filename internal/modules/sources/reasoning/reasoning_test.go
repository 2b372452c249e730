package reasoning

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appcfg "github.com/project-clarion/core/internal/config"
	"github.com/project-clarion/core/internal/modules/sources"
	"github.com/stretchr/testify/require"
)

func compatProvider(endpoint string) *appcfg.AIProvider {
	return &appcfg.AIProvider{
		ID:           "test",
		Type:         "openai-compatible",
		APIKey:       "secret",
		Endpoint:     endpoint,
		DefaultModel: "test-model",
		Enabled:      true,
	}
}

func TestAnalyze_NoProviderIsAuthError(t *testing.T) {
	client := New(nil)
	_, err := client.Analyze(context.Background(), "claim", nil)

	require.Error(t, err)
	require.True(t, sources.IsAuthError(err))
}

func TestAnalyze_EmptyKeyIsAuthError(t *testing.T) {
	client := New(&appcfg.AIProvider{Type: "openai", Enabled: true})
	_, err := client.Analyze(context.Background(), "claim", nil)

	require.Error(t, err)
	require.True(t, sources.IsAuthError(err))
}

func TestAnalyze_OpenAICompatible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "The claim is contradicted by the evidence."}}]}`))
	}))
	defer srv.Close()

	client := New(compatProvider(srv.URL))
	analysis, err := client.Analyze(context.Background(), "Vaccines cause autism", []sources.Article{
		{Title: "Study finds no link", Source: "Reuters"},
	})

	require.NoError(t, err)
	require.Equal(t, "The claim is contradicted by the evidence.", analysis)
}

func TestAnalyze_RateLimitedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(compatProvider(srv.URL))
	_, err := client.Analyze(context.Background(), "claim", nil)

	require.Error(t, err)
	require.True(t, sources.IsRateLimited(err))
}

func TestAnalyze_ForbiddenStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer srv.Close()

	client := New(compatProvider(srv.URL))
	_, err := client.Analyze(context.Background(), "claim", nil)

	require.Error(t, err)
	require.True(t, sources.IsAuthError(err))
}

func TestClassifyErr(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		rateLimited bool
		authError   bool
		transient   bool
	}{
		{"already classified rate limit", sources.ErrRateLimited, true, false, true},
		{"429 in message", errors.New("API error 429 Too Many Requests"), true, false, true},
		{"rate limit wording", errors.New("rate limit exceeded, retry later"), true, false, true},
		{"permission denied", errors.New("PERMISSION_DENIED: key invalid"), false, true, false},
		{"invalid api key", errors.New("invalid api key provided"), false, true, false},
		{"deadline", context.DeadlineExceeded, false, false, true},
		{"connection refused", errors.New("dial tcp: connection refused"), false, false, true},
		{"other", errors.New("malformed request"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyErr(tt.err)
			require.Error(t, err)
			require.Equal(t, tt.rateLimited, sources.IsRateLimited(err), "rate limited")
			require.Equal(t, tt.authError, sources.IsAuthError(err), "auth")
			require.Equal(t, tt.transient, sources.IsTransient(err), "transient")
		})
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := buildAnalysisPrompt("coffee is good", []sources.Article{
		{Title: "Coffee study", Source: "Reuters", Description: "Moderate intake linked to benefits"},
		{Title: "Another take", Source: "AP"},
	})

	require.Contains(t, prompt, `"coffee is good"`)
	require.Contains(t, prompt, "Article 1:")
	require.Contains(t, prompt, "Coffee study")
	require.Contains(t, prompt, "Moderate intake linked to benefits")
	require.Contains(t, prompt, "Article 2:")
	require.NotContains(t, prompt, "No articles found")
}

func TestBuildAnalysisPrompt_NoEvidence(t *testing.T) {
	prompt := buildAnalysisPrompt("coffee is good", nil)
	require.Contains(t, prompt, "No articles found")
}
