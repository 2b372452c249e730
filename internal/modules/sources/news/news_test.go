package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/project-clarion/core/internal/modules/sources"
	"github.com/stretchr/testify/require"
)

const searchPayload = `{
	"status": "success",
	"results": [
		{"title": "First story", "description": "d1", "source_name": "Reuters", "link": "https://example.com/1", "pubDate": "2026-08-20 10:00:00"},
		{"title": "Second story", "description": "d2", "source_name": "AP", "link": "https://example.com/2", "pubDate": "2026-08-20 09:00:00"},
		{"title": "", "description": "ignored, no title", "source_name": "X", "link": "https://example.com/3", "pubDate": ""}
	]
}`

func TestSearch_ParsesAndPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "coffee is good", r.URL.Query().Get("q"))
		require.Equal(t, "en", r.URL.Query().Get("language"))
		require.Equal(t, "5", r.URL.Query().Get("size"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	articles, err := client.Search(context.Background(), "coffee is good")

	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "First story", articles[0].Title)
	require.Equal(t, "Reuters", articles[0].Source)
	require.Equal(t, "https://example.com/1", articles[0].URL)
	require.Equal(t, "Second story", articles[1].Title)
}

func TestSearch_ZeroResultsIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "results": []}`))
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	articles, err := client.Search(context.Background(), "nothing matches this")

	require.NoError(t, err)
	require.Empty(t, articles)
}

func TestSearch_MaxResultsBoundsTheCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("size"))
		w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL), WithMaxResults(1))
	articles, err := client.Search(context.Background(), "anything")

	require.NoError(t, err)
	require.Len(t, articles, 1)
}

func TestTrending_UsesTopCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "top", r.URL.Query().Get("category"))
		require.Empty(t, r.URL.Query().Get("q"))
		w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	articles, err := client.Trending(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, articles, 2)
}

func TestSearch_MissingKeyIsAuthError(t *testing.T) {
	client := New("")
	_, err := client.Search(context.Background(), "claim")

	require.Error(t, err)
	require.True(t, sources.IsAuthError(err))
}

func TestSearch_ProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error"}`))
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	_, err := client.Search(context.Background(), "claim")

	require.Error(t, err)
	require.True(t, sources.IsTransient(err))
}

func TestSearch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	_, err := client.Search(context.Background(), "claim")

	require.Error(t, err)
	require.True(t, sources.IsRateLimited(err))
}
