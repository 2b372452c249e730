package factcheckdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/project-clarion/core/internal/modules/sources"
	"github.com/stretchr/testify/require"
)

func TestQuery_Hit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Vaccines cause autism", r.URL.Query().Get("query"))
		require.Equal(t, "1", r.URL.Query().Get("pageSize"))
		require.Equal(t, "secret", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"claims": [{
				"text": "Vaccines cause autism",
				"claimReview": [{
					"publisher": {"name": "PolitiFact"},
					"textualRating": "False"
				}]
			}]
		}`))
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	hit, err := client.Query(context.Background(), "Vaccines cause autism")

	require.NoError(t, err)
	require.True(t, hit.Found)
	require.Equal(t, sources.LabelFalse, hit.Verdict)
	require.Equal(t, "PolitiFact", hit.Source)
	require.Equal(t, "Vaccines cause autism", hit.Summary)
}

func TestQuery_NoMatchIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	hit, err := client.Query(context.Background(), "some niche claim")

	require.NoError(t, err)
	require.False(t, hit.Found)
	require.Equal(t, sources.LabelUnchecked, hit.Verdict)
	require.Equal(t, "N/A", hit.Source)
}

func TestQuery_MissingKeyIsAuthError(t *testing.T) {
	client := New("")
	_, err := client.Query(context.Background(), "claim")

	require.Error(t, err)
	require.True(t, sources.IsAuthError(err))
	require.False(t, sources.IsTransient(err))
}

func TestQuery_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	_, err := client.Query(context.Background(), "claim")

	require.Error(t, err)
	require.True(t, sources.IsRateLimited(err))
	require.True(t, sources.IsTransient(err))
}

func TestQuery_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New("secret", WithEndpoint(srv.URL))
	_, err := client.Query(context.Background(), "claim")

	require.Error(t, err)
	require.True(t, sources.IsTransient(err))
}

func TestMapRating(t *testing.T) {
	tests := []struct {
		rating string
		want   sources.Label
	}{
		{"False", sources.LabelFalse},
		{"Pants on Fire!", sources.LabelFalse},
		{"Fake news", sources.LabelFalse},
		{"Mostly False", sources.LabelMisleading},
		{"Misleading", sources.LabelMisleading},
		{"Half True", sources.LabelMisleading},
		{"Missing Context", sources.LabelMisleading},
		{"True", sources.LabelVerified},
		{"Accurate", sources.LabelVerified},
		{"Four Pinocchios", sources.LabelUnchecked},
		{"", sources.LabelUnchecked},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			require.Equal(t, tt.want, MapRating(tt.rating))
		})
	}
}
