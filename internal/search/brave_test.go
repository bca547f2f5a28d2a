package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrave_Search(t *testing.T) {
	var gotQuery, gotToken, gotFreshness string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotFreshness = r.URL.Query().Get("freshness")
		gotToken = r.Header.Get("X-Subscription-Token")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"web":{"results":[
			{"title":"First","url":"https://a.example","description":"alpha"},
			{"title":"Second","url":"https://b.example","description":"beta"}
		]}}`)
	}))
	defer srv.Close()

	b := NewBraveAt(srv.URL, "test-key")
	results, err := b.Search(context.Background(), "golang news")
	require.NoError(t, err)

	assert.Equal(t, "golang news", gotQuery)
	assert.Equal(t, "pd", gotFreshness)
	assert.Equal(t, "test-key", gotToken)

	require.Len(t, results, 2)
	assert.Equal(t, "First", results[0].Title)
	assert.Equal(t, "https://a.example", results[0].URL)
	assert.Equal(t, "alpha", results[0].Description)
}

func TestBrave_Search_EmptyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"web":{"results":[]}}`)
	}))
	defer srv.Close()

	b := NewBraveAt(srv.URL, "test-key")
	results, err := b.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBrave_Search_NonOKSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"rate limited"}`)
	}))
	defer srv.Close()

	b := NewBraveAt(srv.URL, "test-key")
	_, err := b.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestBrave_Search_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"web":{"results":[{"title":"ok","url":"u","description":"d"}]}}`)
	}))
	defer srv.Close()

	b := NewBraveAt(srv.URL, "test-key")
	results, err := b.Search(context.Background(), "flaky")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 2, attempts)
}
