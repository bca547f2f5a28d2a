package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/pkg/retry"
)

const (
	defaultResultCount = 8
	// "pd" biases Brave toward pages published within the past day.
	defaultFreshness = "pd"
)

// Brave queries the Brave web-search API. An empty result list is a valid
// response, distinct from a transport or API error.
type Brave struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	count     int
	freshness string
	retrier   *retry.Retrier
}

func NewBrave(apiKey string) *Brave {
	return NewBraveAt("https://api.search.brave.com", apiKey)
}

// NewBraveAt points the client at a different base URL, for tests.
func NewBraveAt(baseURL, apiKey string) *Brave {
	return &Brave{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   baseURL,
		apiKey:    apiKey,
		count:     defaultResultCount,
		freshness: defaultFreshness,
		retrier:   retry.NewDefaultRetrier(),
	}
}

func (b *Brave) Search(ctx context.Context, query string) ([]core.SearchResult, error) {
	var results []core.SearchResult
	err := b.retrier.Do(ctx, func() error {
		var err error
		results, err = b.search(ctx, query)
		return err
	})
	return results, err
}

func (b *Brave) search(ctx context.Context, query string) ([]core.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(b.count))
	params.Set("freshness", b.freshness)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		b.baseURL+"/res/v1/web/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	results := make([]core.SearchResult, 0, len(result.Web.Results))
	for _, r := range result.Web.Results {
		results = append(results, core.SearchResult{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}
	return results, nil
}
