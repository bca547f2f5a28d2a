package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/pkg/log"
)

// NoResultsSentinel is returned instead of an empty string when no query
// produced any result, so prompt assembly never sees an empty context.
const NoResultsSentinel = "No search results found."

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}

func countTokens(text string) int {
	return len(getTokenizer().Encode(text, nil, nil))
}

// Aggregator folds the results of a query list into one bounded context
// blob. Individual query failures are logged and treated as empty result
// lists; they never abort the batch.
type Aggregator struct {
	provider  core.SearchProvider
	pacer     core.Pacer
	maxTokens int
}

func NewAggregator(provider core.SearchProvider, pacer core.Pacer, maxTokens int) *Aggregator {
	return &Aggregator{
		provider:  provider,
		pacer:     pacer,
		maxTokens: maxTokens,
	}
}

// Compile runs every query in order, pacing between calls, and joins all
// results as bullet lines. Folding stops once the blob reaches the token
// ceiling; queries past that point are skipped.
func (a *Aggregator) Compile(ctx context.Context, queries []string) string {
	logger := log.FromCtx(ctx)

	var bullets []string
	tokens := 0

	for i, query := range queries {
		logger.Info().Int("n", i+1).Int("of", len(queries)).Str("query", query).Msg("running search")

		results, err := a.provider.Search(ctx, query)
		if err != nil {
			logger.Warn().Err(err).Str("query", query).Msg("search failed, skipping query")
			results = nil
		}

		for _, r := range results {
			bullet := fmt.Sprintf("• [%s](%s)\n  %s", r.Title, r.URL, r.Description)
			bullets = append(bullets, bullet)
			if a.maxTokens > 0 {
				tokens += countTokens(bullet)
			}
		}

		if a.maxTokens > 0 && tokens >= a.maxTokens {
			logger.Warn().Int("tokens", tokens).Int("limit", a.maxTokens).Msg("search context budget reached, skipping remaining queries")
			break
		}

		if i < len(queries)-1 {
			if err := a.pacer.Wait(ctx); err != nil {
				logger.Warn().Err(err).Msg("pacing interrupted, stopping searches")
				break
			}
		}
	}

	if len(bullets) == 0 {
		return NoResultsSentinel
	}
	return strings.Join(bullets, "\n\n")
}
