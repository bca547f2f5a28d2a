package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/briefbot/internal/compose"
	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/pkg/conv"
	"github.com/sandevgo/briefbot/pkg/log"
)

// ContextCompiler folds a query list into one search context blob.
// Satisfied by search.Aggregator.
type ContextCompiler interface {
	Compile(ctx context.Context, queries []string) string
}

// Brief orchestrates the single-unit brief flow:
// search → generate → convert → deliver in chunks.
type Brief struct {
	compiler  ContextCompiler
	generator core.Generator
	messenger core.Messenger
	dest      core.Destination
	loc       *time.Location
}

func NewBrief(
	compiler ContextCompiler,
	generator core.Generator,
	messenger core.Messenger,
	dest core.Destination,
	loc *time.Location,
) *Brief {
	return &Brief{
		compiler:  compiler,
		generator: generator,
		messenger: messenger,
		dest:      dest,
		loc:       loc,
	}
}

// Run compiles search context for the queries, generates the brief from
// promptTemplate, and delivers it. Generation failure is fatal: there is
// only one unit, so no partial-success state is meaningful. Delivery
// failures are collected per chunk, not fatal.
func (r *Brief) Run(ctx context.Context, promptTemplate string, queries []string) (core.RunResult, error) {
	logger := log.FromCtx(ctx)

	logger.Info().Int("queries", len(queries)).Msg("running searches")
	searchContext := r.compiler.Compile(ctx, queries)
	logger.Info().Int("chars", len(searchContext)).Msg("compiled search context")

	prompt := compose.BriefPrompt(promptTemplate, searchContext, time.Now().In(r.loc))

	logger.Info().Msg("generating brief content")
	content, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return core.RunResult{}, fmt.Errorf("generation failed: %w", err)
	}
	logger.Info().Int("chars", len(content)).Msg("content generated")

	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(content)))

	logger.Info().Int64("chat", r.dest.ChatID).Int("thread", r.dest.ThreadID).Msg("delivering brief")
	outcomes := r.messenger.SendText(ctx, r.dest, html)

	res := core.RunResult{Attempted: len(outcomes)}
	for _, o := range outcomes {
		if o.Err == nil {
			res.Delivered++
		}
	}

	logger.Info().Int("sent", res.Delivered).Int("total", res.Attempted).Msg("brief run complete")
	return res, nil
}
