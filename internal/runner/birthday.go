package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/briefbot/internal/compose"
	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/pkg/log"
)

// Birthday orchestrates the per-contact birthday flow:
// select → generate → compose → deliver, one card per contact.
type Birthday struct {
	store     core.ContactStore
	generator core.Generator
	messenger core.Messenger
	pacer     core.Pacer
	dest      core.Destination
	minScore  int
	loc       *time.Location
}

func NewBirthday(
	store core.ContactStore,
	generator core.Generator,
	messenger core.Messenger,
	pacer core.Pacer,
	dest core.Destination,
	minScore int,
	loc *time.Location,
) *Birthday {
	return &Birthday{
		store:     store,
		generator: generator,
		messenger: messenger,
		pacer:     pacer,
		dest:      dest,
		minScore:  minScore,
		loc:       loc,
	}
}

// Run processes every contact with a birthday on monthDay ("MM-DD").
// A store failure is fatal; a generation failure for one contact swaps in
// the fallback message and the batch continues.
func (r *Birthday) Run(ctx context.Context, monthDay string) (core.RunResult, error) {
	logger := log.FromCtx(ctx)

	logger.Info().Str("month_day", monthDay).Int("min_score", r.minScore).Msg("querying crm for birthdays")
	contacts, err := r.store.WithBirthday(ctx, monthDay, r.minScore)
	if err != nil {
		return core.RunResult{}, fmt.Errorf("select contacts: %w", err)
	}
	logger.Info().Int("count", len(contacts)).Msg("found birthday contacts")

	if len(contacts) == 0 {
		logger.Info().Msg("no birthdays today above score threshold, nothing to send")
		return core.RunResult{}, nil
	}

	var res core.RunResult
	for i, contact := range contacts {
		logger.Info().
			Int("n", i+1).Int("of", len(contacts)).
			Str("name", contact.Name).Int("score", contact.Score).
			Msg("generating birthday message")

		outcome := r.generate(ctx, contact)
		if outcome.OK() {
			logger.Info().Str("preview", preview(outcome.Text, 80)).Msg("message generated")
		} else {
			logger.Warn().Err(outcome.Err).Str("name", contact.Name).Msg("generation failed, using fallback message")
		}
		message := compose.BirthdayMessage(contact, outcome)

		if err := r.pacer.Wait(ctx); err != nil {
			return res, err
		}

		card := compose.BirthdayCard(contact, message, time.Now().In(r.loc))
		res.Attempted++
		if sent := r.messenger.SendCard(ctx, r.dest, card); sent.Err == nil {
			res.Delivered++
			logger.Info().Str("name", contact.Name).Msg("birthday card sent")
		} else {
			logger.Error().Err(sent.Err).Str("name", contact.Name).Msg("failed to send birthday card")
		}

		if i < len(contacts)-1 {
			if err := r.pacer.Wait(ctx); err != nil {
				return res, err
			}
		}
	}

	logger.Info().Int("sent", res.Delivered).Int("total", res.Attempted).Msg("birthday run complete")
	return res, nil
}

func (r *Birthday) generate(ctx context.Context, contact core.Contact) core.GenerationOutcome {
	text, err := r.generator.Generate(ctx, compose.BirthdayPrompt(contact))
	return core.GenerationOutcome{Text: text, Err: err}
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
