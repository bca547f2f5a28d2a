package core

import "context"

// ContactStore reads birthday matches from the CRM database.
type ContactStore interface {
	// WithBirthday returns contacts whose birthday falls on monthDay
	// ("MM-DD") with score strictly above minScore, highest score first,
	// one contact per unique email.
	WithBirthday(ctx context.Context, monthDay string, minScore int) ([]Contact, error)
}

// SearchProvider runs one external web search. An empty result list is a
// valid success and is distinct from an error.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Generator turns a prompt into text. No retry policy at this layer; the
// caller decides what a failure means.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Messenger delivers composed messages to a chat destination.
type Messenger interface {
	// SendText chunks text as needed and sends the chunks in order,
	// returning one outcome per chunk. A failed chunk does not stop
	// the rest.
	SendText(ctx context.Context, dest Destination, text string) []DeliveryOutcome

	// SendCard sends a single card message with its copy-text button.
	SendCard(ctx context.Context, dest Destination, msg OutboundMessage) DeliveryOutcome
}

// Pacer waits between successive outbound calls to respect third-party
// rate limits. *rate.Limiter satisfies it; tests use a no-op.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NopPacer never waits.
type NopPacer struct{}

func (NopPacer) Wait(context.Context) error { return nil }
