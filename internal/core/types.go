package core

const (
	BriefbotName    = "briefbot"
	BriefbotVersion = "0.1.0"
)

// Contact is a read-only snapshot of one CRM row for the duration of a run.
// One logical contact per unique email; duplicate rows from other import
// sources are collapsed by the store before anything else sees them.
type Contact struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	Company          string
	Role             string
	Score            int
	Birthday         string // YYYY-MM-DD, year may be 0000 when unknown
	LastTouch        string
	LastTopic        string
	PreferredName    string
	RelationshipType string
	HowWeMet         string

	InteractionCount30d int
	InteractionCount90d int

	// LastInteraction is the most recent interaction on record, if any.
	LastInteraction *Interaction
}

// FirstName returns the name used to address the contact: the preferred
// name when set, otherwise the first word of the full name.
func (c Contact) FirstName() string {
	if c.PreferredName != "" {
		return c.PreferredName
	}
	for i, r := range c.Name {
		if r == ' ' {
			return c.Name[:i]
		}
	}
	return c.Name
}

// Interaction is one recorded touchpoint with a contact (email, meeting, note).
type Interaction struct {
	Date    string
	Subject string
	Snippet string
	Source  string
}

// SearchResult is a single web search hit. No identity beyond the tuple;
// it lives only within one run.
type SearchResult struct {
	Title       string
	URL         string
	Description string
}

// Destination addresses a Telegram chat, optionally a forum topic inside it.
type Destination struct {
	ChatID   int64
	ThreadID int
}

// OutboundMessage is a fully composed unit ready for delivery. Text may be
// arbitrarily long at construction time; the transport chunks it. CopyText,
// when non-empty, is attached as a copy-to-clipboard button.
type OutboundMessage struct {
	Text     string
	CopyText string
}

// DeliveryOutcome records the fate of one transmitted unit.
type DeliveryOutcome struct {
	Err error
}

// RunResult is the operator-facing summary of one run. Never persisted.
type RunResult struct {
	Attempted int
	Delivered int
}

// GenerationOutcome is the explicit result of one generation call. The
// composer applies fallback policy on failure instead of callers
// intercepting errors ad hoc.
type GenerationOutcome struct {
	Text string
	Err  error
}

func (o GenerationOutcome) OK() bool { return o.Err == nil }
