package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/briefbot/internal/core"
)

// datePlaceholder is substituted in brief prompt templates with the
// current calendar date in the configured zone.
const datePlaceholder = "{date}"

// BirthdayPrompt builds the generation prompt for one contact's birthday
// message from whatever CRM context is on record.
func BirthdayPrompt(c core.Contact) string {
	lastTouch := c.LastTouch
	if lastTouch == "" {
		lastTouch = "unknown"
	}

	lastInteractionLine := ""
	if c.LastInteraction != nil {
		lastInteractionLine = fmt.Sprintf("Last interaction (%s): %s", c.LastInteraction.Date, c.LastInteraction.Subject)
	}

	return fmt.Sprintf(`Write a short, warm birthday message to send to %s.

Contact context:
- Name: %s
- Company/Role: %s at %s
- Relationship type: %s
- How they met: %s
- CRM score: %d/100
- Last contact: %s
- %s

Rules:
- 1-3 sentences max, short and genuine
- First-person, direct, sounds like a real person not a bot
- Include 1-2 birthday emojis naturally (🎂 🎉 🥂 🎈)
- Reference something personal/professional if context allows
- No AI vocabulary: no "I hope this message finds you", "wishing you all the best", "leverage", "foster", "crucial", "ensure"
- No "Happy Birthday [Name]!" as the opener, be more creative
- Warm but concise
- Return ONLY the message text, nothing else`,
		c.FirstName(),
		c.FirstName(), c.Role, c.Company, c.RelationshipType, c.HowWeMet,
		c.Score, lastTouch, lastInteractionLine,
	)
}

// BriefPrompt substitutes the date placeholder in a prompt template and
// appends the compiled search context as a labeled section.
func BriefPrompt(template, searchContext string, now time.Time) string {
	prompt := strings.ReplaceAll(template, datePlaceholder, now.Format("January 02, 2006"))
	return prompt + "\n\n---\n## Search Results\n\n" + searchContext
}

// FallbackBirthdayMessage replaces a failed generation so one contact's
// failure never aborts the batch.
func FallbackBirthdayMessage(c core.Contact) string {
	return fmt.Sprintf("🎉 Happy Birthday %s! Hope you have a great day 🎂", c.FirstName())
}

// BirthdayMessage resolves a generation outcome into the text to send:
// the generated message on success, the fixed fallback otherwise.
func BirthdayMessage(c core.Contact, outcome core.GenerationOutcome) string {
	if outcome.OK() {
		return outcome.Text
	}
	return FallbackBirthdayMessage(c)
}
