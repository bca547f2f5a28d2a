package crm

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/pkg/log"
)

type Contacts struct {
	db *sql.DB
}

func NewContacts(db *sql.DB) *Contacts {
	return &Contacts{db: db}
}

// WithBirthday returns contacts whose birthday's MM-DD component equals
// monthDay and whose score is strictly above minScore, highest score
// first. Rows sharing an email are collapsed to the highest-scoring one;
// the id ASC tie-break keeps the choice stable across runs. Each survivor
// carries its most recent interaction when one exists.
func (s *Contacts) WithBirthday(ctx context.Context, monthDay string, minScore int) ([]core.Contact, error) {
	query := `
		SELECT
			c.id, c.name, c.email, c.phone, c.company, c.role,
			c.score, c.birthday, c.last_touch, c.last_topic,
			c.preferred_name, c.relationship_type, c.how_we_met,
			c.interaction_count_30d, c.interaction_count_90d
		FROM contacts c
		WHERE c.birthday IS NOT NULL
		  AND c.birthday != ''
		  AND substr(c.birthday, 6, 5) = ?
		  AND c.score > ?
		ORDER BY c.score DESC, c.id ASC`

	rows, err := s.db.QueryContext(ctx, query, monthDay, minScore)
	if err != nil {
		return nil, fmt.Errorf("failed to query birthday contacts: %w", err)
	}
	defer rows.Close()

	var contacts []core.Contact
	for rows.Next() {
		var c core.Contact
		var email, phone, company, role, birthday sql.NullString
		var lastTouch, lastTopic, preferred, relType, howMet sql.NullString

		if err := rows.Scan(
			&c.ID, &c.Name, &email, &phone, &company, &role,
			&c.Score, &birthday, &lastTouch, &lastTopic,
			&preferred, &relType, &howMet,
			&c.InteractionCount30d, &c.InteractionCount90d,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}

		c.Email = email.String
		c.Phone = phone.String
		c.Company = company.String
		c.Role = role.String
		c.Birthday = birthday.String
		c.LastTouch = lastTouch.String
		c.LastTopic = lastTopic.String
		c.PreferredName = preferred.String
		c.RelationshipType = relType.String
		c.HowWeMet = howMet.String

		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	contacts = dedupeByEmail(contacts)

	for i := range contacts {
		last, err := s.lastInteraction(ctx, contacts[i].ID)
		if err != nil {
			return nil, err
		}
		contacts[i].LastInteraction = last
	}

	log.FromCtx(ctx).Debug().Int("count", len(contacts)).Str("month_day", monthDay).Msg("selected birthday contacts")
	return contacts, nil
}

// dedupeByEmail keeps the first row per email from a score-descending
// slice, so the survivor is always the highest-scoring import of a
// contact. An empty email identifies nothing and never collapses rows.
func dedupeByEmail(contacts []core.Contact) []core.Contact {
	seen := make(map[string]bool, len(contacts))
	out := contacts[:0]
	for _, c := range contacts {
		if c.Email != "" {
			if seen[c.Email] {
				continue
			}
			seen[c.Email] = true
		}
		out = append(out, c)
	}
	return out
}

func (s *Contacts) lastInteraction(ctx context.Context, contactID int64) (*core.Interaction, error) {
	query := `SELECT date, subject, snippet, source FROM interactions WHERE contact_id = ? ORDER BY date DESC LIMIT 1`

	var in core.Interaction
	var subject, snippet, source sql.NullString
	err := s.db.QueryRowContext(ctx, query, contactID).Scan(&in.Date, &subject, &snippet, &source)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last interaction: %w", err)
	}

	in.Subject = subject.String
	in.Snippet = snippet.String
	in.Source = source.String
	return &in, nil
}
