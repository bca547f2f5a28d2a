package compose

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/briefbot/internal/core"
)

// htmlEscaper covers the three entities Telegram's HTML parse mode
// requires. Quotes stay literal; Telegram accepts them.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// minPlausibleYear guards the age display: CRM imports store unknown
// birth years as 0000 or 0001, which would render absurd ages.
const minPlausibleYear = 1800

// BirthdayCard renders one contact's birthday card: a bold header, an
// italic context line, an optional tappable phone link, and the generated
// message below. All free text is escaped; the copy button carries the
// raw message.
func BirthdayCard(c core.Contact, message string, now time.Time) core.OutboundMessage {
	name := c.Name
	if name == "" {
		name = "Unknown"
	}
	lastTouch := c.LastTouch
	if lastTouch == "" {
		lastTouch = "never"
	}

	ageSegment := ""
	if age, ok := computeAge(c.Birthday, now); ok {
		ageSegment = fmt.Sprintf(" · 🎂 Turns %d today", age)
	}

	var roleCompany string
	switch {
	case c.Role != "" && c.Company != "":
		roleCompany = c.Role + " at " + c.Company
	case c.Company != "":
		roleCompany = c.Company
	}

	var parts []string
	if roleCompany != "" {
		parts = append(parts, EscapeHTML(roleCompany))
	}
	parts = append(parts,
		fmt.Sprintf("Score %d/100", c.Score),
		fmt.Sprintf("Last contact: %s%s", EscapeHTML(lastTouch), ageSegment),
	)
	contextLine := strings.Join(parts, " · ")

	phoneLine := ""
	if phone := NormalizePhone(c.Phone); phone != "" {
		phoneLine = fmt.Sprintf("\n📱 <a href=\"%s\">%s</a>", TelURL(phone), EscapeHTML(c.Phone))
	}

	text := fmt.Sprintf(
		"🎂 <b>%s</b> has a birthday today\n<i>%s</i>%s\n\n%s",
		EscapeHTML(name), contextLine, phoneLine, EscapeHTML(message),
	)

	return core.OutboundMessage{
		Text:     text,
		CopyText: message,
	}
}

// computeAge reports the age a contact turns today. Unknown or
// implausible birth years (≤ 1800) suppress the display entirely rather
// than showing a nonsense number.
func computeAge(birthday string, now time.Time) (int, bool) {
	if len(birthday) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(birthday[:4])
	if err != nil || year <= minPlausibleYear {
		return 0, false
	}
	return now.Year() - year, true
}
