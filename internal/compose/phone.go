package compose

import "strings"

// NormalizePhone strips everything but digits from a raw phone field and
// returns a canonical +-prefixed number. Fewer than 10 digits → "".
// Exactly 10 digits are assumed to be a US number missing its country
// code. This is a heuristic, not validation; anything long enough passes.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) < 10:
		return ""
	case len(digits) == 10:
		return "+1" + digits
	default:
		return "+" + digits
	}
}

// TelURL builds a tel: link; tapping it on a phone opens the dialer or
// iMessage.
func TelURL(phone string) string {
	return "tel:" + phone
}
