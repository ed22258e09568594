package textutil

import "strings"

// Slug converts a free-text topic into a lowercase filename-safe token.
// Letters and digits are kept, runs of anything else collapse into a single
// hyphen, and the result is capped at maxLen bytes. Returns fallback when
// nothing usable remains.
func Slug(value, fallback string, maxLen int) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	out := b.String()
	if maxLen > 0 && len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], "-")
	}
	if out == "" {
		return fallback
	}
	return out
}
