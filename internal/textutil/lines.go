package textutil

import (
	"regexp"
	"strings"
)

// blankLinePattern matches a paragraph break: a newline, optional
// whitespace-only lines, and another newline.
var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SplitParagraphs splits text on blank lines and returns the trimmed,
// non-empty paragraphs in order.
func SplitParagraphs(text string) []string {
	raw := blankLinePattern.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Snippet collapses whitespace and truncates content to limit runes for use
// in error messages. Empty input yields "<empty>".
func Snippet(content string, limit int) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	if limit <= 0 {
		return clean
	}
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
