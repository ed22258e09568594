package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// apostropheReplacer maps typographic apostrophes to ASCII.
var apostropheReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"ʼ", "'",
)

// Fold returns a caseless form of value suitable for map keys. Typographic
// apostrophes are mapped to ASCII and surrounding whitespace is trimmed.
func Fold(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return cases.Fold().String(apostropheReplacer.Replace(value))
}

// Title title-cases value for display. Casers are not safe for concurrent
// use, so a fresh one is built per call.
func Title(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return cases.Title(language.Und).String(value)
}
