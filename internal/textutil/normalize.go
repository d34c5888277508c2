package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize prepares free text for classification. The value is lowercased,
// every rune that is not a letter, number or whitespace becomes a space, and
// whitespace runs collapse to a single space with the ends trimmed.
//
// Normalize is total and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(value string) string {
	if value == "" {
		return ""
	}
	// cases.Caser keeps state between calls, so build one per invocation.
	lowered := cases.Lower(language.Und).String(value)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lowered)
	return strings.Join(strings.Fields(stripped), " ")
}

// RuneLength reports the number of characters in value as a user would count
// them, not the number of bytes.
func RuneLength(value string) int {
	return len([]rune(value))
}
