package utils

import (
	"strings"
	"unicode"
)

// NormalizeText lowercases s and collapses every run of whitespace
// (spaces, tabs, newlines and other Unicode spaces) into a single space.
// Leading and trailing whitespace is dropped. NormalizeText(NormalizeText(s))
// equals NormalizeText(s).
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
