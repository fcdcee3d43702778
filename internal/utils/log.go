package utils

import "strings"

// TruncateForLog turns s into a single-line preview of at most limit runes.
// Whitespace runs, newlines included, become one space; an ellipsis marks a cut.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}
