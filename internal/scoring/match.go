package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Count returns the number of non-overlapping occurrences of keyword in text
// that stand as whole words or phrases: each occurrence must be preceded and
// followed either by the edge of the text or by a rune that is not a letter,
// digit or underscore. Both arguments are expected to be normalized.
func Count(text, keyword string) int {
	if keyword == "" || len(keyword) > len(text) {
		return 0
	}

	count := 0
	for i := 0; i <= len(text)-len(keyword); {
		j := strings.Index(text[i:], keyword)
		if j < 0 {
			break
		}

		start := i + j
		end := start + len(keyword)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
			i = end
			continue
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		i = start + size
	}

	return count
}

func boundaryBefore(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return !isWordRune(r)
}

func boundaryAfter(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
