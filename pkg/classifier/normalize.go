package classifier

import (
	"strings"
	"unicode"
)

// Turkish-specific letters folded to their base Latin forms for scoring.
// Case pairs are handled by lowering first, so only the lowercase six are
// mapped here.
var turkishFold = map[rune]rune{
	'ç': 'c',
	'ğ': 'g',
	'ı': 'i',
	'ö': 'o',
	'ş': 's',
	'ü': 'u',
}

// lowerTurkish lowercases with Turkish casing rules: dotted capital İ maps
// to plain i and dotless capital I maps to ı. Diacritics are preserved.
// strings.ToLower would turn İ into "i" plus a combining dot, which breaks
// plain substring matching against the keyword tables.
func lowerTurkish(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case 'İ':
			b.WriteRune('i')
		case 'I':
			b.WriteRune('ı')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Normalize prepares text for scored matching: lowercase with Turkish
// casing, fold the six Turkish letters to base Latin, replace every other
// non-alphanumeric rune with a space and collapse runs of whitespace.
func Normalize(s string) string {
	s = lowerTurkish(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if f, ok := turkishFold[r]; ok {
			r = f
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenCount counts whitespace-separated tokens of the raw input.
func tokenCount(s string) int {
	return len(strings.Fields(s))
}

// isAllDigits reports whether the trimmed input consists only of digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// hasAlnum reports whether the input contains at least one letter or digit.
// Turkish letters count as letters.
func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// containsAny reports whether any keyword appears as a substring of text.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
