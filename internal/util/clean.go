package util

import (
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\ufeff"

var charReplacementMap = map[string]string{
	"\u2018": "'", "\u2019": "'", "\u201C": "\"",
	"\u201D": "\"", "\u2013": "-", "\u2014": "--", "\u2026": "...",
	"\u00a0": " ", "\u0091": "'", "\u0092": "'", "\u0093": "\"",
	"\u0094": "\"",
}

// CleanText normalizes pasted editor text: strips a UTF-8 BOM, replaces
// smart punctuation with ASCII equivalents and drops invalid UTF-8.
func CleanText(text string) string {
	text = strings.TrimPrefix(text, utf8BOM)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	for bad, good := range charReplacementMap {
		text = strings.ReplaceAll(text, bad, good)
	}
	return strings.TrimSpace(text)
}
