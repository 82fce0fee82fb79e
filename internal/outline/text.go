package outline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const bulletChars = "•*-·◦●"

// CleanText collapses whitespace runs to a single space and strips leading
// bullet characters.
func CleanText(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(bulletChars, r)
	})
	return strings.Join(strings.Fields(s), " ")
}

// HasLetter reports whether s contains at least one letter. Strings made only
// of punctuation, digits and underscores have none.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// IsUpper reports whether s has at least one cased letter and none of its
// cased letters are lower or title case.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// IsPlausible reports whether cleaned text could be a title or heading line.
func IsPlausible(text string, maxWords, maxLen int) bool {
	if text == "" || !HasLetter(text) {
		return false
	}
	if wc := WordCount(text); wc < 1 || wc > maxWords {
		return false
	}
	return utf8.RuneCountInString(text) <= maxLen
}

// HasTitleHint reports whether any token of s, lower-cased and stripped of
// surrounding ".,:;()", is in hints.
func HasTitleHint(s string, hints map[string]struct{}) bool {
	for _, w := range strings.Fields(s) {
		w = strings.ToLower(strings.Trim(w, ".,:;()"))
		if _, ok := hints[w]; ok {
			return true
		}
	}
	return false
}
