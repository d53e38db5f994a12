// Package scrabble computes deterministic per-word Scrabble scores against
// multi-locale letter tables and renders localized replies.
package scrabble

import (
	"strings"
	"unicode"
)

func upperWord(word string) string {
	return strings.ToUpper(word)
}

// Score computes the point value of word. If hint is a usable locale tag
// (directly supported, or mapped through the fallback table) it wins;
// otherwise the locale is detected from the word itself. Runes missing from
// the resolved table contribute zero.
func (e *Engine) Score(word, hint string) (points int, locale string) {
	locale = ""
	if hint != "" {
		if l, ok := resolveLocaleTag(hint); ok {
			locale = l
		}
	}
	if locale == "" {
		locale = e.DetectLocale(word)
	}
	table := letterPoints[locale]
	for _, r := range upperWord(word) {
		points += table[r]
	}
	return points, locale
}

// IsValidWord reports whether word is something we are willing to score:
// after dropping hyphens and apostrophes, a non-empty run of letters.
// Digits, punctuation, symbols and emoji all disqualify it.
func IsValidWord(word string) bool {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '-', '\'', '’':
			return -1
		}
		return r
	}, word)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsUnsupportedScript distinguishes "valid word that happens to score zero"
// from "wrong writing system entirely". Any positive score proves at least
// partial table coverage. At zero points the word is unsupported iff at most
// half of its runes appear in the union of all locale alphabets.
func IsUnsupportedScript(word string, points int) bool {
	if points > 0 {
		return false
	}
	alphabet := supportedAlphabet()
	total := 0
	supported := 0
	for _, r := range upperWord(word) {
		total++
		if alphabet[r] {
			supported++
		}
	}
	if total == 0 {
		return true
	}
	return supported*2 <= total
}
