package scrabble

import "sync"

// DefaultLocale is used whenever detection fails or a locale is unknown.
const DefaultLocale = "de"

// Letter point values per locale, following the letter distributions of the
// respective national Scrabble editions. Letters absent from a table score
// zero; that is not an error.
var letterPoints = map[string]map[rune]int{
	"de": {
		'E': 1, 'N': 1, 'S': 1, 'I': 1, 'R': 1, 'T': 1, 'U': 1, 'A': 1, 'D': 1,
		'H': 2, 'G': 2, 'L': 2, 'O': 2,
		'M': 3, 'B': 3, 'W': 3, 'Z': 3,
		'C': 4, 'F': 4, 'K': 4, 'P': 4,
		'Ä': 6, 'J': 6, 'Ü': 6, 'V': 6,
		'Ö': 8, 'X': 8,
		'Q': 10, 'Y': 10,
	},
	"en": {
		'E': 1, 'A': 1, 'I': 1, 'O': 1, 'N': 1, 'R': 1, 'T': 1, 'L': 1, 'S': 1, 'U': 1,
		'D': 2, 'G': 2,
		'B': 3, 'C': 3, 'M': 3, 'P': 3,
		'F': 4, 'H': 4, 'V': 4, 'W': 4, 'Y': 4,
		'K': 5,
		'J': 8, 'X': 8,
		'Q': 10, 'Z': 10,
	},
	"fr": {
		'E': 1, 'A': 1, 'I': 1, 'N': 1, 'O': 1, 'R': 1, 'S': 1, 'T': 1, 'U': 1, 'L': 1,
		'D': 2, 'M': 2, 'G': 2,
		'B': 3, 'C': 3, 'P': 3,
		'F': 4, 'H': 4, 'V': 4,
		'J': 8, 'Q': 8,
		'K': 10, 'W': 10, 'X': 10, 'Y': 10, 'Z': 10,
	},
	"es": {
		'A': 1, 'E': 1, 'O': 1, 'I': 1, 'S': 1, 'N': 1, 'R': 1, 'U': 1, 'L': 1, 'T': 1,
		'D': 2, 'G': 2,
		'C': 3, 'B': 3, 'M': 3, 'P': 3,
		'H': 4, 'F': 4, 'V': 4, 'Y': 4,
		'Q': 5,
		'J': 8, 'Ñ': 8, 'X': 8,
		'Z': 10,
	},
	"it": {
		'O': 1, 'A': 1, 'I': 1, 'E': 1,
		'C': 2, 'R': 2, 'S': 2, 'T': 2,
		'L': 3, 'M': 3, 'N': 3, 'U': 3,
		'B': 5, 'D': 5, 'F': 5, 'P': 5, 'V': 5,
		'G': 8, 'H': 8, 'Z': 8,
		'Q': 10,
	},
	"nl": {
		'E': 1, 'N': 1, 'A': 1, 'O': 1, 'I': 1,
		'D': 2, 'R': 2, 'S': 2, 'T': 2,
		'G': 3, 'K': 3, 'L': 3, 'M': 3, 'B': 3, 'P': 3,
		'U': 4, 'F': 4, 'H': 4, 'J': 4, 'V': 4, 'Z': 4,
		'C': 5, 'W': 5,
		'X': 8, 'Y': 8,
		'Q': 10,
	},
	"pl": {
		'A': 1, 'I': 1, 'E': 1, 'O': 1, 'N': 1, 'Z': 1, 'R': 1, 'S': 1, 'W': 1,
		'Y': 2, 'C': 2, 'D': 2, 'K': 2, 'L': 2, 'M': 2, 'P': 2, 'T': 2,
		'B': 3, 'G': 3, 'H': 3, 'J': 3, 'Ł': 3, 'U': 3,
		'Ą': 5, 'Ę': 5, 'F': 5, 'Ó': 5, 'Ś': 5, 'Ż': 5,
		'Ć': 6,
		'Ń': 7,
		'Ź': 9,
	},
	"pt": {
		'A': 1, 'E': 1, 'I': 1, 'O': 1, 'S': 1, 'U': 1, 'M': 1, 'R': 1, 'T': 1,
		'D': 2, 'L': 2, 'C': 2, 'P': 2,
		'N': 3, 'B': 3, 'Ç': 3,
		'F': 4, 'G': 4, 'H': 4, 'V': 4,
		'J': 5,
		'Q': 6,
		'X': 8, 'Z': 8,
	},
	"ru": {
		'О': 1, 'А': 1, 'Е': 1, 'И': 1, 'Н': 1, 'Р': 1, 'С': 1, 'Т': 1, 'В': 1,
		'Д': 2, 'К': 2, 'Л': 2, 'П': 2, 'У': 2, 'М': 2,
		'Б': 3, 'Г': 3, 'Ь': 3, 'Я': 3, 'Ё': 3,
		'Ы': 4, 'Й': 4,
		'З': 5, 'Ж': 5, 'Х': 5, 'Ц': 5, 'Ч': 5,
		'Ш': 8, 'Э': 8, 'Ю': 8,
		'Ф': 10, 'Щ': 10, 'Ъ': 10,
	},
	"sv": {
		'A': 1, 'R': 1, 'S': 1, 'T': 1, 'E': 1, 'N': 1, 'D': 1, 'I': 1, 'L': 1,
		'O': 2, 'G': 2, 'K': 2, 'H': 2, 'M': 2,
		'F': 3, 'V': 3, 'Ä': 3, 'B': 3, 'P': 3, 'U': 3, 'Å': 3,
		'Ö': 4, 'J': 4,
		'Y': 7, 'C': 7, 'X': 7,
		'Z': 8, 'Q': 8, 'W': 8,
	},
	"tr": {
		'A': 1, 'E': 1, 'I': 1, 'K': 1, 'L': 1, 'R': 1, 'N': 1, 'İ': 1, 'T': 1,
		'M': 2, 'S': 2, 'U': 2, 'O': 2, 'D': 2, 'B': 2, 'Y': 2,
		'Ü': 3, 'C': 3, 'Z': 3, 'Ç': 3, 'H': 3, 'P': 3, 'G': 3,
		'V': 4, 'Ö': 4, 'F': 4,
		'Ğ': 5,
		'Ş': 7,
		'J': 10,
	},
}

// IsSupported reports whether a letter table exists for the locale.
func IsSupported(locale string) bool {
	_, ok := letterPoints[locale]
	return ok
}

// SupportedLocales returns the locale tags with a letter table, in no
// particular order.
func SupportedLocales() []string {
	out := make([]string, 0, len(letterPoints))
	for l := range letterPoints {
		out = append(out, l)
	}
	return out
}

var (
	alphabetOnce  sync.Once
	unionAlphabet map[rune]bool
)

// supportedAlphabet is the union of every locale's letters, used to tell
// "scores zero but plausibly one of ours" apart from a foreign script.
func supportedAlphabet() map[rune]bool {
	alphabetOnce.Do(func() {
		unionAlphabet = make(map[rune]bool)
		for _, table := range letterPoints {
			for r := range table {
				unionAlphabet[r] = true
			}
		}
	})
	return unionAlphabet
}
