package scrabble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreWithHint(t *testing.T) {
	assert := assert.New(t)
	engine := NewEngine("de")

	fixtures := []struct {
		word   string
		hint   string
		points int
		locale string
	}{
		{word: "Hallo", hint: "de", points: 9, locale: "de"}, // H2 A1 L2 L2 O2
		{word: "hello", hint: "en", points: 8, locale: "en"}, // H4 E1 L1 L1 O1
		{word: "", hint: "de", points: 0, locale: "de"},
		{word: "Käse", hint: "de", points: 12, locale: "de"}, // K4 Ä6 S1 E1
		{word: "jazz", hint: "fr", points: 29, locale: "fr"}, // J8 A1 Z10 Z10
	}

	for _, fix := range fixtures {
		points, locale := engine.Score(fix.word, fix.hint)
		assert.Equal(fix.points, points, "word %q", fix.word)
		assert.Equal(fix.locale, locale, "word %q", fix.word)
	}
}

func TestScoreCaseInvariant(t *testing.T) {
	assert := assert.New(t)
	engine := NewEngine("de")

	for _, word := range []string{"hello", "Straße", "ZUG", "wort"} {
		lowPoints, lowLocale := engine.Score(strings.ToLower(word), "de")
		upPoints, upLocale := engine.Score(strings.ToUpper(word), "de")
		assert.Equal(lowPoints, upPoints, "word %q", word)
		assert.Equal(lowLocale, upLocale, "word %q", word)
	}
}

func TestScoreHintFallbacks(t *testing.T) {
	assert := assert.New(t)
	engine := NewEngine("de")

	fixtures := []struct {
		hint   string
		locale string
	}{
		{hint: "de-AT", locale: "de"},
		{hint: "en-US", locale: "en"},
		{hint: "ca", locale: "es"},
		{hint: "gl", locale: "pt"},
		{hint: "da", locale: "sv"},
		{hint: "uk", locale: "ru"},
		{hint: "cs", locale: "pl"},
		{hint: "ro", locale: "it"},
	}

	for _, fix := range fixtures {
		_, locale := engine.Score("wort", fix.hint)
		assert.Equal(fix.locale, locale, "hint %q", fix.hint)
	}
}

func TestDetectLocaleCyrillic(t *testing.T) {
	assert := assert.New(t)
	engine := NewEngine("de")

	assert.Equal("ru", engine.DetectLocale("Привет"))

	points, locale := engine.Score("Привет", "")
	assert.Equal("ru", locale)
	assert.True(points > 0)
}

func TestDetectLocaleUnparseableHint(t *testing.T) {
	assert := assert.New(t)
	engine := NewEngine("de")

	// A junk hint must not crash; the word still resolves somewhere supported.
	_, locale := engine.Score("Haus", "not a locale!!")
	assert.True(IsSupported(locale))
}

func TestNewEngineUnsupportedDefault(t *testing.T) {
	require := require.New(t)
	engine := NewEngine("xx")
	require.Equal(DefaultLocale, engine.DefaultLocale())
}

func TestIsValidWord(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		word  string
		valid bool
	}{
		{word: "Hello", valid: true},
		{word: "Käse", valid: true},
		{word: "Hello-World", valid: true},
		{word: "it's", valid: true},
		{word: "it’s", valid: true},
		{word: "Hello123", valid: false},
		{word: "Hello@World", valid: false},
		{word: "", valid: false},
		{word: "12345", valid: false},
		{word: "-'", valid: false},
		{word: "😀", valid: false},
		{word: "Привет", valid: true},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.valid, IsValidWord(fix.word), "word %q", fix.word)
	}
}

func TestIsUnsupportedScript(t *testing.T) {
	assert := assert.New(t)
	engine := NewEngine("de")

	// Any positive score means supported, full stop.
	assert.False(IsUnsupportedScript("Hello", 8))
	assert.False(IsUnsupportedScript("A", 1))
	assert.False(IsUnsupportedScript("ZZZZ", 40))

	foreign := []string{"こんにちは", "你好", "مرحبا", "שלום", "😀🎉", ""}
	for _, word := range foreign {
		points, _ := engine.Score(word, "de")
		assert.Equal(0, points, "word %q", word)
		assert.True(IsUnsupportedScript(word, points), "word %q", word)
	}

	// At zero points, majority coverage by supported alphabets wins:
	// 5 of 7 runes here are Latin letters.
	assert.False(IsUnsupportedScript("Hello你好", 0))
	// ...but a minority does not: 2 of 6.
	assert.True(IsUnsupportedScript("ab你好你好", 0))
}

func TestFormatReply(t *testing.T) {
	assert := assert.New(t)

	singular := FormatReply("ei", 1, "de")
	assert.Contains(singular, "EI")
	assert.Contains(singular, "1 Scrabble-Punkt ")
	assert.Contains(singular, "Deutsch")

	plural := FormatReply("Hallo", 9, "de")
	assert.Contains(plural, "HALLO")
	assert.Contains(plural, "9 Scrabble-Punkte")
	assert.Contains(plural, "Deutsch")

	english := FormatReply("hello", 8, "en")
	assert.Contains(english, "HELLO")
	assert.Contains(english, "8 Scrabble points")
	assert.Contains(english, "English")

	// Unknown locales fall back to the default catalog.
	fallback := FormatReply("wort", 5, "xx")
	assert.Contains(fallback, "WORT")
	assert.Contains(fallback, "Scrabble-Punkte")
}

func TestMessageCatalog(t *testing.T) {
	assert := assert.New(t)

	assert.Contains(strings.ToLower(MultiWordError("en")), "one word")
	assert.Contains(strings.ToLower(InvalidWordError("en")), "letters")
	lowerRate := strings.ToLower(RateLimitedMessage("en"))
	assert.True(strings.Contains(lowerRate, "too many") || strings.Contains(lowerRate, "wait"))
	assert.Contains(strings.ToLower(UnsupportedLanguageMessage("en")), "not supported")

	// Every supported locale has a complete catalog.
	for _, locale := range SupportedLocales() {
		c, ok := catalogs[locale]
		assert.True(ok, "missing catalog for %s", locale)
		assert.NotEmpty(c.NameLocal, locale)
		assert.NotEmpty(c.NameInDefault, locale)
		assert.NotEmpty(c.ReplySingular, locale)
		assert.NotEmpty(c.ReplyPlural, locale)
		assert.NotEmpty(c.MultiWord, locale)
		assert.NotEmpty(c.InvalidWord, locale)
		assert.NotEmpty(c.RateLimited, locale)
		assert.NotEmpty(c.Unsupported, locale)
	}

	// Unknown locale falls back to the default catalog.
	assert.Equal(MultiWordError(DefaultLocale), MultiWordError("zz"))
}

func TestLanguageName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Deutsch", LanguageName("de", false))
	assert.Equal("Deutsch", LanguageName("de", true))
	assert.Equal("Englisch", LanguageName("en", false))
	assert.Equal("English", LanguageName("en", true))
	assert.Equal("xx", LanguageName("xx", false))
}

func TestTablesCoverOwnAlphabet(t *testing.T) {
	assert := assert.New(t)

	// Every table is non-empty and the Latin-script ones cover at least the
	// unaccented core alphabet they share.
	latin := []string{"de", "en", "fr", "es", "it", "nl", "pl", "pt", "sv", "tr"}
	for _, locale := range latin {
		table := letterPoints[locale]
		assert.NotEmpty(table, locale)
		for _, r := range "AEINORST" {
			assert.Contains(table, r, "locale %s missing %c", locale, r)
		}
	}
	assert.NotEmpty(letterPoints["ru"])
}
