package scrabble

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pemistahl/lingua-go"
	"golang.org/x/text/language"
)

// localeFallbacks maps detectable or declared neighbour languages to the
// nearest supported letter table.
var localeFallbacks = map[string]string{
	"bg": "ru", // Bulgarian -> Russian (Cyrillic)
	"uk": "ru", // Ukrainian -> Russian (Cyrillic)
	"mk": "ru", // Macedonian -> Russian (Cyrillic)
	"sr": "ru", // Serbian -> Russian (Cyrillic)
	"ca": "es", // Catalan -> Spanish
	"gl": "pt", // Galician -> Portuguese
	"da": "sv", // Danish -> Swedish
	"no": "sv", // Norwegian -> Swedish
	"nb": "sv", // Bokmål -> Swedish
	"nn": "sv", // Nynorsk -> Swedish
	"af": "nl", // Afrikaans -> Dutch
	"cs": "pl", // Czech -> Polish
	"sk": "pl", // Slovak -> Polish
	"ro": "it", // Romanian -> Italian
}

// detectorLanguages are the candidates offered to the statistical detector:
// every supported locale plus the fallback sources above (Galician is not in
// lingua's model set, so it only resolves via declared hints).
var detectorLanguages = []lingua.Language{
	lingua.German,
	lingua.English,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Dutch,
	lingua.Polish,
	lingua.Portuguese,
	lingua.Russian,
	lingua.Swedish,
	lingua.Turkish,
	lingua.Bulgarian,
	lingua.Ukrainian,
	lingua.Macedonian,
	lingua.Serbian,
	lingua.Catalan,
	lingua.Danish,
	lingua.Bokmal,
	lingua.Nynorsk,
	lingua.Afrikaans,
	lingua.Czech,
	lingua.Slovak,
	lingua.Romanian,
}

const (
	detectCacheSize = 4096
	detectCacheTTL  = time.Hour
)

// Engine resolves locales and scores words. Detection results are memoized
// in an expiring LRU since the same words tend to be requested in bursts.
type Engine struct {
	defaultLocale string
	detector      lingua.LanguageDetector
	detectCache   *expirable.LRU[string, string]
}

// NewEngine builds an engine whose detection failures resolve to
// defaultLocale. An unsupported default falls back to the package default.
func NewEngine(defaultLocale string) *Engine {
	if !IsSupported(defaultLocale) {
		defaultLocale = DefaultLocale
	}
	return &Engine{
		defaultLocale: defaultLocale,
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build(),
		detectCache: expirable.NewLRU[string, string](detectCacheSize, nil, detectCacheTTL),
	}
}

// DefaultLocale returns the locale used when detection fails.
func (e *Engine) DefaultLocale() string {
	return e.defaultLocale
}

// resolveLocaleTag canonicalizes a declared BCP-47 tag down to a supported
// locale: base extraction first, then the fallback table.
func resolveLocaleTag(tag string) (string, bool) {
	parsed, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", false
	}
	base, _ := parsed.Base()
	code := base.String()
	if IsSupported(code) {
		return code, true
	}
	if fb, ok := localeFallbacks[code]; ok {
		return fb, true
	}
	return "", false
}

// ResolveLocaleTag is resolveLocaleTag for callers outside the package.
func ResolveLocaleTag(tag string) (string, bool) {
	return resolveLocaleTag(tag)
}

func hasCyrillic(word string) bool {
	for _, r := range word {
		if r >= 0x0400 && r <= 0x04FF {
			return true
		}
	}
	return false
}

// DetectLocale guesses the locale of a word. Cyrillic script short-circuits
// to Russian; otherwise the statistical detector runs and its answer is
// mapped through the fallback table. Anything inconclusive lands on the
// engine's default locale.
func (e *Engine) DetectLocale(word string) string {
	if hasCyrillic(word) {
		return "ru"
	}
	if cached, ok := e.detectCache.Get(word); ok {
		return cached
	}
	locale := e.defaultLocale
	if lang, exists := e.detector.DetectLanguageOf(word); exists {
		code := strings.ToLower(lang.IsoCode639_1().String())
		if IsSupported(code) {
			locale = code
		} else if fb, ok := localeFallbacks[code]; ok {
			locale = fb
		}
	}
	e.detectCache.Add(word, locale)
	return locale
}
