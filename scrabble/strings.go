package scrabble

import "fmt"

// catalog holds every user-visible string for one locale. Replies always go
// out in the locale the word was scored against, falling back to the default
// locale's catalog for anything unknown.
type catalog struct {
	// NameLocal is the language's own name for itself ("Deutsch", "English").
	NameLocal string
	// NameInDefault is the language's name rendered in the default locale.
	NameInDefault string
	// ReplySingular and ReplyPlural take (WORD, name) and (WORD, points, name).
	ReplySingular string
	ReplyPlural   string
	MultiWord     string
	InvalidWord   string
	RateLimited   string
	Unsupported   string
}

var catalogs = map[string]catalog{
	"de": {
		NameLocal:     "Deutsch",
		NameInDefault: "Deutsch",
		ReplySingular: `Das Wort "%s" ist 1 Scrabble-Punkt wert (%s).`,
		ReplyPlural:   `Das Wort "%s" ist %d Scrabble-Punkte wert (%s).`,
		MultiWord:     "Bitte schicke mir nur ein einzelnes Wort.",
		InvalidWord:   "Das Wort darf nur Buchstaben enthalten.",
		RateLimited:   "Zu viele Anfragen. Bitte warte einen Moment, bevor du es erneut versuchst.",
		Unsupported:   "Diese Sprache wird leider noch nicht unterstützt.",
	},
	"en": {
		NameLocal:     "English",
		NameInDefault: "Englisch",
		ReplySingular: `The word "%s" is worth 1 Scrabble point (%s).`,
		ReplyPlural:   `The word "%s" is worth %d Scrabble points (%s).`,
		MultiWord:     "Please send me just one word at a time.",
		InvalidWord:   "Words may only contain letters.",
		RateLimited:   "Too many requests. Please wait a moment before trying again.",
		Unsupported:   "Sorry, that language is not supported yet.",
	},
	"fr": {
		NameLocal:     "Français",
		NameInDefault: "Französisch",
		ReplySingular: `Le mot "%s" vaut 1 point au Scrabble (%s).`,
		ReplyPlural:   `Le mot "%s" vaut %d points au Scrabble (%s).`,
		MultiWord:     "Merci de m'envoyer un seul mot à la fois.",
		InvalidWord:   "Le mot ne peut contenir que des lettres.",
		RateLimited:   "Trop de demandes. Merci de patienter un instant avant de réessayer.",
		Unsupported:   "Désolé, cette langue n'est pas encore prise en charge.",
	},
	"es": {
		NameLocal:     "Español",
		NameInDefault: "Spanisch",
		ReplySingular: `La palabra "%s" vale 1 punto de Scrabble (%s).`,
		ReplyPlural:   `La palabra "%s" vale %d puntos de Scrabble (%s).`,
		MultiWord:     "Por favor, envíame una sola palabra.",
		InvalidWord:   "La palabra solo puede contener letras.",
		RateLimited:   "Demasiadas solicitudes. Espera un momento antes de volver a intentarlo.",
		Unsupported:   "Lo siento, ese idioma todavía no está soportado.",
	},
	"it": {
		NameLocal:     "Italiano",
		NameInDefault: "Italienisch",
		ReplySingular: `La parola "%s" vale 1 punto a Scrabble (%s).`,
		ReplyPlural:   `La parola "%s" vale %d punti a Scrabble (%s).`,
		MultiWord:     "Per favore, mandami una sola parola alla volta.",
		InvalidWord:   "La parola può contenere solo lettere.",
		RateLimited:   "Troppe richieste. Attendi un momento prima di riprovare.",
		Unsupported:   "Spiacente, questa lingua non è ancora supportata.",
	},
	"nl": {
		NameLocal:     "Nederlands",
		NameInDefault: "Niederländisch",
		ReplySingular: `Het woord "%s" is 1 Scrabble-punt waard (%s).`,
		ReplyPlural:   `Het woord "%s" is %d Scrabble-punten waard (%s).`,
		MultiWord:     "Stuur me alsjeblieft één woord tegelijk.",
		InvalidWord:   "Het woord mag alleen letters bevatten.",
		RateLimited:   "Te veel verzoeken. Wacht even voordat je het opnieuw probeert.",
		Unsupported:   "Sorry, die taal wordt nog niet ondersteund.",
	},
	"pl": {
		NameLocal:     "Polski",
		NameInDefault: "Polnisch",
		ReplySingular: `Słowo "%s" jest warte 1 punkt w Scrabble (%s).`,
		ReplyPlural:   `Słowo "%s" jest warte %d punktów w Scrabble (%s).`,
		MultiWord:     "Proszę, wyślij mi tylko jedno słowo.",
		InvalidWord:   "Słowo może zawierać tylko litery.",
		RateLimited:   "Zbyt wiele próśb. Poczekaj chwilę przed kolejną próbą.",
		Unsupported:   "Przepraszam, ten język nie jest jeszcze obsługiwany.",
	},
	"pt": {
		NameLocal:     "Português",
		NameInDefault: "Portugiesisch",
		ReplySingular: `A palavra "%s" vale 1 ponto no Scrabble (%s).`,
		ReplyPlural:   `A palavra "%s" vale %d pontos no Scrabble (%s).`,
		MultiWord:     "Por favor, envia-me apenas uma palavra de cada vez.",
		InvalidWord:   "A palavra só pode conter letras.",
		RateLimited:   "Demasiados pedidos. Aguarda um momento antes de tentares novamente.",
		Unsupported:   "Desculpa, esse idioma ainda não é suportado.",
	},
	"ru": {
		NameLocal:     "Русский",
		NameInDefault: "Russisch",
		ReplySingular: `Слово "%s" стоит 1 очко в Скрэббл (%s).`,
		ReplyPlural:   `Слово "%s" стоит %d очков в Скрэббл (%s).`,
		MultiWord:     "Пожалуйста, присылайте только одно слово за раз.",
		InvalidWord:   "Слово может содержать только буквы.",
		RateLimited:   "Слишком много запросов. Подождите немного, прежде чем пробовать снова.",
		Unsupported:   "Извините, этот язык пока не поддерживается.",
	},
	"sv": {
		NameLocal:     "Svenska",
		NameInDefault: "Schwedisch",
		ReplySingular: `Ordet "%s" är värt 1 Scrabble-poäng (%s).`,
		ReplyPlural:   `Ordet "%s" är värt %d Scrabble-poäng (%s).`,
		MultiWord:     "Skicka bara ett ord i taget, tack.",
		InvalidWord:   "Ordet får bara innehålla bokstäver.",
		RateLimited:   "För många förfrågningar. Vänta en stund innan du försöker igen.",
		Unsupported:   "Tyvärr stöds inte det språket ännu.",
	},
	"tr": {
		NameLocal:     "Türkçe",
		NameInDefault: "Türkisch",
		ReplySingular: `"%s" kelimesi Scrabble'da 1 puan değerinde (%s).`,
		ReplyPlural:   `"%s" kelimesi Scrabble'da %d puan değerinde (%s).`,
		MultiWord:     "Lütfen bana her seferinde tek bir kelime gönder.",
		InvalidWord:   "Kelime yalnızca harflerden oluşabilir.",
		RateLimited:   "Çok fazla istek. Tekrar denemeden önce lütfen biraz bekle.",
		Unsupported:   "Üzgünüm, bu dil henüz desteklenmiyor.",
	},
}

func catalogFor(locale string) catalog {
	if c, ok := catalogs[locale]; ok {
		return c
	}
	return catalogs[DefaultLocale]
}

// LanguageName returns the locale's display name, either in its own language
// or rendered in the default locale. Unknown locales echo the tag back.
func LanguageName(locale string, localized bool) string {
	c, ok := catalogs[locale]
	if !ok {
		return locale
	}
	if localized {
		return c.NameLocal
	}
	return c.NameInDefault
}

// FormatReply renders the score reply for a word in the given locale,
// selecting the singular template for exactly one point.
func FormatReply(word string, points int, locale string) string {
	c := catalogFor(locale)
	upper := upperWord(word)
	if points == 1 {
		return fmt.Sprintf(c.ReplySingular, upper, c.NameLocal)
	}
	return fmt.Sprintf(c.ReplyPlural, upper, points, c.NameLocal)
}

// MultiWordError is the localized "one word only" message.
func MultiWordError(locale string) string { return catalogFor(locale).MultiWord }

// InvalidWordError is the localized "letters only" message.
func InvalidWordError(locale string) string { return catalogFor(locale).InvalidWord }

// RateLimitedMessage is the localized throttling message.
func RateLimitedMessage(locale string) string { return catalogFor(locale).RateLimited }

// UnsupportedLanguageMessage is the localized "language not supported" message.
func UnsupportedLanguageMessage(locale string) string { return catalogFor(locale).Unsupported }
