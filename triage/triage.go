// Package triage decides which mentions deserve a score reply. The rules are
// an ordered list of pure predicates over normalized text; the first match
// wins and yields a reason tag. They are heuristics inherited from years of
// watching the bot get dragged into conversations, so precision beats recall.
package triage

import (
	"regexp"
	"strings"
	"unicode"
)

// Mention is the classifier's view of an inbound mention: text already
// stripped of HTML, plus the thread/citation metadata that matters.
type Mention struct {
	Text               string
	InReplyToAccountID string
	QuotedAccountID    string
	ReblogOfAccountID  string
}

// Classifier filters mentions for a specific bot account.
type Classifier struct {
	selfID string
}

func New(selfID string) *Classifier {
	return &Classifier{selfID: selfID}
}

type rule func(c *Classifier, m Mention) (bool, string)

// Order matters: citations of our own posts are the cheapest signal, then
// thread context, then content shape.
var rules = []rule{
	ruleOwnPostCitation,
	ruleConversationalReply,
	ruleGroupDiscussion,
	ruleMetaDiscussion,
}

// ShouldIgnore reports whether a mention should be dropped, with a reason
// tag for logs and metrics. An empty reason means "process it".
func (c *Classifier) ShouldIgnore(m Mention) (bool, string) {
	for _, r := range rules {
		if ignore, reason := r(c, m); ignore {
			return true, reason
		}
	}
	return false, ""
}

func ruleOwnPostCitation(c *Classifier, m Mention) (bool, string) {
	if m.QuotedAccountID != "" && m.QuotedAccountID == c.selfID {
		return true, "quoting own post"
	}
	if m.ReblogOfAccountID != "" && m.ReblogOfAccountID == c.selfID {
		return true, "reblog of own post"
	}
	return false, ""
}

// Words that mark a mention inside someone else's thread as conversation
// about the bot rather than a request to it.
var (
	interrogatives = []string{
		"why", "how", "warum", "wieso", "pourquoi", "porque", "porqué",
		"perché", "waarom", "dlaczego", "почему", "varför", "neden",
	}
	gratitudeWords = []string{
		"thanks", "thx", "danke", "merci", "gracias", "grazie", "bedankt",
		"dziękuję", "спасибо", "tack", "teşekkürler",
	}
	botVerbPattern = regexp.MustCompile(`(?i)\bbot\b[[:space:]]+(is|was|does|can|will|would|should|isn't|doesn't|kann|ist|war|macht|wird|est|peut|fait|es|puede|può|kan|jest|är|может)\b`)
)

func ruleConversationalReply(c *Classifier, m Mention) (bool, string) {
	if m.InReplyToAccountID == "" || m.InReplyToAccountID == c.selfID {
		return false, ""
	}
	if strings.Contains(m.Text, "?") {
		return true, "conversational reply"
	}
	toks := tokenize(m.Text)
	if containsAny(toks, interrogatives) || containsAny(toks, gratitudeWords) {
		return true, "conversational reply"
	}
	if botVerbPattern.MatchString(m.Text) {
		return true, "conversational reply"
	}
	return false, ""
}

var handlePattern = regexp.MustCompile(`@[[:alnum:]_]+(@[[:alnum:]_.\-]+)?`)

func ruleGroupDiscussion(c *Classifier, m Mention) (bool, string) {
	if len(handlePattern.FindAllString(m.Text, -1)) <= 2 {
		return false, ""
	}
	// A lone plain word among many mentions is still a genuine request.
	if singlePlainWordRemains(m.Text) {
		return false, ""
	}
	return true, "group discussion"
}

// metaPattern matches third-person talk about "the bot" across the supported
// locales, plus "bot <verb>" phrasings.
var metaPattern = regexp.MustCompile(`(?i)\b(the|this|that|der|die|das|dieser|den|le|ce|el|este|esta|il|questo|de|deze|dit|ten|o|esse|этот|den här|bu)[[:space:]]+bot\b`)

func ruleMetaDiscussion(c *Classifier, m Mention) (bool, string) {
	if !metaPattern.MatchString(m.Text) && !botVerbPattern.MatchString(m.Text) {
		return false, ""
	}
	if singlePlainWordRemains(m.Text) {
		return false, ""
	}
	return true, "meta-discussion"
}

// singlePlainWordRemains reports whether exactly one non-hashtag word is
// left after removing every @handle token.
func singlePlainWordRemains(text string) bool {
	cleaned := handlePattern.ReplaceAllString(text, " ")
	plain := 0
	for _, f := range strings.Fields(cleaned) {
		if strings.HasPrefix(f, "#") {
			continue
		}
		plain++
	}
	return plain == 1
}

// tokenize lowercases and splits on anything that is not a letter, so that
// word-set checks work across scripts without ASCII-only \b semantics.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func containsAny(tokens []string, set []string) bool {
	for _, tok := range tokens {
		for _, want := range set {
			if tok == want {
				return true
			}
		}
	}
	return false
}
