package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const selfID = "12345"

func TestIgnoreQuoteOfOwnPost(t *testing.T) {
	assert := assert.New(t)
	c := New(selfID)

	ignore, reason := c.ShouldIgnore(Mention{
		Text:            "@bot check this out",
		QuotedAccountID: selfID,
	})
	assert.True(ignore)
	assert.Contains(reason, "quoting")

	// Quoting someone else is fine.
	ignore, _ = c.ShouldIgnore(Mention{
		Text:            "@bot test",
		QuotedAccountID: "99999",
	})
	assert.False(ignore)
}

func TestIgnoreReblogOfOwnPost(t *testing.T) {
	assert := assert.New(t)
	c := New(selfID)

	ignore, reason := c.ShouldIgnore(Mention{
		Text:              "@bot this is interesting",
		ReblogOfAccountID: selfID,
	})
	assert.True(ignore)
	assert.Contains(reason, "reblog")
}

func TestIgnoreConversationalReplies(t *testing.T) {
	assert := assert.New(t)
	c := New(selfID)

	fixtures := []struct {
		text   string
		ignore bool
	}{
		{text: "@someone Why is @bot not working?", ignore: true},
		{text: "@someone Thanks for telling me about @bot", ignore: true},
		{text: "@someone merci pour le bot", ignore: true},
		{text: "@someone der bot ist super", ignore: true},
		{text: "@bot Hallo", ignore: false},
	}

	for _, fix := range fixtures {
		ignore, reason := c.ShouldIgnore(Mention{
			Text:               fix.text,
			InReplyToAccountID: "99999",
		})
		assert.Equal(fix.ignore, ignore, "text %q", fix.text)
		if fix.ignore {
			assert.Contains(reason, "conversational", "text %q", fix.text)
		}
	}
}

func TestRepliesToBotAreProcessed(t *testing.T) {
	assert := assert.New(t)
	c := New(selfID)

	ignore, _ := c.ShouldIgnore(Mention{
		Text:               "@bot world",
		InReplyToAccountID: selfID,
	})
	assert.False(ignore)
}

func TestIgnoreGroupDiscussion(t *testing.T) {
	assert := assert.New(t)
	c := New(selfID)

	ignore, reason := c.ShouldIgnore(Mention{
		Text: "@bot @u1 @u2 @u3 let's play",
	})
	assert.True(ignore)
	assert.Contains(reason, "group discussion")

	// Exactly one plain word after stripping handles overrides the rule.
	ignore, _ = c.ShouldIgnore(Mention{
		Text: "@bot @u1 @u2 @u3 hello",
	})
	assert.False(ignore)
}

func TestIgnoreMetaDiscussion(t *testing.T) {
	assert := assert.New(t)
	c := New(selfID)

	fixtures := []string{
		"@user1 @user2 The bot is really helpful!",
		"@user Der Bot kann Scrabble-Punkte berechnen",
		"@user this bot rocks honestly",
	}

	for _, text := range fixtures {
		ignore, reason := c.ShouldIgnore(Mention{Text: text})
		assert.True(ignore, "text %q", text)
		assert.Contains(reason, "meta-discussion", "text %q", text)
	}

	// The single-word override applies here too: "@bot is" trips the
	// bot-verb pattern but leaves exactly one plain word.
	ignore, _ := c.ShouldIgnore(Mention{Text: "@bot is"})
	assert.False(ignore)
}

func TestNormalRequestsPass(t *testing.T) {
	assert := assert.New(t)
	c := New(selfID)

	for _, text := range []string{"@bot hello", "@bot Käse", "@bot #wort"} {
		ignore, reason := c.ShouldIgnore(Mention{Text: text})
		assert.False(ignore, "text %q", text)
		assert.Empty(reason, "text %q", text)
	}
}

func TestExtractWord(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text     string
		word     string
		multiple bool
		ok       bool
	}{
		{text: "@bot hello", word: "hello", multiple: false, ok: true},
		{text: "@bot hello world", word: "hello", multiple: true, ok: true},
		{text: "@bot", word: "", multiple: false, ok: false},
		{text: "@bot @user hello", word: "hello", multiple: false, ok: true},
		{text: "@bot@remote.example hello", word: "hello", multiple: false, ok: true},
		{text: "@bot #wort", word: "wort", multiple: false, ok: true},
		{text: "@bot #eins #zwei", word: "eins", multiple: true, ok: true},
		{text: "@bot hello #tag", word: "hello", multiple: false, ok: true},
		{text: "", word: "", multiple: false, ok: false},
	}

	for _, fix := range fixtures {
		word, multiple, ok := ExtractWord(fix.text)
		assert.Equal(fix.word, word, "text %q", fix.text)
		assert.Equal(fix.multiple, multiple, "text %q", fix.text)
		assert.Equal(fix.ok, ok, "text %q", fix.text)
	}
}
