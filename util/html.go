package util

import (
	"strings"

	"golang.org/x/net/html"
)

// Tags that terminate a run of inline text. Other tags (spans, anchors,
// formatting) are dropped without a separator so mention markup like
// "@<span>handle</span>" stays a single token.
var blockTags = map[string]bool{
	"p":          true,
	"br":         true,
	"div":        true,
	"li":         true,
	"ul":         true,
	"ol":         true,
	"blockquote": true,
	"pre":        true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
}

// ExtractText flattens status HTML into plain text: entities are decoded,
// block-level tags become whitespace, and runs of whitespace collapse to a
// single space.
func ExtractText(raw string) string {
	tok := html.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.TextToken:
			b.WriteString(tok.Token().Data)
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tok.TagName()
			if blockTags[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
