package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		raw string
		out string
	}{
		{raw: "", out: ""},
		{raw: "<p>Hello <strong>World</strong></p>", out: "Hello World"},
		{raw: "&lt;Hello&gt; &amp; &quot;World&quot;", out: `<Hello> & "World"`},
		{raw: "<p>one</p><p>two</p>", out: "one two"},
		{raw: "line<br/>break", out: "line break"},
		{
			raw: `<p><span class="h-card"><a href="https://example.com/@bot" class="u-url mention">@<span>bot</span></a></span> Hallo</p>`,
			out: "@bot Hallo",
		},
		{raw: "<p>  spaced   out  </p>", out: "spaced out"},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, ExtractText(fix.raw))
	}
}
