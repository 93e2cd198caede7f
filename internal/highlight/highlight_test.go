package highlight

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/style"
)

const sample = `def ping(nrf):
    # check the link
    return "ok"
`

func firstSpan(t *testing.T, spans []Span, match func(chroma.TokenType) bool) Span {
	t.Helper()
	for _, s := range spans {
		if match(s.Type) {
			return s
		}
	}
	t.Fatalf("no matching span in %+v", spans)
	return Span{}
}

func TestSpansKeywordStringCommentUseDarkPlusColours(t *testing.T) {
	h := New(style.NewDefaultRegistry())

	spans, err := h.Spans("python", style.DarkPlusName, sample)
	require.NoError(t, err)

	keyword := firstSpan(t, spans, func(tt chroma.TokenType) bool { return tt == chroma.Keyword })
	str := firstSpan(t, spans, func(tt chroma.TokenType) bool { return tt.InSubCategory(chroma.LiteralString) })
	comment := firstSpan(t, spans, func(tt chroma.TokenType) bool { return tt == chroma.CommentSingle })

	assert.Equal(t, "#499CD6", keyword.Colour)
	assert.Equal(t, "#B88451", str.Colour)
	assert.Equal(t, "#5E9955", comment.Colour)
	assert.Equal(t, "Comment.Single", comment.Category)

	distinct := map[string]bool{keyword.Colour: true, str.Colour: true, comment.Colour: true}
	assert.Len(t, distinct, 3)
}

func TestSpansAlwaysCarryAColour(t *testing.T) {
	h := New(style.NewDefaultRegistry())

	spans, err := h.Spans("python", style.DarkPlusName, sample)
	require.NoError(t, err)
	require.NotEmpty(t, spans)

	var text strings.Builder
	for _, s := range spans {
		assert.Regexp(t, `^#[0-9A-F]{6}$`, s.Colour, "span %q (%s)", s.Text, s.Category)
		text.WriteString(s.Text)
	}
	assert.Equal(t, sample, text.String())
}

func TestSpansUnknownStyle(t *testing.T) {
	h := New(style.NewRegistry())
	_, err := h.Spans("python", style.DarkPlusName, sample)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestHTMLInlineColours(t *testing.T) {
	h := New(style.NewDefaultRegistry())

	var buf bytes.Buffer
	require.NoError(t, h.HTML(&buf, "python", style.DarkPlusName, sample, Options{}))

	out := strings.ToLower(buf.String())
	for _, c := range []string{"#499cd6", "#b88451", "#5e9955"} {
		assert.Contains(t, out, c)
	}
	assert.Contains(t, out, "ping")
}

func TestHTMLWithClassesAndCSS(t *testing.T) {
	h := New(style.NewDefaultRegistry())

	var page bytes.Buffer
	require.NoError(t, h.HTML(&page, "python", style.DarkPlusName, sample, Options{Classes: true, LineNumbers: true}))
	assert.Contains(t, page.String(), `class="`)

	var css bytes.Buffer
	require.NoError(t, h.CSS(&css, style.DarkPlusName, Options{}))
	assert.Contains(t, strings.ToLower(css.String()), "#1e1e1e")
}

func TestLexerFallback(t *testing.T) {
	assert.Equal(t, "Python", Lexer("python").Config().Name)
	assert.NotNil(t, Lexer("no-such-language"))
	assert.NotNil(t, Lexer(""))

	spans, err := New(style.NewDefaultRegistry()).Spans("no-such-language", style.DarkPlusName, "plain words")
	require.NoError(t, err)
	require.NotEmpty(t, spans)
	assert.Equal(t, "#FEFEFE", spans[0].Colour)
}
