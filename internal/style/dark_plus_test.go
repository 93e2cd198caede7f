package style

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colour(s *chroma.Style, t chroma.TokenType) string {
	return strings.ToUpper(s.Get(t).Colour.String())
}

func TestDarkPlusDeclaredMapping(t *testing.T) {
	s := DarkPlus()

	cases := map[chroma.TokenType]string{
		chroma.Keyword:             "#499CD6",
		chroma.KeywordDeclaration:  "#C586C0",
		chroma.LiteralString:       "#B88451",
		chroma.LiteralStringEscape: "#DEA868",
		chroma.CommentSingle:       "#5E9955",
		chroma.LiteralNumber:       "#B3D495",
		chroma.NameVariable:        "#9CDCFE",
		chroma.GenericTraceback:    "#FF0909",
	}
	for tt, want := range cases {
		assert.Equal(t, want, colour(s, tt), CategoryName(tt))
	}
}

func TestDarkPlusInheritance(t *testing.T) {
	s := DarkPlus()

	// No explicit entry: falls back to the parent category.
	assert.Equal(t, "#B88451", colour(s, chroma.LiteralStringDouble))
	assert.Equal(t, "#499CD6", colour(s, chroma.KeywordReserved))
	assert.Equal(t, "#B3D495", colour(s, chroma.LiteralNumberHex))
	// No explicit entry anywhere in the hierarchy: falls back to Text.
	assert.Equal(t, "#FEFEFE", colour(s, chroma.TextWhitespace))
}

func TestDarkPlusEveryCategoryHasColour(t *testing.T) {
	s := DarkPlus()
	for _, tt := range Categories() {
		assert.True(t, s.Get(tt).Colour.IsSet(), "no colour for %s", CategoryName(tt))
	}
}

func TestDarkPlusChrome(t *testing.T) {
	s := DarkPlus()
	assert.Equal(t, "#1E1E1E", strings.ToUpper(s.Get(chroma.Background).Background.String()))
	assert.Equal(t, "#FCFCFC", colour(s, chroma.LineNumbers))
	assert.Equal(t, "#282828", strings.ToUpper(s.Get(chroma.LineNumbers).Background.String()))
	assert.Equal(t, "#FF0000", strings.ToUpper(s.Get(chroma.LineHighlight).Background.String()))
}

func TestParseCategory(t *testing.T) {
	cases := map[string]chroma.TokenType{
		"Comment.Single":        chroma.CommentSingle,
		"String":                chroma.LiteralString,
		"String.Affix":          chroma.LiteralStringAffix,
		"Number":                chroma.LiteralNumber,
		"Literal.String.Double": chroma.LiteralStringDouble,
		"name.builtin.pseudo":   chroma.NameBuiltinPseudo,
	}
	for name, want := range cases {
		got, err := ParseCategory(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseCategory("Comment.Sarcastic")
	assert.Error(t, err)
}

func TestCategoryName(t *testing.T) {
	assert.Equal(t, "Comment.Single", CategoryName(chroma.CommentSingle))
	assert.Equal(t, "Name.Builtin.Pseudo", CategoryName(chroma.NameBuiltinPseudo))
	assert.Equal(t, "Keyword", CategoryName(chroma.Keyword))
}
