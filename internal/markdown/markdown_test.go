package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rf24docs/internal/highlight"
	"git.home.luguber.info/inful/rf24docs/internal/style"
)

type mapResolver map[string]string

func (m mapResolver) Resolve(ref string) (string, bool) {
	u, ok := m[ref]
	return u, ok
}

func TestRenderCollectsTitleAndHeadings(t *testing.T) {
	doc, err := Render([]byte("# Basic API\n\nText\n\n## begin()\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Basic API", doc.Title)
	require.Len(t, doc.Headings, 2)
	assert.Equal(t, Heading{Level: 2, Text: "begin()", ID: "begin"}, doc.Headings[1])
	assert.Contains(t, string(doc.HTML), `<h1 id="basic-api">Basic API</h1>`)
}

func TestRenderResolvesReferences(t *testing.T) {
	refs := mapResolver{"python:bytearray": "https://docs.python.org/3.7/library/stdtypes.html#bytearray"}
	doc, err := Render([]byte("Pass a [bytearray](ref:python:bytearray) or [x](ref:nope).\n"), Options{Refs: refs})
	require.NoError(t, err)
	html := string(doc.HTML)
	assert.Contains(t, html, `href="https://docs.python.org/3.7/library/stdtypes.html#bytearray"`)
	assert.Contains(t, html, `class="unresolved-reference"`)
	assert.Equal(t, []string{"nope"}, doc.Unresolved)
}

func TestRenderRewritesSourceLinks(t *testing.T) {
	doc, err := Render([]byte("[ex](examples.md#simple) [gh](https://github.com/x.md) [img](pic.png)\n"), Options{})
	require.NoError(t, err)
	html := string(doc.HTML)
	assert.Contains(t, html, `href="examples.html#simple"`)
	assert.Contains(t, html, `href="https://github.com/x.md"`)
	assert.Contains(t, html, `href="pic.png"`)
}

func TestRenderHighlightsFencedCode(t *testing.T) {
	h := highlight.New(style.NewDefaultRegistry())
	doc, err := Render([]byte("```python\nimport board\n```\n"), Options{Highlighter: h, Style: style.DarkPlusName})
	require.NoError(t, err)
	html := string(doc.HTML)
	assert.Contains(t, html, `class="chroma"`)
	assert.Contains(t, html, `<span class="kn">import</span>`)
}

func TestRenderUnknownStyleFails(t *testing.T) {
	h := highlight.New(style.NewRegistry())
	_, err := Render([]byte("```go\nx\n```\n"), Options{Highlighter: h, Style: "nope"})
	require.Error(t, err)
}

func TestBlocks(t *testing.T) {
	blocks := Blocks([]byte("# Title\n\nSome *text* wrapped\nhere.\n\n- one\n- two\n\n```python\nx = 1\n```\n"))
	require.Len(t, blocks, 5)
	assert.Equal(t, Block{Kind: BlockHeading, Level: 1, Text: "Title"}, blocks[0])
	assert.Equal(t, Block{Kind: BlockParagraph, Text: "Some text wrapped here."}, blocks[1])
	assert.Equal(t, Block{Kind: BlockListItem, Text: "one"}, blocks[2])
	assert.Equal(t, Block{Kind: BlockCode, Lang: "python", Text: "x = 1\n"}, blocks[4])
}

func TestLiteralBlocks(t *testing.T) {
	src := []byte("Troubleshooting\n===============\n\n.. note:: check wiring\n")
	assert.Equal(t, "Troubleshooting", LiteralTitle(src))
	blocks := LiteralBlocks(src)
	require.Len(t, blocks, 2)
	assert.Equal(t, BlockHeading, blocks[0].Kind)
	assert.Equal(t, ".. note:: check wiring\n", blocks[1].Text)

	assert.Empty(t, LiteralTitle([]byte("no title here\n")))
	assert.Len(t, LiteralBlocks([]byte("no title here\n")), 1)
}
