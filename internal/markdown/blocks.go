package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// BlockKind classifies a top-level block.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockCode
	BlockListItem
)

// Block is a flattened view of a document used by the non-HTML builders.
type Block struct {
	Kind  BlockKind
	Level int    // heading level
	Lang  string // code language
	Text  string // plain text; code keeps its line breaks
}

// Blocks flattens a Markdown body into headings, paragraphs, code and list
// items. Inline markup is reduced to its text.
func Blocks(body []byte) []Block {
	root := goldmark.New().Parser().Parse(text.NewReader(body))
	var out []Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		out = appendBlocks(out, n, body)
	}
	return out
}

func appendBlocks(out []Block, n gmast.Node, source []byte) []Block {
	switch node := n.(type) {
	case *gmast.Heading:
		return append(out, Block{Kind: BlockHeading, Level: node.Level, Text: plainText(node, source)})
	case *gmast.Paragraph, *gmast.TextBlock:
		if t := plainText(node, source); t != "" {
			return append(out, Block{Kind: BlockParagraph, Text: t})
		}
	case *gmast.FencedCodeBlock:
		var lang string
		if l := node.Language(source); l != nil {
			lang = string(l)
		}
		return append(out, Block{Kind: BlockCode, Lang: lang, Text: codeText(node, source)})
	case *gmast.CodeBlock:
		return append(out, Block{Kind: BlockCode, Text: codeText(node, source)})
	case *gmast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			if t := plainText(item, source); t != "" {
				out = append(out, Block{Kind: BlockListItem, Text: t})
			}
		}
	case *gmast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			out = appendBlocks(out, c, source)
		}
	}
	return out
}

// LiteralBlocks treats a non-Markdown source as preformatted text. A title
// underlined with =, - or ~ (reStructuredText style) becomes a heading.
func LiteralBlocks(body []byte) []Block {
	content := strings.ReplaceAll(string(body), "\r\n", "\n")
	var out []Block
	if title, rest, ok := underlinedTitle(content); ok {
		out = append(out, Block{Kind: BlockHeading, Level: 1, Text: title})
		content = rest
	}
	if strings.TrimSpace(content) != "" {
		out = append(out, Block{Kind: BlockCode, Text: strings.Trim(content, "\n") + "\n"})
	}
	return out
}

// LiteralTitle returns the heading of a non-Markdown source, if it has one.
func LiteralTitle(body []byte) string {
	title, _, _ := underlinedTitle(strings.ReplaceAll(string(body), "\r\n", "\n"))
	return title
}

func underlinedTitle(content string) (title, rest string, ok bool) {
	lines := strings.Split(strings.TrimLeft(content, "\n"), "\n")
	i := 0
	// optional overline
	if len(lines) > 2 && isUnderline(lines[0]) {
		i = 1
	}
	if len(lines) < i+2 {
		return "", content, false
	}
	title = strings.TrimSpace(lines[i])
	if title == "" || !isUnderline(lines[i+1]) || len(strings.TrimSpace(lines[i+1])) < len([]rune(title)) {
		return "", content, false
	}
	return title, strings.Join(lines[i+2:], "\n"), true
}

func isUnderline(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 3 {
		return false
	}
	c := line[0]
	if c != '=' && c != '-' && c != '~' && c != '*' && c != '#' {
		return false
	}
	return strings.Count(line, string(c)) == len(line)
}
