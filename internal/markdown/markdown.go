// Package markdown renders Markdown sources with goldmark. Fenced code is
// highlighted through the configured style and "ref:" links are resolved
// against cross-reference inventories.
package markdown

import (
	"bytes"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/highlight"
)

// RefScheme prefixes link destinations that name a cross-reference, e.g.
// [str](ref:python:str).
const RefScheme = "ref:"

// Resolver turns a cross-reference into an absolute URL.
type Resolver interface {
	Resolve(ref string) (string, bool)
}

// Options controls HTML rendering.
type Options struct {
	Highlighter *highlight.Highlighter
	Style       string
	Refs        Resolver // nil leaves every reference unresolved
	SourceExt   string   // local links ending in SourceExt are rewritten to .html
}

// Heading is a section title found while rendering.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// Document is a rendered page.
type Document struct {
	HTML       []byte
	Title      string // text of the first level-1 heading
	Headings   []Heading
	Unresolved []string // references that no inventory knew
}

// Render converts a Markdown body (frontmatter already removed) to HTML.
func Render(body []byte, opts Options) (*Document, error) {
	if opts.SourceExt == "" {
		opts.SourceExt = ".md"
	}
	links := &linkTransformer{refs: opts.Refs, sourceExt: opts.SourceExt}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(links, 100)),
		),
	)
	if opts.Highlighter != nil {
		md.Renderer().AddOptions(renderer.WithNodeRenderers(
			util.Prioritized(&codeRenderer{highlighter: opts.Highlighter, style: opts.Style}, 100),
		))
	}

	root := md.Parser().Parse(text.NewReader(body))
	doc := &Document{Headings: headings(root, body), Unresolved: links.unresolved}
	for _, h := range doc.Headings {
		if h.Level == 1 {
			doc.Title = h.Text
			break
		}
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, root); err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "render markdown").Build()
	}
	doc.HTML = buf.Bytes()
	return doc, nil
}

func headings(root gmast.Node, source []byte) []Heading {
	var out []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		heading := Heading{Level: h.Level, Text: plainText(h, source)}
		if id, found := h.AttributeString("id"); found {
			if b, isBytes := id.([]byte); isBytes {
				heading.ID = string(b)
			}
		}
		out = append(out, heading)
		return gmast.WalkSkipChildren, nil
	})
	return out
}

// linkTransformer rewrites "ref:" destinations and links to sibling sources.
type linkTransformer struct {
	refs       Resolver
	sourceExt  string
	unresolved []string
}

func (t *linkTransformer) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		link, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}
		dest := string(link.Destination)
		if ref, isRef := strings.CutPrefix(dest, RefScheme); isRef {
			if t.refs != nil {
				if u, found := t.refs.Resolve(ref); found {
					link.Destination = []byte(u)
					return gmast.WalkContinue, nil
				}
			}
			t.unresolved = append(t.unresolved, ref)
			link.Destination = []byte("#")
			link.SetAttributeString("class", []byte("unresolved-reference"))
			return gmast.WalkContinue, nil
		}
		link.Destination = []byte(localHTMLLink(dest, t.sourceExt))
		return gmast.WalkContinue, nil
	})
}

// localHTMLLink maps "page.md#frag" to "page.html#frag" for relative links.
func localHTMLLink(dest, ext string) string {
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "mailto:") {
		return dest
	}
	file, frag, hasFrag := strings.Cut(dest, "#")
	if path.Ext(file) != ext {
		return dest
	}
	file = strings.TrimSuffix(file, ext) + ".html"
	if hasFrag {
		return file + "#" + frag
	}
	return file
}

// codeRenderer highlights code blocks with CSS classes of the active style.
type codeRenderer struct {
	highlighter *highlight.Highlighter
	style       string
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gmast.KindFencedCodeBlock, r.render)
	reg.Register(gmast.KindCodeBlock, r.render)
}

func (r *codeRenderer) render(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	var lang string
	if fenced, ok := node.(*gmast.FencedCodeBlock); ok {
		if l := fenced.Language(source); l != nil {
			lang = string(l)
		}
	}
	if err := r.highlighter.HTML(w, lang, r.style, codeText(node, source), highlight.Options{Classes: true}); err != nil {
		return gmast.WalkStop, err
	}
	return gmast.WalkSkipChildren, nil
}

func codeText(node gmast.Node, source []byte) string {
	var b strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

func plainText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		case *gmast.AutoLink:
			b.Write(node.URL(source))
			return gmast.WalkSkipChildren, nil
		case *gmast.RawHTML:
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
