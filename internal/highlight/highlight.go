// Package highlight renders source code through a style selected from a
// style.Registry.
package highlight

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/metrics"
	"git.home.luguber.info/inful/rf24docs/internal/style"
)

// Span is one highlighted token with its resolved colour.
type Span struct {
	Text     string
	Type     chroma.TokenType
	Category string // dotted form, e.g. "Comment.Single"
	Colour   string // "#RRGGBB"
}

// Options controls HTML output.
type Options struct {
	LineNumbers    bool
	Classes        bool // emit CSS classes instead of inline styles
	Standalone     bool // wrap in a full HTML document
	HighlightLines [][2]int
}

// Highlighter tokenises code and colours it with registry styles.
type Highlighter struct {
	styles   *style.Registry
	recorder metrics.Recorder
}

// New returns a Highlighter reading styles from reg.
func New(reg *style.Registry) *Highlighter {
	return &Highlighter{styles: reg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (h *Highlighter) WithRecorder(r metrics.Recorder) *Highlighter {
	if r != nil {
		h.recorder = r
	}
	return h
}

// Spans tokenises code as lang and resolves each token's colour in the named style.
// Categories without an explicit colour resolve through their parents.
func (h *Highlighter) Spans(lang, styleName, code string) ([]Span, error) {
	s, err := h.styles.Select(styleName)
	if err != nil {
		return nil, err
	}
	it, err := h.tokenise(lang, code)
	if err != nil {
		return nil, err
	}

	tokens := it.Tokens()
	spans := make([]Span, 0, len(tokens))
	for _, tok := range tokens {
		spans = append(spans, Span{
			Text:     tok.Value,
			Type:     tok.Type,
			Category: style.CategoryName(tok.Type),
			Colour:   strings.ToUpper(s.Get(tok.Type).Colour.String()),
		})
	}
	return spans, nil
}

// HTML writes code as highlighted HTML.
func (h *Highlighter) HTML(w io.Writer, lang, styleName, code string, opts Options) error {
	s, err := h.styles.Select(styleName)
	if err != nil {
		return err
	}
	it, err := h.tokenise(lang, code)
	if err != nil {
		return err
	}
	if err := newFormatter(opts).Format(w, s, it); err != nil {
		return errors.WrapError(err, errors.CategoryBuild, "format highlighted html").
			WithContext("style", styleName).
			Build()
	}
	return nil
}

// CSS writes the class-based stylesheet for the named style.
func (h *Highlighter) CSS(w io.Writer, styleName string, opts Options) error {
	s, err := h.styles.Select(styleName)
	if err != nil {
		return err
	}
	opts.Classes = true
	if err := newFormatter(opts).WriteCSS(w, s); err != nil {
		return errors.WrapError(err, errors.CategoryBuild, "write style css").
			WithContext("style", styleName).
			Build()
	}
	return nil
}

func newFormatter(opts Options) *html.Formatter {
	formatOpts := []html.Option{
		html.WithClasses(opts.Classes),
		html.WithLineNumbers(opts.LineNumbers),
		html.Standalone(opts.Standalone),
	}
	if len(opts.HighlightLines) > 0 {
		formatOpts = append(formatOpts, html.HighlightLines(opts.HighlightLines))
	}
	return html.New(formatOpts...)
}

// tokenise falls back to plain text for unknown languages.
func (h *Highlighter) tokenise(lang, code string) (chroma.Iterator, error) {
	lexer := Lexer(lang)
	h.recorder.IncHighlight(lexer.Config().Name)
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "tokenise source").
			WithContext("language", lang).
			Build()
	}
	return it, nil
}

// Lexer resolves a language name, alias or file extension, falling back to plain text.
func Lexer(lang string) chroma.Lexer {
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	return lexers.Fallback
}
