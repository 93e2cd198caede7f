package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/highlight"
)

// HighlightCmd implements the 'highlight' command.
type HighlightCmd struct {
	File        string `arg:"" optional:"" help:"Source file; reads stdin when omitted or '-'"`
	Lang        string `short:"l" help:"Language name or alias (defaults to the file extension)"`
	Style       string `short:"s" help:"Style name (defaults to the configured style)"`
	Spans       bool   `help:"Print one token per line with its category and colour instead of HTML"`
	CSS         bool   `help:"Print the stylesheet of the style and exit"`
	LineNumbers bool   `name:"line-numbers" help:"Number the lines in HTML output"`
	Standalone  bool   `help:"Wrap HTML output in a complete document"`
}

func (h *HighlightCmd) Run(g *Global, root *CLI) error {
	cfg, reg, err := loadWithStyles(root.Config)
	if err != nil {
		return err
	}
	styleName := h.Style
	if styleName == "" {
		styleName = cfg.Highlight.Style
	}
	hl := highlight.New(reg)
	out := g.out()
	if h.CSS {
		return hl.CSS(out, styleName, highlight.Options{})
	}

	code, err := h.read()
	if err != nil {
		return err
	}
	lang := h.Lang
	if lang == "" && h.File != "" && h.File != "-" {
		lang = strings.TrimPrefix(filepath.Ext(h.File), ".")
	}

	if h.Spans {
		spans, err := hl.Spans(lang, styleName, code)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, s := range spans {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%q\n", s.Colour, s.Category, s.Text)
		}
		return tw.Flush()
	}
	return hl.HTML(out, lang, styleName, code, highlight.Options{LineNumbers: h.LineNumbers, Standalone: h.Standalone})
}

func (h *HighlightCmd) read() (string, error) {
	var (
		data []byte
		err  error
	)
	if h.File == "" || h.File == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(h.File)
	}
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "read source").
			WithContext("file", h.File).
			Build()
	}
	return string(data), nil
}
