package builder

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/rf24docs/internal/markdown"
)

var roffEscaper = strings.NewReplacer(`\`, `\e`, "-", `\-`)

var roffArgEscaper = strings.NewReplacer(`\`, `\e`, `"`, `\(dq`)

// roffArg escapes a value placed inside a double-quoted request argument.
func roffArg(s string) string { return roffArgEscaper.Replace(s) }

// roffText escapes a line so that it is never taken as a request.
func roffText(s string) string {
	s = roffEscaper.Replace(s)
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "'") {
		s = `\&` + s
	}
	return s
}

func (b *Builder) writeMan(bc *buildContext) error {
	upper := cases.Upper(b.tag())
	date := b.now().Format("2006-01-02")
	for _, e := range bc.entries {
		page := bc.page(e.StartDoc)
		var out strings.Builder
		fmt.Fprintf(&out, ".\\\" Man page generated from %s\n", page.DocName)
		fmt.Fprintf(&out, ".TH \"%s\" \"%d\" \"%s\" \"%s\" \"%s\"\n",
			roffArg(upper.String(e.Name)), e.Section, date, roffArg(b.cfg.Project.Version), roffArg(b.cfg.Project.Name))
		out.WriteString(".SH NAME\n")
		fmt.Fprintf(&out, "%s \\- %s\n", roffText(e.Name), roffText(e.Description))
		out.WriteString(".SH DESCRIPTION\n")
		writeRoffBlocks(&out, page.Blocks(), upper)
		if len(e.Authors) > 0 {
			out.WriteString(".SH AUTHOR\n")
			out.WriteString(roffText(strings.Join(e.Authors, ", ")) + "\n")
		}
		if b.cfg.Project.Copyright != "" {
			out.WriteString(".SH COPYRIGHT\n")
			out.WriteString(roffText(b.cfg.Project.Copyright) + "\n")
		}
		if err := bc.write(e.Output, []byte(out.String())); err != nil {
			return err
		}
	}
	return nil
}

func writeRoffBlocks(out *strings.Builder, blocks []markdown.Block, upper cases.Caser) {
	for _, blk := range blocks {
		switch blk.Kind {
		case markdown.BlockHeading:
			if blk.Level == 1 {
				// The page title is already in the NAME section.
				continue
			}
			if blk.Level == 2 {
				out.WriteString(".SH " + roffText(upper.String(blk.Text)) + "\n")
			} else {
				out.WriteString(".SS " + roffText(blk.Text) + "\n")
			}
		case markdown.BlockParagraph:
			out.WriteString(".PP\n" + roffText(blk.Text) + "\n")
		case markdown.BlockListItem:
			out.WriteString(".IP \\(bu 2\n" + roffText(blk.Text) + "\n")
		case markdown.BlockCode:
			out.WriteString(".PP\n.nf\n.RS 4\n")
			for _, line := range strings.Split(strings.TrimRight(blk.Text, "\n"), "\n") {
				out.WriteString(roffText(line) + "\n")
			}
			out.WriteString(".RE\n.fi\n")
		}
	}
}

// tag is the document language, falling back to English.
func (b *Builder) tag() language.Tag {
	tag, err := language.Parse(b.cfg.General.Language)
	if err != nil {
		return language.English
	}
	return tag
}
