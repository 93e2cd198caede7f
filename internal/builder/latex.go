package builder

import (
	"fmt"
	"sort"
	"strings"

	"git.home.luguber.info/inful/rf24docs/internal/config"
	"git.home.luguber.info/inful/rf24docs/internal/markdown"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"{", `\{`,
	"}", `\}`,
	"$", `\$`,
	"&", `\&`,
	"#", `\#`,
	"_", `\_`,
	"%", `\%`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

func latexText(s string) string { return latexEscaper.Replace(s) }

// latexLabel turns a document name into a \label key. Anything but ASCII
// letters and digits becomes a hyphen.
func latexLabel(doc string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, doc)
}

// latexClass maps the document class onto a standard LaTeX class.
func latexClass(c config.DocumentClass) string {
	if c == config.DocumentClassHowto {
		return "article"
	}
	return "report"
}

func (b *Builder) writeLaTeX(bc *buildContext) error {
	elements := b.cfg.LaTeX.Elements
	for _, e := range bc.entries {
		var out strings.Builder
		var classOpts []string
		if v := elements["papersize"]; v != "" {
			classOpts = append(classOpts, v)
		}
		if v := elements["pointsize"]; v != "" {
			classOpts = append(classOpts, v)
		}
		class := latexClass(e.Class)
		if len(classOpts) > 0 {
			fmt.Fprintf(&out, "\\documentclass[%s]{%s}\n", strings.Join(classOpts, ","), class)
		} else {
			fmt.Fprintf(&out, "\\documentclass{%s}\n", class)
		}
		out.WriteString("\\usepackage[utf8]{inputenc}\n\\usepackage{hyperref}\n")
		if v := elements["preamble"]; v != "" {
			out.WriteString(v + "\n")
		}
		writeExtraElements(&out, elements)
		fmt.Fprintf(&out, "\\title{%s}\n", latexText(e.Title))
		fmt.Fprintf(&out, "\\author{%s}\n", latexText(strings.Join(e.Authors, " \\and ")))
		fmt.Fprintf(&out, "\\date{%s}\n", latexText(b.cfg.Project.Release))
		out.WriteString("\\begin{document}\n\\maketitle\n\\tableofcontents\n")

		top := "\\chapter"
		if class == "article" {
			top = "\\section"
		}
		for _, p := range Ordered(bc.pages, e.StartDoc) {
			fmt.Fprintf(&out, "%s{%s}\\label{%s}\n", top, latexText(p.Title), latexLabel(p.DocName))
			writeLaTeXBlocks(&out, p.Blocks(), class)
		}
		out.WriteString("\\end{document}\n")
		if err := bc.write(e.Output, []byte(out.String())); err != nil {
			return err
		}
	}
	return nil
}

// writeExtraElements emits elements other than the ones handled explicitly,
// in key order, as raw preamble lines.
func writeExtraElements(out *strings.Builder, elements map[string]string) {
	keys := make([]string, 0, len(elements))
	for k := range elements {
		switch k {
		case "papersize", "pointsize", "preamble", "figure_align":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%% %s\n%s\n", k, elements[k])
	}
}

func writeLaTeXBlocks(out *strings.Builder, blocks []markdown.Block, class string) {
	sections := []string{"\\section", "\\subsection", "\\subsubsection", "\\paragraph"}
	if class == "article" {
		sections = sections[1:]
	}
	inList := false
	for _, blk := range blocks {
		if inList && blk.Kind != markdown.BlockListItem {
			out.WriteString("\\end{itemize}\n")
			inList = false
		}
		switch blk.Kind {
		case markdown.BlockHeading:
			if blk.Level == 1 {
				continue
			}
			idx := min(blk.Level-2, len(sections)-1)
			fmt.Fprintf(out, "%s{%s}\n", sections[idx], latexText(blk.Text))
		case markdown.BlockParagraph:
			out.WriteString(latexText(blk.Text) + "\n\n")
		case markdown.BlockListItem:
			if !inList {
				out.WriteString("\\begin{itemize}\n")
				inList = true
			}
			out.WriteString("\\item " + latexText(blk.Text) + "\n")
		case markdown.BlockCode:
			out.WriteString("\\begin{verbatim}\n" + strings.TrimRight(blk.Text, "\n") + "\n\\end{verbatim}\n")
		}
	}
	if inList {
		out.WriteString("\\end{itemize}\n")
	}
}
