package builder

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/rf24docs/internal/markdown"
)

var texinfoEscaper = strings.NewReplacer("@", "@@", "{", "@{", "}", "@}")

func texinfoText(s string) string { return texinfoEscaper.Replace(s) }

// texinfoNode makes a title usable as a node name; node names must not
// contain commas, colons or periods.
func texinfoNode(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', ':', '.', '(', ')':
			return ' '
		}
		return r
	}, texinfoText(s))
}

// texinfoNodeNames assigns every page a node name unique within one file.
// Repeated titles get a numeric suffix; "Top" is reserved.
func texinfoNodeNames(pages []*Page) []string {
	used := map[string]bool{"top": true}
	names := make([]string, len(pages))
	for i, p := range pages {
		base := strings.TrimSpace(texinfoNode(p.Title))
		if base == "" {
			base = texinfoNode(p.DocName)
		}
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s %d", base, n)
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func (b *Builder) writeTexinfo(bc *buildContext) error {
	for _, e := range bc.entries {
		pages := Ordered(bc.pages, e.StartDoc)
		nodes := texinfoNodeNames(pages)
		infoFile := strings.TrimSuffix(e.Output, ".texi") + ".info"

		var out strings.Builder
		out.WriteString("\\input texinfo\n")
		fmt.Fprintf(&out, "@setfilename %s\n", infoFile)
		out.WriteString("@documentencoding UTF-8\n")
		fmt.Fprintf(&out, "@settitle %s\n", texinfoText(e.Title))
		fmt.Fprintf(&out, "@dircategory %s\n", texinfoText(e.Category))
		out.WriteString("@direntry\n")
		fmt.Fprintf(&out, "* %s: (%s). %s\n", texinfoText(e.Name), strings.TrimSuffix(infoFile, ".info"), texinfoText(e.Description))
		out.WriteString("@end direntry\n\n")
		out.WriteString("@titlepage\n")
		fmt.Fprintf(&out, "@title %s\n", texinfoText(e.Title))
		fmt.Fprintf(&out, "@subtitle %s\n", texinfoText(b.cfg.Project.Release))
		for _, a := range e.Authors {
			fmt.Fprintf(&out, "@author %s\n", texinfoText(a))
		}
		out.WriteString("@page\n@vskip 0pt plus 1filll\n")
		fmt.Fprintf(&out, "Copyright @copyright{} %s\n", texinfoText(b.cfg.Project.Copyright))
		out.WriteString("@end titlepage\n@contents\n\n")

		out.WriteString("@node Top\n")
		fmt.Fprintf(&out, "@top %s\n\n", texinfoText(e.Title))
		out.WriteString("@menu\n")
		for _, node := range nodes {
			fmt.Fprintf(&out, "* %s::\n", node)
		}
		out.WriteString("@end menu\n\n")

		for i, p := range pages {
			fmt.Fprintf(&out, "@node %s\n", nodes[i])
			fmt.Fprintf(&out, "@chapter %s\n", texinfoText(p.Title))
			writeTexinfoBlocks(&out, p.Blocks())
			out.WriteString("\n")
		}
		out.WriteString("@bye\n")
		if err := bc.write(e.Output, []byte(out.String())); err != nil {
			return err
		}
	}
	return nil
}

func writeTexinfoBlocks(out *strings.Builder, blocks []markdown.Block) {
	sections := []string{"@section", "@subsection", "@subsubsection"}
	inList := false
	for _, blk := range blocks {
		if inList && blk.Kind != markdown.BlockListItem {
			out.WriteString("@end itemize\n")
			inList = false
		}
		switch blk.Kind {
		case markdown.BlockHeading:
			if blk.Level == 1 {
				continue
			}
			idx := min(blk.Level-2, len(sections)-1)
			fmt.Fprintf(out, "%s %s\n", sections[idx], texinfoText(blk.Text))
		case markdown.BlockParagraph:
			out.WriteString(texinfoText(blk.Text) + "\n\n")
		case markdown.BlockListItem:
			if !inList {
				out.WriteString("@itemize @bullet\n")
				inList = true
			}
			out.WriteString("@item\n" + texinfoText(blk.Text) + "\n")
		case markdown.BlockCode:
			out.WriteString("@example\n" + texinfoText(strings.TrimRight(blk.Text, "\n")) + "\n@end example\n\n")
		}
	}
	if inList {
		out.WriteString("@end itemize\n")
	}
}
