package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/rf24docs/internal/builder"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, reg, err := loadWithStyles(root.Config)
	if err != nil {
		return err
	}
	if _, err := reg.Select(cfg.Highlight.Style); err != nil {
		return err
	}

	var warnings []string
	tw := tabwriter.NewWriter(g.out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "project\t%s\n", cfg.Project.Name)
	_, _ = fmt.Fprintf(tw, "author\t%s\n", cfg.Project.Author)
	_, _ = fmt.Fprintf(tw, "copyright\t%s\n", cfg.Project.Copyright)
	_, _ = fmt.Fprintf(tw, "version\t%s\n", cfg.Project.Version)
	_, _ = fmt.Fprintf(tw, "release\t%s\n", cfg.Project.Release)
	_, _ = fmt.Fprintf(tw, "language\t%s\n", cfg.General.Language)
	_, _ = fmt.Fprintf(tw, "master doc\t%s\n", cfg.General.MasterDoc)
	_, _ = fmt.Fprintf(tw, "style\t%s (%d registered)\n", cfg.Highlight.Style, reg.Len())
	for _, t := range cfg.Targets() {
		source := t.InventoryURL()
		if path, ok := t.Inventory.Get(); ok {
			source = path
		}
		_, _ = fmt.Fprintf(tw, "target %s\t%s\t%s\n", t.Name, t.BaseURL, source)
	}
	for _, f := range builder.Formats() {
		entries, err := builder.Plan(cfg, f)
		if err != nil {
			return err
		}
		for _, e := range entries {
			_, _ = fmt.Fprintf(tw, "output %s\t%s\t%s\n", f, e.Output, e.Title)
		}
		if len(entries) > 0 && len(builder.ForDoc(entries, cfg.General.MasterDoc)) == 0 {
			warnings = append(warnings, fmt.Sprintf("no %s output starts at master doc %q", f, cfg.General.MasterDoc))
		}
	}
	_ = tw.Flush()
	for _, w := range warnings {
		_, _ = fmt.Fprintf(g.out(), "warning: %s\n", w)
	}
	_, _ = fmt.Fprintln(g.out(), "configuration OK")
	return nil
}
