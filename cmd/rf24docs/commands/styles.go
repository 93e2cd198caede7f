package commands

import (
	"fmt"
)

// StylesCmd implements the 'styles' command.
type StylesCmd struct{}

func (s *StylesCmd) Run(g *Global, root *CLI) error {
	cfg, reg, err := loadWithStyles(root.Config)
	if err != nil {
		return err
	}
	for _, name := range reg.Names() {
		marker := " "
		if name == cfg.Highlight.Style {
			marker = "*"
		}
		_, _ = fmt.Fprintf(g.out(), "%s %s\n", marker, name)
	}
	return nil
}
