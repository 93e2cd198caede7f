package commands

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/inventory"
)

// InventoryCmd implements the 'inventory' command.
type InventoryCmd struct {
	Target []string `short:"t" help:"Only load these targets (repeatable)"`
	Lookup []string `help:"Resolve references such as 'python:str' against the loaded inventories"`
}

func (i *InventoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return err
	}
	targets := cfg.Targets()
	if len(i.Target) > 0 {
		targets = targets[:0]
		for _, name := range i.Target {
			t, ok := cfg.Target(name)
			if !ok {
				return errors.NotFoundError("unknown cross-reference target").
					WithContext("target", name).
					Build()
			}
			targets = append(targets, t)
		}
	}

	res, err := inventory.FromConfig(cfg, baseDir(root.Config)).
		WithLogger(g.logger()).
		LoadAll(context.Background(), targets)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.out(), 0, 0, 2, ' ', 0)
	for _, name := range res.Inventories.Names() {
		inv := res.Inventories[name]
		_, _ = fmt.Fprintf(tw, "%s\t%s %s\t%d objects\n", name, inv.Project, inv.Version, inv.Len())
	}
	failed := make([]string, 0, len(res.Failures))
	for name := range res.Failures {
		failed = append(failed, name)
	}
	sort.Strings(failed)
	for _, name := range failed {
		_, _ = fmt.Fprintf(tw, "%s\tunavailable\t%v\n", name, res.Failures[name])
	}
	for _, ref := range i.Lookup {
		if url, ok := res.Inventories.Resolve(ref); ok {
			_, _ = fmt.Fprintf(tw, "%s\t->\t%s\n", ref, url)
		} else {
			_, _ = fmt.Fprintf(tw, "%s\t->\tunresolved\n", ref)
		}
	}
	return tw.Flush()
}
