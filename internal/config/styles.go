package config

import (
	"sort"

	"git.home.luguber.info/inful/rf24docs/internal/style"
)

// StyleRegistry returns a fresh registry holding the built-in styles,
// dark_plus and every style declared under highlight.styles. Declared styles
// are registered in name order and replace built-ins of the same name.
func (c *Config) StyleRegistry() (*style.Registry, error) {
	reg := style.NewDefaultRegistry()
	names := make([]string, 0, len(c.Highlight.Styles))
	for name := range c.Highlight.Styles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := reg.RegisterDefinition(name, c.Highlight.Styles[name]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
