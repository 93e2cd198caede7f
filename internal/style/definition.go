package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// Definition is the declarative form of a colour style, as written in the
// configuration file. Token keys use dotted category names.
type Definition struct {
	BackgroundColor           string            `yaml:"background_color"`
	HighlightColor            string            `yaml:"highlight_color,omitempty"`
	LineNumberColor           string            `yaml:"line_number_color,omitempty"`
	LineNumberBackgroundColor string            `yaml:"line_number_background_color,omitempty"`
	DefaultStyle              string            `yaml:"default_style,omitempty"`
	Tokens                    map[string]string `yaml:"tokens"`
}

// FromDefinition builds an immutable chroma style named name from def.
func FromDefinition(name string, def Definition) (*chroma.Style, error) {
	entries := chroma.StyleEntries{}

	background := strings.TrimSpace(def.DefaultStyle)
	if def.BackgroundColor != "" {
		background = strings.TrimSpace(background + " bg:" + def.BackgroundColor)
	}
	if background != "" {
		entries[chroma.Background] = background
	}
	if def.HighlightColor != "" {
		entries[chroma.LineHighlight] = "bg:" + def.HighlightColor
	}
	if lineNumbers := lineNumberEntry(def); lineNumbers != "" {
		entries[chroma.LineNumbers] = lineNumbers
		entries[chroma.LineNumbersTable] = lineNumbers
	}

	// Sorted for deterministic error reporting.
	keys := make([]string, 0, len(def.Tokens))
	for k := range def.Tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t, err := ParseCategory(k)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		entries[t] = strings.TrimSpace(def.Tokens[k])
	}

	s, err := chroma.NewStyle(name, entries)
	if err != nil {
		return nil, fmt.Errorf("style %s: %w", name, err)
	}
	return s, nil
}

func lineNumberEntry(def Definition) string {
	parts := make([]string, 0, 2)
	if def.LineNumberColor != "" {
		parts = append(parts, def.LineNumberColor)
	}
	if def.LineNumberBackgroundColor != "" {
		parts = append(parts, "bg:"+def.LineNumberBackgroundColor)
	}
	return strings.Join(parts, " ")
}
