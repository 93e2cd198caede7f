package builder

import (
	"fmt"

	"git.home.luguber.info/inful/rf24docs/internal/config"
	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
)

// Entry is one output artifact a build produces.
type Entry struct {
	Format      Format
	StartDoc    string // document the artifact starts from
	Output      string // file name relative to the output directory
	Name        string // man page name or Texinfo dir entry
	Title       string
	Authors     []string
	Section     int                  // man only
	Class       config.DocumentClass // LaTeX only
	Description string               // man and Texinfo
	Category    string               // Texinfo only
}

// Plan lists the artifacts cfg declares for format.
func Plan(cfg *config.Config, format Format) ([]Entry, error) {
	var entries []Entry
	switch format {
	case FormatHTML:
		title := cfg.HTML.Title
		if title == "" {
			title = cfg.Project.Name
		}
		entries = append(entries, Entry{
			Format:   FormatHTML,
			StartDoc: cfg.General.MasterDoc,
			Output:   cfg.General.MasterDoc + ".html",
			Title:    title,
			Authors:  []string{cfg.Project.Author},
		})
	case FormatLaTeX:
		for _, d := range cfg.LaTeX.Documents {
			entries = append(entries, Entry{
				Format:   FormatLaTeX,
				StartDoc: d.StartDoc,
				Output:   d.TargetName,
				Title:    d.Title,
				Authors:  []string{d.Author},
				Class:    d.DocumentClass,
			})
		}
	case FormatMan:
		for _, p := range cfg.Man.Pages {
			entries = append(entries, Entry{
				Format:      FormatMan,
				StartDoc:    p.StartDoc,
				Output:      fmt.Sprintf("%s.%d", p.Name, p.Section),
				Name:        p.Name,
				Title:       p.Description,
				Authors:     append([]string(nil), p.Authors...),
				Section:     p.Section,
				Description: p.Description,
			})
		}
	case FormatTexinfo:
		for _, d := range cfg.Texinfo.Documents {
			entries = append(entries, Entry{
				Format:      FormatTexinfo,
				StartDoc:    d.StartDoc,
				Output:      d.TargetName + ".texi",
				Name:        d.DirEntry,
				Title:       d.Title,
				Authors:     []string{d.Author},
				Description: d.Description,
				Category:    d.Category,
			})
		}
	default:
		return nil, errors.ValidationError("unknown output format").
			WithContext("format", string(format)).
			Build()
	}
	return entries, nil
}

// ForDoc filters entries down to those starting at doc.
func ForDoc(entries []Entry, doc string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.StartDoc == doc {
			out = append(out, e)
		}
	}
	return out
}
