package builder

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/rf24docs/internal/config"
	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/frontmatter"
	"git.home.luguber.info/inful/rf24docs/internal/logfields"
	"git.home.luguber.info/inful/rf24docs/internal/markdown"
)

const markdownExt = ".md"

// Source is a document found in the source directory.
type Source struct {
	DocName string // slash separated path without suffix, e.g. "api/basic"
	Path    string // absolute file path
	Suffix  string
}

// IsMarkdown reports whether the source is rendered as Markdown.
func (s Source) IsMarkdown() bool { return s.Suffix == markdownExt }

// Page is a loaded source.
type Page struct {
	Source
	Title       string
	Orphan      bool
	Body        []byte
	Fingerprint string
}

// Discover lists documents under srcDir. Files are sources when they end in
// the configured source suffix or ".md". Exclusion patterns are matched
// against the slash separated relative path and the base name; templates
// paths and hidden entries are skipped. When two files share a document name
// the Markdown one wins.
func Discover(srcDir string, general config.GeneralConfig) ([]Source, error) {
	root, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve source directory").Build()
	}
	if st, statErr := os.Stat(root); statErr != nil || !st.IsDir() {
		return nil, errors.NotFoundError("source directory not found or not a directory").
			WithContext("path", root).
			Build()
	}

	suffixes := map[string]bool{markdownExt: true}
	if general.SourceSuffix != "" {
		suffixes[general.SourceSuffix] = true
	}
	skip := append(append([]string(nil), general.ExcludePatterns...), general.TemplatesPath...)

	byDoc := map[string]Source{}
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(d.Name(), ".") || excluded(rel, skip) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(rel)
		if !suffixes[ext] {
			return nil
		}
		doc := strings.TrimSuffix(rel, ext)
		if prev, exists := byDoc[doc]; exists {
			if prev.IsMarkdown() {
				return nil
			}
			slog.Debug("Markdown source shadows another source", logfields.File(prev.Path))
		}
		byDoc[doc] = Source{DocName: doc, Path: p, Suffix: ext}
		return nil
	})
	if walkErr != nil {
		return nil, errors.WrapError(walkErr, errors.CategoryFileSystem, "scan source directory").
			WithContext("path", root).
			Build()
	}

	out := make([]Source, 0, len(byDoc))
	for _, s := range byDoc {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocName < out[j].DocName })
	return out, nil
}

func excluded(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pat := range patterns {
		pat = strings.TrimSuffix(filepath.ToSlash(pat), "/")
		if pat == "" {
			continue
		}
		if rel == pat || strings.HasPrefix(rel, pat+"/") {
			return true
		}
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, base); ok {
			return true
		}
		if trimmed, found := strings.CutPrefix(pat, "**/"); found {
			if ok, _ := path.Match(trimmed, base); ok {
				return true
			}
		}
	}
	return false
}

// Load reads a source and extracts its title. The title is taken from the
// frontmatter, then the first heading, then the document name.
func Load(src Source) (*Page, error) {
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read source").
			WithContext("file", src.Path).
			Build()
	}
	meta, raw, body, err := frontmatter.Parse(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "invalid page metadata").
			WithContext("file", src.Path).
			Build()
	}

	page := &Page{
		Source:      src,
		Title:       meta.Title,
		Orphan:      meta.Orphan,
		Body:        body,
		Fingerprint: mdfp.CalculateFingerprintFromParts(string(raw), string(body)),
	}
	if page.Title == "" {
		page.Title = firstHeading(src, body)
	}
	if page.Title == "" {
		page.Title = path.Base(src.DocName)
	}
	return page, nil
}

func firstHeading(src Source, body []byte) string {
	if !src.IsMarkdown() {
		return markdown.LiteralTitle(body)
	}
	for _, b := range markdown.Blocks(body) {
		if b.Kind == markdown.BlockHeading && b.Level == 1 {
			return b.Text
		}
	}
	return ""
}

// Blocks returns the flattened content of the page.
func (p *Page) Blocks() []markdown.Block {
	if p.IsMarkdown() {
		return markdown.Blocks(p.Body)
	}
	return markdown.LiteralBlocks(p.Body)
}

// Ordered returns pages with the start document first and orphans removed.
func Ordered(pages []*Page, startDoc string) []*Page {
	out := make([]*Page, 0, len(pages))
	for _, p := range pages {
		if p.DocName == startDoc {
			out = append(out, p)
		}
	}
	for _, p := range pages {
		if p.DocName != startDoc && !p.Orphan {
			out = append(out, p)
		}
	}
	return out
}
