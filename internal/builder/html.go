package builder

import (
	"bytes"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/highlight"
	"git.home.luguber.info/inful/rf24docs/internal/inventory"
	"git.home.luguber.info/inful/rf24docs/internal/logfields"
	"git.home.luguber.info/inful/rf24docs/internal/markdown"
)

const (
	staticDir     = "_static"
	styleSheet    = "_static/pygments.css"
	inventoryFile = "objects.inv"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | {{.Project}}</title>
<link rel="stylesheet" href="{{.Root}}` + styleSheet + `">
{{- range .CSS}}
<link rel="stylesheet" href="{{$.Root}}_static/{{.}}">
{{- end}}
{{- with .Favicon}}
<link rel="icon" href="{{$.Root}}{{.}}">
{{- end}}
</head>
<body data-theme="{{.Theme}}" data-color-primary="{{.ColorPrimary}}" data-color-accent="{{.ColorAccent}}">
<header class="nav">
{{- with .Logo}}
<img class="logo" src="{{$.Root}}{{.}}" alt="logo">
{{- end}}
<a class="nav-title" href="{{.Root}}{{.Master}}.html">{{.NavTitle}}</a>
<ul class="nav-links">
{{- range .NavLinks}}
<li><a href="{{.Href}}">{{.Title}}</a></li>
{{- end}}
</ul>
{{- if .RepoURL}}
<a class="repo" href="{{.RepoURL}}">{{.RepoName}}</a>
{{- end}}
</header>
<aside class="globaltoc">
<ul>
{{- range .TOC}}
<li{{if .Current}} class="current"{{end}}><a href="{{.Href}}">{{.Title}}</a>
{{- if .Children}}
<ul>
{{- range .Children}}
<li><a href="{{.Href}}">{{.Title}}</a></li>
{{- end}}
</ul>
{{- end}}
</li>
{{- end}}
</ul>
</aside>
<main>
{{.Body}}
</main>
<footer>&copy; Copyright {{.Copyright}}. {{.Project}} {{.Release}}</footer>
</body>
</html>
`))

type navLink struct {
	Href  string
	Title string
}

type tocEntry struct {
	Href     string
	Title    string
	Current  bool
	Children []navLink
}

type pageView struct {
	Lang         string
	Title        string
	Project      string
	Release      string
	Copyright    string
	Root         string
	Master       string
	Theme        string
	ColorPrimary string
	ColorAccent  string
	NavTitle     string
	NavLinks     []navLink
	RepoURL      string
	RepoName     string
	Logo         string
	Favicon      string
	CSS          []string
	TOC          []tocEntry
	Body         template.HTML
}

type renderedPage struct {
	page *Page
	body []byte
	doc  *markdown.Document
}

func (b *Builder) writeHTML(bc *buildContext, srcDir string) error {
	rendered := make([]renderedPage, 0, len(bc.pages))
	for _, p := range bc.pages {
		rp, err := b.renderHTMLBody(p)
		if err != nil {
			return err
		}
		for _, ref := range rp.doc.Unresolved {
			bc.report.Warn("%s: unresolved reference %q", p.DocName, ref)
			bc.logger.Warn("Unresolved cross-reference", logfields.File(p.DocName), logfields.Target(ref))
		}
		rendered = append(rendered, rp)
	}

	for _, rp := range rendered {
		var buf bytes.Buffer
		if err := pageTemplate.Execute(&buf, b.pageView(rp, rendered)); err != nil {
			return errors.WrapError(err, errors.CategoryBuild, "execute page template").
				WithContext("doc", rp.page.DocName).
				Build()
		}
		if err := bc.write(rp.page.DocName+".html", buf.Bytes()); err != nil {
			return err
		}
	}

	var css bytes.Buffer
	if err := b.highlighter.CSS(&css, b.cfg.Highlight.Style, highlight.Options{}); err != nil {
		return err
	}
	if err := bc.write(styleSheet, css.Bytes()); err != nil {
		return err
	}
	if err := b.copyStatic(bc, srcDir); err != nil {
		return err
	}
	return b.writeInventory(bc)
}

func (b *Builder) renderHTMLBody(p *Page) (renderedPage, error) {
	if !p.IsMarkdown() {
		var body strings.Builder
		for _, blk := range p.Blocks() {
			switch blk.Kind {
			case markdown.BlockHeading:
				body.WriteString("<h1>" + template.HTMLEscapeString(blk.Text) + "</h1>\n")
			default:
				body.WriteString(`<pre class="literal-block">` + template.HTMLEscapeString(blk.Text) + "</pre>\n")
			}
		}
		return renderedPage{page: p, body: []byte(body.String()), doc: &markdown.Document{Title: p.Title}}, nil
	}

	var refs markdown.Resolver
	if b.refs != nil {
		refs = b.refs
	}
	doc, err := markdown.Render(p.Body, markdown.Options{
		Highlighter: b.highlighter,
		Style:       b.cfg.Highlight.Style,
		Refs:        refs,
		SourceExt:   markdownExt,
	})
	if err != nil {
		return renderedPage{}, errors.WrapError(err, errors.CategoryBuild, "render page").
			WithContext("doc", p.DocName).
			Build()
	}
	return renderedPage{page: p, body: doc.HTML, doc: doc}, nil
}

// relRoot is the prefix leading from doc back to the output root.
func relRoot(doc string) string {
	return strings.Repeat("../", strings.Count(doc, "/"))
}

func (b *Builder) pageView(rp renderedPage, all []renderedPage) pageView {
	html := b.cfg.HTML
	opts := html.ThemeOptions
	root := relRoot(rp.page.DocName)

	links := make([]navLink, 0, len(opts.NavLinks))
	for _, l := range opts.NavLinks {
		href := l.Href
		if l.Internal {
			href = root + strings.TrimSuffix(l.Href, ".html") + ".html"
		}
		links = append(links, navLink{Href: href, Title: l.Title})
	}

	title := rp.page.Title
	if rp.page.DocName == b.cfg.General.MasterDoc && html.Title != "" {
		title = html.Title
	}
	navTitle := opts.NavTitle
	if navTitle == "" {
		navTitle = b.cfg.Project.Name
	}

	return pageView{
		Lang:         b.cfg.General.Language,
		Title:        title,
		Project:      b.cfg.Project.Name,
		Release:      b.cfg.Project.Release,
		Copyright:    b.cfg.Project.Copyright,
		Root:         root,
		Master:       b.cfg.General.MasterDoc,
		Theme:        html.Theme,
		ColorPrimary: opts.ColorPrimary,
		ColorAccent:  opts.ColorAccent,
		NavTitle:     navTitle,
		NavLinks:     links,
		RepoURL:      opts.RepoURL,
		RepoName:     opts.RepoName,
		Logo:         html.Logo,
		Favicon:      html.Favicon,
		CSS:          html.CSSFiles,
		TOC:          b.globalTOC(rp, all, root),
		Body:         template.HTML(rp.body), // #nosec G203 -- produced by the markdown renderer
	}
}

// globalTOC lists the pages; depth 1 shows titles only, larger or negative
// depths add section headings, and collapse limits sections to the current page.
func (b *Builder) globalTOC(current renderedPage, all []renderedPage, root string) []tocEntry {
	opts := b.cfg.HTML.ThemeOptions
	entries := make([]tocEntry, 0, len(all))
	for _, rp := range all {
		if rp.page.Orphan && !opts.GlobalTOCIncludeHidden {
			continue
		}
		href := root + rp.page.DocName + ".html"
		e := tocEntry{Href: href, Title: rp.page.Title, Current: rp.page.DocName == current.page.DocName}
		if opts.GlobalTOCDepth != 1 && (!opts.GlobalTOCCollapse || e.Current) {
			for _, h := range rp.doc.Headings {
				if h.Level < 2 || (opts.GlobalTOCDepth > 0 && h.Level > opts.GlobalTOCDepth) {
					continue
				}
				e.Children = append(e.Children, navLink{Href: href + "#" + h.ID, Title: h.Text})
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// copyStatic copies the configured static directories into _static.
func (b *Builder) copyStatic(bc *buildContext, srcDir string) error {
	for _, dir := range b.cfg.HTML.StaticPath {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(srcDir, dir)
		}
		if st, err := os.Stat(root); err != nil || !st.IsDir() {
			bc.report.Warn("static path %s does not exist", dir)
			bc.logger.Warn("Static path missing", logfields.Path(root))
			continue
		}
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(p) // #nosec G304 -- walking the configured static path
			if err != nil {
				return err
			}
			return bc.write(path.Join(staticDir, filepath.ToSlash(rel)), data)
		})
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "copy static files").
				WithContext("path", root).
				Build()
		}
	}
	return nil
}

// writeInventory publishes the pages as an objects.inv so other projects can
// link here.
func (b *Builder) writeInventory(bc *buildContext) error {
	objects := make([]inventory.Object, 0, len(bc.pages))
	for _, p := range bc.pages {
		objects = append(objects, inventory.Object{
			Name:     p.DocName,
			Domain:   "std",
			Role:     "doc",
			Priority: -1,
			URI:      p.DocName + ".html",
			DispName: p.Title,
		})
	}
	inv := inventory.New(b.cfg.Project.Name, b.cfg.Project.Version, b.cfg.HTML.BaseURL, objects)
	var buf bytes.Buffer
	if err := inventory.Encode(&buf, inv); err != nil {
		return err
	}
	return bc.write(inventoryFile, buf.Bytes())
}
