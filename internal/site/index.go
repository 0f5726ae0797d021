package site

import (
	"fmt"
	"html"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// indexEntry is the home page at the site root. When the tutorial tree has a
// root index.md its content becomes the home page body; otherwise a short
// generated overview is used.
type indexEntry struct {
	tutorials *tutorialFolder
}

func (e *indexEntry) Name() string      { return "Home" }
func (e *indexEntry) URL() urlpath.Path { return urlpath.Path{} }

func (e *indexEntry) Nav() *NavItem { return Link("Home", urlpath.Path{}) }

func (e *indexEntry) Build(b *Builder) []Task {
	return []Task{b.pageTask("index", e)}
}

func (e *indexEntry) Title(b *Builder) string {
	return fmt.Sprintf("%s documentation", b.cfg.Project.Name)
}

func (e *indexEntry) Description(b *Builder) string {
	return fmt.Sprintf("Documentation for %s %s", b.cfg.Project.Name, b.cfg.Project.Version)
}

func (e *indexEntry) Content(b *Builder) (string, error) {
	if e.tutorials != nil && e.tutorials.index != nil {
		return e.tutorials.index.Content(b)
	}

	var out strings.Builder
	out.WriteString(`<h1>` + html.EscapeString(b.cfg.Project.Name) + `</h1>`)
	fmt.Fprintf(&out, `<p>Documentation for %s version %s.</p>`,
		html.EscapeString(b.cfg.Project.Name), html.EscapeString(b.cfg.Project.Version))
	if repo := b.cfg.Project.Repository; repo != "" {
		out.WriteString(`<p><a href="` + html.EscapeString(repo) + `">Repository</a></p>`)
	}
	out.WriteString(`<p>Browse the sidebar for namespaces, classes, functions and tutorials.</p>`)
	return out.String(), nil
}
