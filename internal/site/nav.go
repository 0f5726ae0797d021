package site

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

type navKind int

const (
	navLink navKind = iota
	navDir
	navRoot
)

// SubItem is a sub-anchor of a page link, e.g. one member function of a
// class. Rendered as a nested anchor under the page's nav entry.
type SubItem struct {
	Title  string
	Anchor string
}

// NavItem is one node of the sidebar tree. The tree is built once per run
// and rendered to HTML exactly once.
type NavItem struct {
	kind     navKind
	name     string
	url      urlpath.Path
	open     bool
	subItems []SubItem
	children []*NavItem
}

// Link creates a leaf nav entry pointing at a page.
func Link(name string, url urlpath.Path, subItems ...SubItem) *NavItem {
	return &NavItem{kind: navLink, name: name, url: url, subItems: subItems}
}

// Dir creates a collapsible nav entry grouping its children.
func Dir(name string, open bool, children ...*NavItem) *NavItem {
	return &NavItem{kind: navDir, name: name, open: open, children: children}
}

// RootNav creates a titled top-level nav section.
func RootNav(name string, children ...*NavItem) *NavItem {
	return &NavItem{kind: navRoot, name: name, open: true, children: children}
}

// Add appends children to a dir or root item.
func (n *NavItem) Add(children ...*NavItem) *NavItem {
	n.children = append(n.children, children...)
	return n
}

// HTML renders the nav subtree. Internal link targets are joined against
// base so they are site absolute on every page.
func (n *NavItem) HTML(base urlpath.Path) string {
	var b strings.Builder
	n.writeHTML(&b, base)
	return b.String()
}

func (n *NavItem) writeHTML(b *strings.Builder, base urlpath.Path) {
	switch n.kind {
	case navLink:
		href := base.Join(n.url).Href()
		b.WriteString(`<li><a href="` + html.EscapeString(href) + `">` + html.EscapeString(n.name) + `</a>`)
		if len(n.subItems) > 0 {
			b.WriteString(`<ul class="members">`)
			for _, sub := range n.subItems {
				b.WriteString(`<li><a href="` + html.EscapeString(href+sub.Anchor) + `">` + html.EscapeString(sub.Title) + `</a></li>`)
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</li>`)

	case navDir:
		b.WriteString(`<li><details`)
		if n.open {
			b.WriteString(` open`)
		}
		b.WriteString(`><summary>` + html.EscapeString(n.name) + `</summary><ul>`)
		for _, c := range n.children {
			c.writeHTML(b, base)
		}
		b.WriteString(`</ul></details></li>`)

	case navRoot:
		b.WriteString(`<details open class="root"><summary>` + html.EscapeString(n.name) + `</summary><ul>`)
		for _, c := range n.children {
			c.writeHTML(b, base)
		}
		b.WriteString(`</ul></details>`)
	}
}

// Empty reports whether a container item has nothing beneath it.
func (n *NavItem) Empty() bool {
	return n.kind != navLink && len(n.children) == 0
}
