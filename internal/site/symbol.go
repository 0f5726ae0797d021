package site

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/linker"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// symbolEntries builds the entry tree for every documented symbol that gets
// a page of its own. Children are sorted namespaces first, then by name,
// matching the nav order.
func symbolEntries(syms []*symbols.Symbol) []Entry {
	sorted := make([]*symbols.Symbol, len(syms))
	copy(sorted, syms)
	sort.SliceStable(sorted, func(i, j int) bool {
		ni, nj := sorted[i].Kind == symbols.KindNamespace, sorted[j].Kind == symbols.KindNamespace
		if ni != nj {
			return ni
		}
		return sorted[i].Name < sorted[j].Name
	})

	var out []Entry
	for _, sym := range sorted {
		switch sym.Kind {
		case symbols.KindNamespace:
			out = append(out, &namespaceEntry{sym: sym, children: symbolEntries(sym.Children)})
		case symbols.KindClass, symbols.KindStruct:
			out = append(out, &classEntry{sym: sym})
		case symbols.KindFunction:
			out = append(out, &functionEntry{sym: sym})
		}
	}
	return out
}

func symbolURL(sym *symbols.Symbol) urlpath.Path {
	cat, _ := linker.Category(sym.Kind)
	return urlpath.New(cat).Join(urlpath.New(sym.QualifiedName()...))
}

func displayName(sym *symbols.Symbol) string {
	return strings.Join(sym.QualifiedName(), "::")
}

// headerHTML renders the include line and the view-source link shared by all
// symbol pages.
func headerHTML(b *Builder, sym *symbols.Symbol) string {
	var out strings.Builder
	if header, ok := b.links.HeaderPath(sym); ok {
		out.WriteString(`<pre class="include"><code>#include &lt;` + html.EscapeString(header.String()) + `&gt;</code></pre>`)
	}
	if src, ok := b.links.SourceURL(sym); ok {
		out.WriteString(`<p class="source-link"><a href="` + html.EscapeString(src) + `">View source</a></p>`)
	}
	return out.String()
}

// namespaceEntry is both a page and a container for its nested entries.
type namespaceEntry struct {
	sym      *symbols.Symbol
	children []Entry
}

func (e *namespaceEntry) Name() string      { return e.sym.Name }
func (e *namespaceEntry) URL() urlpath.Path { return symbolURL(e.sym) }

func (e *namespaceEntry) Nav() *NavItem {
	dir := Dir(e.sym.Name, false, Link("Overview", e.URL()))
	for _, c := range e.children {
		dir.Add(c.Nav())
	}
	return dir
}

func (e *namespaceEntry) Build(b *Builder) []Task {
	tasks := []Task{b.pageTask("namespace", e)}
	for _, c := range e.children {
		tasks = append(tasks, c.Build(b)...)
	}
	return tasks
}

func (e *namespaceEntry) Title(b *Builder) string {
	return fmt.Sprintf("%s namespace - %s", displayName(e.sym), b.cfg.Project.Name)
}

func (e *namespaceEntry) Description(b *Builder) string {
	return fmt.Sprintf("Documentation for the %s namespace in %s", displayName(e.sym), b.cfg.Project.Name)
}

func (e *namespaceEntry) Content(b *Builder) (string, error) {
	var out strings.Builder
	out.WriteString(`<h1><span class="keyword">namespace</span> ` + html.EscapeString(displayName(e.sym)) + `</h1>`)

	doc, err := b.docHTML(e.sym)
	if err != nil {
		return "", err
	}
	out.WriteString(doc)

	var classes, structs, funcs []string
	for _, c := range e.children {
		link := `<p><a href="` + html.EscapeString(b.base.Join(c.URL()).Href()) + `">` + html.EscapeString(c.Name()) + `</a></p>`
		switch c := c.(type) {
		case *classEntry:
			if c.sym.Kind == symbols.KindStruct {
				structs = append(structs, link)
			} else {
				classes = append(classes, link)
			}
		case *functionEntry:
			funcs = append(funcs, link)
		}
	}
	out.WriteString(section("Classes", classes))
	out.WriteString(section("Structs", structs))
	out.WriteString(section("Functions", funcs))
	return out.String(), nil
}

// classEntry covers both classes and structs.
type classEntry struct {
	sym *symbols.Symbol
}

func (e *classEntry) Name() string      { return e.sym.Name }
func (e *classEntry) URL() urlpath.Path { return symbolURL(e.sym) }

func (e *classEntry) Nav() *NavItem {
	var subs []SubItem
	for _, m := range e.sym.Children {
		if m.Kind != symbols.KindMethod {
			continue
		}
		if anchor, ok := memberAnchor(m); ok {
			subs = append(subs, SubItem{Title: m.Name, Anchor: anchor})
		}
	}
	return Link(e.sym.Name, e.URL(), subs...)
}

func (e *classEntry) Build(b *Builder) []Task {
	return []Task{b.pageTask(e.category(), e)}
}

func (e *classEntry) category() string {
	cat, _ := linker.Category(e.sym.Kind)
	return cat
}

func (e *classEntry) Title(b *Builder) string {
	return fmt.Sprintf("%s %s - %s", displayName(e.sym), e.category(), b.cfg.Project.Name)
}

func (e *classEntry) Description(b *Builder) string {
	return fmt.Sprintf("Documentation for the %s %s in %s", displayName(e.sym), e.category(), b.cfg.Project.Name)
}

func (e *classEntry) Content(b *Builder) (string, error) {
	var out strings.Builder
	out.WriteString(`<h1><span class="keyword">` + e.category() + `</span> ` + html.EscapeString(displayName(e.sym)) + `</h1>`)
	out.WriteString(headerHTML(b, e.sym))

	doc, err := b.docHTML(e.sym)
	if err != nil {
		return "", err
	}
	out.WriteString(doc)

	isStatic, isMember := true, false
	for _, group := range []struct {
		title string
		kind  symbols.Kind
		vis   symbols.Visibility
		stat  *bool
	}{
		{"Public static methods", symbols.KindMethod, symbols.Public, &isStatic},
		{"Public member methods", symbols.KindMethod, symbols.Public, &isMember},
		{"Protected member methods", symbols.KindMethod, symbols.Protected, &isMember},
		{"Fields", symbols.KindField, symbols.Public, nil},
	} {
		members := e.sym.Members(group.kind, group.vis, group.stat)
		rendered := make([]string, 0, len(members))
		for _, m := range members {
			h, err := b.memberHTML(m)
			if err != nil {
				return "", err
			}
			rendered = append(rendered, h)
		}
		out.WriteString(section(group.title, rendered))
	}
	return out.String(), nil
}

// functionEntry is a free function page.
type functionEntry struct {
	sym *symbols.Symbol
}

func (e *functionEntry) Name() string      { return e.sym.Name }
func (e *functionEntry) URL() urlpath.Path { return symbolURL(e.sym) }

func (e *functionEntry) Nav() *NavItem { return Link(e.sym.Name, e.URL()) }

func (e *functionEntry) Build(b *Builder) []Task {
	return []Task{b.pageTask("function", e)}
}

func (e *functionEntry) Title(b *Builder) string {
	return fmt.Sprintf("%s function - %s", displayName(e.sym), b.cfg.Project.Name)
}

func (e *functionEntry) Description(b *Builder) string {
	return fmt.Sprintf("Documentation for the %s function in %s", displayName(e.sym), b.cfg.Project.Name)
}

func (e *functionEntry) Content(b *Builder) (string, error) {
	var out strings.Builder
	out.WriteString(`<h1><span class="keyword">function</span> ` + html.EscapeString(displayName(e.sym)) + `</h1>`)
	out.WriteString(headerHTML(b, e.sym))
	out.WriteString(b.signatureHTML(e.sym))

	doc, err := b.docHTML(e.sym)
	if err != nil {
		return "", err
	}
	out.WriteString(doc)
	return out.String(), nil
}

// memberAnchor returns the in-page anchor for a member, matching the
// ids given to member declarations.
func memberAnchor(sym *symbols.Symbol) (string, bool) {
	if sym.Name == "" {
		return "", false
	}
	return "#" + strings.ToLower(sym.Name), true
}
