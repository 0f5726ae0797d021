package site

import (
	"fmt"
	"html"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

const filesPrefix = "files"

// fileEntry is the listing page for one documented source file: every
// class, struct and function the graph places in that file.
type fileEntry struct {
	src *config.SourceConfig
	// rel is the path below the source root.
	rel urlpath.Path
}

func (e *fileEntry) Name() string { return e.rel.FileName() }

func (e *fileEntry) URL() urlpath.Path {
	return urlpath.New(filesPrefix, e.src.Name).Join(e.rel)
}

func (e *fileEntry) Nav() *NavItem { return Link(e.Name(), e.URL()) }

func (e *fileEntry) Build(b *Builder) []Task {
	return []Task{b.pageTask("file", e)}
}

func (e *fileEntry) Title(b *Builder) string {
	return fmt.Sprintf("%s - %s", e.Name(), b.cfg.Project.Name)
}

func (e *fileEntry) Description(b *Builder) string {
	return fmt.Sprintf("Documentation for %s in %s", e.rel, b.cfg.Project.Name)
}

// fullPath is the file's path including the source root directory, as symbol
// locations report it.
func (e *fileEntry) fullPath() urlpath.Path {
	return e.src.DirPath().Join(e.rel)
}

func (e *fileEntry) Content(b *Builder) (string, error) {
	var out strings.Builder
	out.WriteString(`<h1>` + html.EscapeString(e.Name()) + `</h1>`)
	out.WriteString(`<p class="path"><code>` + html.EscapeString(e.fullPath().String()) + `</code></p>`)
	if tree := b.cfg.Project.SourceTree; tree != "" {
		href := strings.TrimSuffix(tree, "/") + "/" + e.fullPath().Encoded()
		out.WriteString(`<p class="source-link"><a href="` + html.EscapeString(href) + `">View source</a></p>`)
	}

	inFile := func(sym *symbols.Symbol) bool {
		return sym.Location != nil && urlpath.FromFilepath(sym.Location.File).Equal(e.fullPath())
	}

	for _, group := range []struct {
		title string
		kind  symbols.Kind
	}{
		{"Classes", symbols.KindClass},
		{"Structs", symbols.KindStruct},
		{"Functions", symbols.KindFunction},
	} {
		matches := b.graph.Select(func(sym *symbols.Symbol) bool {
			return sym.Kind == group.kind && inFile(sym)
		})
		items := make([]string, 0, len(matches))
		for _, sym := range matches {
			href := "#"
			if url, ok := b.links.AbsURL(sym); ok {
				href = url.Href()
			}
			items = append(items, `<p><a href="`+html.EscapeString(href)+`">`+html.EscapeString(displayName(sym))+`</a></p>`)
		}
		out.WriteString(section(group.title, items))
	}
	return out.String(), nil
}

// dirEntry groups files below one directory of a source root. It has no page
// of its own.
type dirEntry struct {
	src  *config.SourceConfig
	rel  urlpath.Path
	dirs map[string]*dirEntry
	file map[string]*fileEntry
}

func newDirEntry(src *config.SourceConfig, rel urlpath.Path) *dirEntry {
	return &dirEntry{
		src:  src,
		rel:  rel,
		dirs: map[string]*dirEntry{},
		file: map[string]*fileEntry{},
	}
}

func (e *dirEntry) Name() string { return e.rel.FileName() }

func (e *dirEntry) URL() urlpath.Path {
	return urlpath.New(filesPrefix, e.src.Name).Join(e.rel)
}

func (e *dirEntry) Nav() *NavItem {
	dir := Dir(e.Name(), false)
	for _, c := range e.sorted() {
		dir.Add(c.Nav())
	}
	return dir
}

func (e *dirEntry) Build(b *Builder) []Task {
	var tasks []Task
	for _, c := range e.sorted() {
		tasks = append(tasks, c.Build(b)...)
	}
	return tasks
}

// sorted returns subdirectories then files, each in name order.
func (e *dirEntry) sorted() []Entry {
	out := make([]Entry, 0, len(e.dirs)+len(e.file))
	for _, name := range sortedKeys(e.dirs) {
		out = append(out, e.dirs[name])
	}
	for _, name := range sortedKeys(e.file) {
		out = append(out, e.file[name])
	}
	return out
}

// descend finds or creates the directory node for rel's parent chain.
func (e *dirEntry) descend(parent urlpath.Path) *dirEntry {
	target := e
	for _, seg := range parent.Segments() {
		next, ok := target.dirs[seg]
		if !ok {
			next = newDirEntry(e.src, target.rel.Append(seg))
			target.dirs[seg] = next
		}
		target = next
	}
	return target
}

// fileRoot is the nav section for one configured source root.
type fileRoot struct {
	src *config.SourceConfig
	dir *dirEntry
}

func (e *fileRoot) Name() string      { return e.src.Name }
func (e *fileRoot) URL() urlpath.Path { return urlpath.Path{} }

func (e *fileRoot) Nav() *NavItem {
	root := RootNav(e.src.Name)
	for _, c := range e.dir.sorted() {
		root.Add(c.Nav())
	}
	return root
}

func (e *fileRoot) Build(b *Builder) []Task { return e.dir.Build(b) }

// fileRoots walks every configured source root and collects the files
// matching its include globs and not matching its exclude globs. Globs are
// matched against the slash path relative to the root directory.
func fileRoots(cfg *config.Config) ([]*fileRoot, error) {
	var roots []*fileRoot
	for _, src := range cfg.Sources {
		root := &fileRoot{src: src, dir: newDirEntry(src, urlpath.Path{})}
		base := filepath.Join(cfg.InputDir, src.Dir)

		err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(base, p)
			if err != nil {
				return err
			}
			relSlash := filepath.ToSlash(rel)
			if !matchesAny(src.Include, relSlash) || matchesAny(src.Exclude, relSlash) {
				return nil
			}
			url := urlpath.Parse(relSlash)
			dir := root.dir.descend(parentOf(url))
			dir.file[url.FileName()] = &fileEntry{src: src, rel: url}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan source %s: %w", src.Name, err)
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// matchesAny reports whether any glob matches the path. Patterns match
// against the full relative path and against its base name, so "*.hpp"
// covers files in subdirectories too.
func matchesAny(globs []string, p string) bool {
	for _, g := range globs {
		if ok, _ := path.Match(g, p); ok {
			return true
		}
		if ok, _ := path.Match(g, path.Base(p)); ok {
			return true
		}
	}
	return false
}

func parentOf(p urlpath.Path) urlpath.Path {
	segs := p.Segments()
	if len(segs) == 0 {
		return urlpath.Path{}
	}
	return urlpath.New(segs[:len(segs)-1]...)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
