// Package linker derives stable URLs and header include paths for symbols,
// and resolves cross-references between pages.
package linker

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// stdNamespace is reserved: symbols under it never get an internal page and
// link out to the external reference site instead.
const stdNamespace = "std"

const cppreferenceHost = "en.cppreference.com"

// Linker is constructed once per run from the immutable configuration and is
// safe for concurrent use.
type Linker struct {
	base       urlpath.Path
	sources    []*config.SourceConfig
	sourceTree string
}

// New builds a Linker from the loaded configuration.
func New(cfg *config.Config) *Linker {
	return &Linker{
		base:       cfg.Output.BasePath(),
		sources:    cfg.Sources,
		sourceTree: cfg.Project.SourceTree,
	}
}

// Category returns the URL prefix for a symbol kind. Member kinds have no
// page of their own and report false.
func Category(kind symbols.Kind) (string, bool) {
	switch kind {
	case symbols.KindNamespace:
		return "namespace", true
	case symbols.KindClass:
		return "class", true
	case symbols.KindStruct:
		return "struct", true
	case symbols.KindFunction:
		return "function", true
	default:
		return "", false
	}
}

// RelURL returns the category-prefixed site-relative URL for a symbol,
// e.g. "class/geo/Point".
func (l *Linker) RelURL(sym *symbols.Symbol) (urlpath.Path, bool) {
	cat, ok := Category(sym.Kind)
	if !ok {
		return urlpath.Path{}, false
	}
	return urlpath.New(cat).Join(urlpath.New(sym.QualifiedName()...)), true
}

// AbsURL returns the full URL for a symbol, valid for links anywhere in the
// site. Standard library symbols redirect to the external reference site.
func (l *Linker) AbsURL(sym *symbols.Symbol) (urlpath.Path, bool) {
	if qn := sym.QualifiedName(); len(qn) > 0 && qn[0] == stdNamespace {
		return l.stdURL(sym)
	}
	rel, ok := l.RelURL(sym)
	if !ok {
		return urlpath.Path{}, false
	}
	return l.base.Join(rel), true
}

// stdURL maps a std symbol to its cppreference page, derived from the header
// the symbol is declared in.
func (l *Linker) stdURL(sym *symbols.Symbol) (urlpath.Path, bool) {
	if sym.Location == nil || sym.Name == "" {
		return urlpath.Path{}, false
	}
	header := path.Base(sym.Location.File)
	header = strings.TrimSuffix(header, path.Ext(header))
	return urlpath.External("https", cppreferenceHost, "w", "cpp", header, sym.Name), true
}

// source returns the configured source root containing the symbol's
// defining file.
func (l *Linker) source(sym *symbols.Symbol) (*config.SourceConfig, urlpath.Path, bool) {
	if sym.Location == nil {
		return nil, urlpath.Path{}, false
	}
	file := urlpath.FromFilepath(sym.Location.File)
	for _, src := range l.sources {
		if file.HasPrefix(src.DirPath()) {
			return src, file, true
		}
	}
	return nil, urlpath.Path{}, false
}

// HeaderPath maps a symbol's defining file to its logical installable header
// path, used for "#include <...>" display. Reports false when the file
// belongs to no configured source root.
func (l *Linker) HeaderPath(sym *symbols.Symbol) (urlpath.Path, bool) {
	src, file, ok := l.source(sym)
	if !ok {
		return urlpath.Path{}, false
	}
	return file.StripPrefix(src.StripPrefixPath()), true
}

// SourceURL returns the external "view source" URL for a symbol's defining
// file, built from the configured source tree template.
func (l *Linker) SourceURL(sym *symbols.Symbol) (string, bool) {
	if l.sourceTree == "" {
		return "", false
	}
	_, file, ok := l.source(sym)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(l.sourceTree, "/") + "/" + file.Encoded(), true
}

// MemberURL returns the page-plus-anchor link for a method or field: the
// parent's page with the member name as fragment.
func (l *Linker) MemberURL(sym *symbols.Symbol) (string, bool) {
	if sym.Kind != symbols.KindMethod && sym.Kind != symbols.KindField {
		return "", false
	}
	parent, ok := l.AbsURL(sym.Parent)
	if !ok {
		return "", false
	}
	return parent.Href() + "#" + strings.ToLower(sym.Name), true
}
