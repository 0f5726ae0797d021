// Package symbols builds the canonical symbol graph from the external AST.
// The graph is constructed once per run and then shared read-only by every
// concurrent consumer.
package symbols

import (
	"log/slog"

	"git.home.luguber.info/inful/cppdoc/internal/entity"
)

// Kind is the documented category of a symbol.
type Kind int

const (
	KindNamespace Kind = iota
	KindClass
	KindStruct
	KindFunction
	KindMethod
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	default:
		return "symbol"
	}
}

// Visibility is the member access level carried over from the AST.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

// Symbol is one documented C++ construct. A symbol is exclusively owned by
// its parent; the graph root is owned by the run.
type Symbol struct {
	Kind       Kind
	Name       string
	Parent     *Symbol
	Location   *entity.Location
	Comment    string
	Visibility Visibility

	// Signature details mirrored from the AST for callable and field kinds.
	Result      *entity.TypeRef
	Params      []entity.Param
	Type        *entity.TypeRef
	Static      bool
	Virtual     bool
	PureVirtual bool
	Const       bool

	Children []*Symbol
}

// QualifiedName returns the name components from the outermost scope to this
// symbol. The root contributes nothing.
func (s *Symbol) QualifiedName() []string {
	if s == nil || s.Parent == nil {
		return nil
	}
	return append(s.Parent.QualifiedName(), s.Name)
}

// Walk visits s and its descendants depth-first in child order.
func (s *Symbol) Walk(visit func(*Symbol)) {
	if s == nil {
		return
	}
	if s.Parent != nil {
		visit(s)
	}
	for _, child := range s.Children {
		child.Walk(visit)
	}
}

// child returns the direct child with the given name and kind, if any.
func (s *Symbol) child(name string, kind Kind) *Symbol {
	for _, c := range s.Children {
		if c.Kind == kind && c.Name == name {
			return c
		}
	}
	return nil
}

// hasChild reports whether any direct child carries the given name.
func (s *Symbol) hasChild(name string) bool {
	for _, c := range s.Children {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Graph is the rooted symbol tree. Immutable once built.
type Graph struct {
	Root *Symbol
}

// Build converts translation-unit entity trees into one canonical graph.
// Entities in system headers or without a name are skipped. Namespaces with
// the same name at the same depth merge into a single node; class and struct
// re-declarations keep the first full definition encountered and silently
// drop the rest. Build has no error outcomes: anything unusable degrades to
// being absent from the graph.
func Build(roots []*entity.Entity) *Graph {
	g := &Graph{Root: &Symbol{Kind: KindNamespace}}
	for _, root := range roots {
		addChildren(g.Root, root)
	}
	return g
}

func addChildren(parent *Symbol, e *entity.Entity) {
	for _, child := range e.Children {
		if child.SystemHeader || child.Name == "" {
			continue
		}
		switch child.Kind {
		case entity.KindNamespace:
			ns := parent.child(child.Name, KindNamespace)
			if ns == nil {
				ns = newSymbol(parent, KindNamespace, child)
				parent.Children = append(parent.Children, ns)
			}
			// Union the children into the merged node.
			addChildren(ns, child)

		case entity.KindClass, entity.KindStruct:
			if !child.Definition {
				continue
			}
			if parent.hasChild(child.Name) {
				// First definition wins; later duplicates across translation
				// units are dropped (known ambiguity).
				slog.Debug("Dropping duplicate definition", "name", child.Name)
				continue
			}
			kind := KindClass
			if child.Kind == entity.KindStruct {
				kind = KindStruct
			}
			sym := newSymbol(parent, kind, child)
			parent.Children = append(parent.Children, sym)
			addMembers(sym, child)
			addChildren(sym, child)

		case entity.KindFunction:
			if parent.hasChild(child.Name) {
				continue
			}
			parent.Children = append(parent.Children, newSymbol(parent, KindFunction, child))
		}
	}
}

// addMembers attaches method and field children of a class-like entity.
func addMembers(parent *Symbol, e *entity.Entity) {
	for _, child := range e.Children {
		if child.Name == "" {
			continue
		}
		switch child.Kind {
		case entity.KindMethod:
			parent.Children = append(parent.Children, newSymbol(parent, KindMethod, child))
		case entity.KindField:
			parent.Children = append(parent.Children, newSymbol(parent, KindField, child))
		}
	}
}

func newSymbol(parent *Symbol, kind Kind, e *entity.Entity) *Symbol {
	return &Symbol{
		Kind:        kind,
		Name:        e.Name,
		Parent:      parent,
		Location:    e.Location,
		Comment:     e.Comment,
		Visibility:  visibility(e.Access),
		Result:      e.Result,
		Params:      e.Params,
		Type:        e.Type,
		Static:      e.Static,
		Virtual:     e.Virtual,
		PureVirtual: e.PureVirtual,
		Const:       e.Const,
	}
}

func visibility(a entity.Access) Visibility {
	switch a {
	case entity.AccessProtected:
		return Protected
	case entity.AccessPrivate:
		return Private
	default:
		return Public
	}
}

// Select returns a flattened, filtered view of the graph in depth-first
// order. Used by file listing pages ("all functions defined in file X").
func (g *Graph) Select(pred func(*Symbol) bool) []*Symbol {
	var out []*Symbol
	g.Root.Walk(func(s *Symbol) {
		if pred(s) {
			out = append(out, s)
		}
	})
	return out
}

// Members returns the direct children of s matching kind, visibility and
// staticness. Pass wantStatic nil to accept both.
func (s *Symbol) Members(kind Kind, vis Visibility, wantStatic *bool) []*Symbol {
	var out []*Symbol
	for _, c := range s.Children {
		if c.Kind != kind || c.Visibility != vis {
			continue
		}
		if wantStatic != nil && c.Static != *wantStatic {
			continue
		}
		out = append(out, c)
	}
	return out
}
