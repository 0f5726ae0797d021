package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cppdoc/internal/entity"
)

func tu(children ...*entity.Entity) *entity.Entity {
	return &entity.Entity{Kind: entity.KindTranslationUnit, Children: children}
}

func ns(name string, children ...*entity.Entity) *entity.Entity {
	return &entity.Entity{Kind: entity.KindNamespace, Name: name, Children: children}
}

func class(name string, children ...*entity.Entity) *entity.Entity {
	return &entity.Entity{Kind: entity.KindClass, Name: name, Definition: true, Children: children}
}

func fn(name string) *entity.Entity {
	return &entity.Entity{Kind: entity.KindFunction, Name: name}
}

func TestBuild_NamespaceMergeAcrossTranslationUnits(t *testing.T) {
	g := Build([]*entity.Entity{
		tu(ns("geo", class("Point"))),
		tu(ns("geo", class("Line"))),
	})

	require.Len(t, g.Root.Children, 1)
	geo := g.Root.Children[0]
	require.Equal(t, KindNamespace, geo.Kind)
	require.Equal(t, "geo", geo.Name)

	names := make([]string, 0, len(geo.Children))
	for _, c := range geo.Children {
		names = append(names, c.Name)
	}
	require.ElementsMatch(t, []string{"Point", "Line"}, names)
}

func TestBuild_FirstDefinitionWins(t *testing.T) {
	first := class("Point", &entity.Entity{Kind: entity.KindField, Name: "x", Access: entity.AccessPublic})
	second := class("Point", &entity.Entity{Kind: entity.KindField, Name: "y", Access: entity.AccessPublic})

	g := Build([]*entity.Entity{tu(first), tu(second)})

	require.Len(t, g.Root.Children, 1)
	point := g.Root.Children[0]
	require.Len(t, point.Children, 1)
	require.Equal(t, "x", point.Children[0].Name)
}

func TestBuild_SkipsForwardDeclarations(t *testing.T) {
	fwd := &entity.Entity{Kind: entity.KindClass, Name: "Point", Definition: false}
	g := Build([]*entity.Entity{tu(fwd)})
	require.Empty(t, g.Root.Children)
}

func TestBuild_SkipsSystemHeadersAndUnnamed(t *testing.T) {
	g := Build([]*entity.Entity{tu(
		&entity.Entity{Kind: entity.KindClass, Name: "Hidden", Definition: true, SystemHeader: true},
		&entity.Entity{Kind: entity.KindNamespace, Name: ""},
		fn("visible"),
	)})
	require.Len(t, g.Root.Children, 1)
	require.Equal(t, "visible", g.Root.Children[0].Name)
}

func TestQualifiedName(t *testing.T) {
	g := Build([]*entity.Entity{tu(ns("geo", ns("detail", class("Impl"))))})
	impl := g.Root.Children[0].Children[0].Children[0]
	require.Equal(t, []string{"geo", "detail", "Impl"}, impl.QualifiedName())
}

func TestSelect_FlattenedFilteredView(t *testing.T) {
	g := Build([]*entity.Entity{tu(
		ns("geo",
			&entity.Entity{Kind: entity.KindFunction, Name: "here", Location: &entity.Location{File: "a.hpp"}},
			&entity.Entity{Kind: entity.KindFunction, Name: "there", Location: &entity.Location{File: "b.hpp"}},
		),
	)})

	got := g.Select(func(s *Symbol) bool {
		return s.Kind == KindFunction && s.Location != nil && s.Location.File == "a.hpp"
	})
	require.Len(t, got, 1)
	require.Equal(t, "here", got[0].Name)
}

func TestMembers(t *testing.T) {
	cls := class("Point",
		&entity.Entity{Kind: entity.KindMethod, Name: "norm", Access: entity.AccessPublic},
		&entity.Entity{Kind: entity.KindMethod, Name: "make", Access: entity.AccessPublic, Static: true},
		&entity.Entity{Kind: entity.KindMethod, Name: "detail", Access: entity.AccessProtected},
		&entity.Entity{Kind: entity.KindField, Name: "x", Access: entity.AccessPublic},
	)
	g := Build([]*entity.Entity{tu(cls)})
	point := g.Root.Children[0]

	isStatic := true
	notStatic := false
	require.Len(t, point.Members(KindMethod, Public, &notStatic), 1)
	require.Len(t, point.Members(KindMethod, Public, &isStatic), 1)
	require.Len(t, point.Members(KindMethod, Protected, nil), 1)
	require.Len(t, point.Members(KindField, Public, nil), 1)
}

func TestWalk_DepthFirstOrder(t *testing.T) {
	g := Build([]*entity.Entity{tu(
		ns("a", class("First"), class("Second")),
		class("Third"),
	)})

	var order []string
	g.Root.Walk(func(s *Symbol) { order = append(order, s.Name) })
	require.Equal(t, []string{"a", "First", "Second", "Third"}, order)
}
