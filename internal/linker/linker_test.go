package linker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/entity"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
)

func testConfig() *config.Config {
	return &config.Config{
		Project: config.ProjectConfig{
			Name:       "geo",
			SourceTree: "https://github.com/example/geo/blob/main/",
		},
		Sources: []*config.SourceConfig{
			{Name: "headers", Dir: "include", StripPrefix: "include"},
		},
		Output: config.OutputConfig{BaseURL: "/docs"},
	}
}

func buildGraph() *symbols.Graph {
	return symbols.Build([]*entity.Entity{{
		Kind: entity.KindTranslationUnit,
		Children: []*entity.Entity{
			{Kind: entity.KindNamespace, Name: "geo", Children: []*entity.Entity{
				{Kind: entity.KindClass, Name: "Point", Definition: true,
					Location: &entity.Location{File: "include/geo/point.hpp"},
					Children: []*entity.Entity{
						{Kind: entity.KindMethod, Name: "Norm", Access: entity.AccessPublic},
					}},
			}},
			{Kind: entity.KindNamespace, Name: "std", Children: []*entity.Entity{
				{Kind: entity.KindClass, Name: "vector", Definition: true,
					Location: &entity.Location{File: "/usr/include/c++/vector"}},
			}},
			{Kind: entity.KindFunction, Name: "midpoint",
				Location: &entity.Location{File: "src/free.cpp"}},
		},
	}})
}

func find(g *symbols.Graph, name string) *symbols.Symbol {
	matches := g.Select(func(s *symbols.Symbol) bool { return s.Name == name })
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func TestRelURL_CategoryPrefixed(t *testing.T) {
	l := New(testConfig())
	g := buildGraph()

	rel, ok := l.RelURL(find(g, "Point"))
	require.True(t, ok)
	require.Equal(t, "class/geo/Point", rel.String())

	rel, ok = l.RelURL(find(g, "geo"))
	require.True(t, ok)
	require.Equal(t, "namespace/geo", rel.String())

	rel, ok = l.RelURL(find(g, "midpoint"))
	require.True(t, ok)
	require.Equal(t, "function/midpoint", rel.String())
}

func TestRelURL_MembersHaveNoPage(t *testing.T) {
	l := New(testConfig())
	_, ok := l.RelURL(find(buildGraph(), "Norm"))
	require.False(t, ok)
}

func TestAbsURL_JoinsBase(t *testing.T) {
	l := New(testConfig())
	abs, ok := l.AbsURL(find(buildGraph(), "Point"))
	require.True(t, ok)
	require.Equal(t, "docs/class/geo/Point", abs.String())
	require.Equal(t, "/docs/class/geo/Point", abs.Href())
}

func TestAbsURL_StdRedirectsToCppreference(t *testing.T) {
	l := New(testConfig())
	abs, ok := l.AbsURL(find(buildGraph(), "vector"))
	require.True(t, ok)
	require.True(t, abs.IsExternal())
	require.Equal(t, "https://en.cppreference.com/w/cpp/vector/vector", abs.String())
}

func TestHeaderPath_StripsConfiguredPrefix(t *testing.T) {
	l := New(testConfig())
	hp, ok := l.HeaderPath(find(buildGraph(), "Point"))
	require.True(t, ok)
	require.Equal(t, "geo/point.hpp", hp.String())
}

func TestHeaderPath_UnconfiguredRoot(t *testing.T) {
	l := New(testConfig())
	// midpoint lives under src/, which is no configured source root.
	_, ok := l.HeaderPath(find(buildGraph(), "midpoint"))
	require.False(t, ok)
}

func TestSourceURL(t *testing.T) {
	l := New(testConfig())
	url, ok := l.SourceURL(find(buildGraph(), "Point"))
	require.True(t, ok)
	require.Equal(t, "https://github.com/example/geo/blob/main/include/geo/point.hpp", url)
}

func TestSourceURL_NoTreeConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Project.SourceTree = ""
	_, ok := New(cfg).SourceURL(find(buildGraph(), "Point"))
	require.False(t, ok)
}

func TestMemberURL(t *testing.T) {
	l := New(testConfig())
	url, ok := l.MemberURL(find(buildGraph(), "Norm"))
	require.True(t, ok)
	require.Equal(t, "/docs/class/geo/Point#norm", url)
}
