package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/entity"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "include"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "include", "widget.hpp"), []byte("// header\n"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "include", "notes.txt"), []byte("not code\n"), 0o640))

	return &config.Config{
		Project: config.ProjectConfig{Name: "demo", Version: "1.2.3"},
		Sources: []*config.SourceConfig{{
			Name:    "api",
			Dir:     "include",
			Include: []string{"*.hpp"},
		}},
		Output:   config.OutputConfig{Dir: "site"},
		InputDir: dir,
	}
}

func testGraph() *symbols.Graph {
	tu := &entity.Entity{Kind: entity.KindTranslationUnit, Children: []*entity.Entity{
		{Kind: entity.KindNamespace, Name: "demo", Children: []*entity.Entity{
			{
				Kind:       entity.KindClass,
				Name:       "Widget",
				Definition: true,
				Comment:    "A reusable Widget.\n@param none ignored",
				Location:   &entity.Location{File: "include/widget.hpp"},
				Children: []*entity.Entity{
					{
						Kind:    entity.KindMethod,
						Name:    "Render",
						Access:  entity.AccessPublic,
						Comment: "Draws the widget.",
						Result:  &entity.TypeRef{Display: "void"},
					},
					{
						Kind:   entity.KindField,
						Name:   "width",
						Access: entity.AccessPublic,
						Type:   &entity.TypeRef{Display: "int"},
					},
				},
			},
			{
				Kind:     entity.KindFunction,
				Name:     "MakeWidget",
				Comment:  "Creates a Widget.",
				Location: &entity.Location{File: "include/widget.hpp"},
				Result:   &entity.TypeRef{Display: "Widget"},
			},
		}},
	}}
	return symbols.Build([]*entity.Entity{tu})
}

func TestBuildWritesAllPages(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(cfg, testGraph(), Options{})
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background()))

	out := filepath.Join(cfg.InputDir, "site")
	for _, page := range []string{
		"index.html",
		"namespace/demo/index.html",
		"class/demo/Widget/index.html",
		"function/demo/MakeWidget/index.html",
		"files/api/widget.hpp/index.html",
	} {
		_, err := os.Stat(filepath.Join(out, page))
		require.NoError(t, err, page)
	}

	// excluded by the include glob
	_, err = os.Stat(filepath.Join(out, "files/api/notes.txt/index.html"))
	require.True(t, os.IsNotExist(err))

	// page triple
	for _, name := range []string{"content.html", "metadata.json"} {
		_, err := os.Stat(filepath.Join(out, "class/demo/Widget", name))
		require.NoError(t, err, name)
	}

	// default stylesheet landed
	_, err = os.Stat(filepath.Join(out, "main.css"))
	require.NoError(t, err)
}

func TestClassPageContent(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(cfg, testGraph(), Options{})
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(cfg.InputDir, "site", "class/demo/Widget/content.html"))
	require.NoError(t, err)
	content := string(data)

	require.Contains(t, content, "demo::Widget")
	require.Contains(t, content, "#include &lt;include/widget.hpp&gt;")
	require.Contains(t, content, "Public member methods")
	require.Contains(t, content, `id="render"`)
	require.Contains(t, content, "Draws the widget.")
	require.Contains(t, content, "Fields")
}

func TestNavCachedAndSharedAcrossPages(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(cfg, testGraph(), Options{})
	require.NoError(t, err)

	nav := b.Nav()
	require.NotEmpty(t, nav)
	require.Contains(t, nav, `href="/class/demo/Widget"`)

	require.NoError(t, b.Run(context.Background()))
	require.Equal(t, nav, b.Nav())

	for _, page := range []string{"namespace/demo/index.html", "function/demo/MakeWidget/index.html"} {
		data, err := os.ReadFile(filepath.Join(cfg.InputDir, "site", page))
		require.NoError(t, err)
		require.Contains(t, string(data), nav, page)
	}
}

func TestNavIncludesMemberAnchors(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(cfg, testGraph(), Options{})
	require.NoError(t, err)
	require.Contains(t, b.Nav(), `href="/class/demo/Widget#render"`)
}

type failingEntry struct{}

func (failingEntry) Name() string      { return "boom" }
func (failingEntry) URL() urlpath.Path { return urlpath.New("boom") }
func (failingEntry) Nav() *NavItem     { return Link("boom", urlpath.New("boom")) }
func (failingEntry) Build(*Builder) []Task {
	return []Task{func(context.Context) (urlpath.Path, error) {
		return urlpath.New("boom"), errors.New("task failed")
	}}
}

type panickingEntry struct{}

func (panickingEntry) Name() string      { return "panic" }
func (panickingEntry) URL() urlpath.Path { return urlpath.New("panic") }
func (panickingEntry) Nav() *NavItem     { return Link("panic", urlpath.New("panic")) }
func (panickingEntry) Build(*Builder) []Task {
	return []Task{func(context.Context) (urlpath.Path, error) {
		panic("unexpected")
	}}
}

func TestRunFailFastAggregation(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(cfg, testGraph(), Options{})
	require.NoError(t, err)

	b.entries = append(b.entries, failingEntry{})
	err = b.Run(context.Background())
	require.ErrorContains(t, err, "task failed")

	// sibling pages were still drained and written
	_, statErr := os.Stat(filepath.Join(cfg.InputDir, "site", "class/demo/Widget/index.html"))
	require.NoError(t, statErr)
}

func TestRunRecoversCrashedTask(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(cfg, testGraph(), Options{})
	require.NoError(t, err)

	b.entries = append(b.entries, panickingEntry{})
	err = b.Run(context.Background())
	require.ErrorContains(t, err, "page task crashed")
}

func TestProgressCallbackCannotAffectOutcome(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(cfg, testGraph(), Options{
		Progress: func(string) { panic("listener bug") },
	})
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background()))
}

func TestTutorialPages(t *testing.T) {
	cfg := testConfig(t)
	docs := filepath.Join(cfg.InputDir, "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "advanced"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "index.md"),
		[]byte("# Welcome\n\nStart here.\n"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "getting-started.md"),
		[]byte("---\ntitle: Getting Started\n---\n# Getting Started\n\nInstall it.\n"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "advanced", "tuning.md"),
		[]byte("# Tuning\n\nTweak it.\n"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "README.md"),
		[]byte("# Not a tutorial\n"), 0o640))
	cfg.Tutorials = &config.TutorialsConfig{Dir: "docs"}

	b, err := New(cfg, testGraph(), Options{})
	require.NoError(t, err)
	require.NoError(t, b.Run(context.Background()))

	out := filepath.Join(cfg.InputDir, "site")
	for _, page := range []string{
		"tutorials/getting-started/index.html",
		"tutorials/advanced/tuning/index.html",
	} {
		_, err := os.Stat(filepath.Join(out, page))
		require.NoError(t, err, page)
	}

	// README.md is skipped
	_, err = os.Stat(filepath.Join(out, "tutorials", "README"))
	require.True(t, os.IsNotExist(err))

	// root index.md becomes the home page body
	home, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(home), "Start here.")

	// frontmatter title shows up in the nav
	require.Contains(t, b.Nav(), "Getting Started")
}

func TestFileRootsRespectGlobs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sources[0].Exclude = []string{"widget.hpp"}

	roots, err := fileRoots(cfg)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Empty(t, roots[0].dir.file)
	require.Empty(t, roots[0].dir.dirs)
}
