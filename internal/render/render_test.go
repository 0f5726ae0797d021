package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

func pageFragments() map[string]string {
	return map[string]string{
		"title":      "Widget - demo",
		"project":    "demo",
		"version":    "1.2.3",
		"icon":       "",
		"stylesheet": "/main.css",
		"home":       "/",
		"nav":        "<ul><li>Widget</li></ul>",
		"content":    "<h1>Widget</h1>",
	}
}

func TestRenderBuiltinPage(t *testing.T) {
	tpls, err := Load("")
	require.NoError(t, err)

	out, err := tpls.Render(PageTemplate, pageFragments())
	require.NoError(t, err)
	require.Contains(t, string(out), "<title>Widget - demo</title>")
	require.Contains(t, string(out), "<h1>Widget</h1>")
	require.Contains(t, string(out), "<ul><li>Widget</li></ul>")
}

func TestRenderMissingFragmentFails(t *testing.T) {
	tpls, err := Load("")
	require.NoError(t, err)

	frags := pageFragments()
	delete(frags, "nav")
	_, err = tpls.Render(PageTemplate, frags)
	require.Error(t, err)
}

func TestRenderUnknownTemplate(t *testing.T) {
	tpls, err := Load("")
	require.NoError(t, err)

	_, err = tpls.Render("missing.html", nil)
	require.ErrorContains(t, err, "no such template")
}

func TestLoadCustomTemplateDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("custom: {{.title}}"), 0o640))

	tpls, err := Load(dir)
	require.NoError(t, err)

	out, err := tpls.Render(PageTemplate, map[string]string{"title": "X"})
	require.NoError(t, err)
	require.Equal(t, "custom: X", string(out))
}

func TestLoadBadTemplateDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("{{.broken"), 0o640))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestWritePage(t *testing.T) {
	out := t.TempDir()
	url := urlpath.New("classes", "demo::Widget")

	err := WritePage(out, url, Page{
		Title:       "Widget",
		Description: "a widget",
		Content:     []byte("<h1>Widget</h1>"),
		Document:    []byte("<!DOCTYPE html>"),
	})
	require.NoError(t, err)

	dir := filepath.Join(out, "classes", "demo::Widget")
	doc, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<!DOCTYPE html>", string(doc))

	content, err := os.ReadFile(filepath.Join(dir, "content.html"))
	require.NoError(t, err)
	require.Equal(t, "<h1>Widget</h1>", string(content))

	var meta map[string]string
	raw, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &meta))
	require.Equal(t, "Widget", meta["title"])
	require.Equal(t, "a widget", meta["description"])
}

func TestWritePageRejectsExternal(t *testing.T) {
	url := urlpath.Parse("https://example.com/docs")
	require.Error(t, WritePage(t.TempDir(), url, Page{}))
}

func TestWriteBuiltinAssets(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, WriteBuiltinAssets(out))

	css, err := os.ReadFile(filepath.Join(out, "main.css"))
	require.NoError(t, err)
	require.Contains(t, string(css), "nav")
}

func TestCopyAssets(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "fonts"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "fonts", "mono.woff2"), []byte("font"), 0o640))

	out := t.TempDir()
	require.NoError(t, CopyAssets(src, out))

	data, err := os.ReadFile(filepath.Join(out, "fonts", "mono.woff2"))
	require.NoError(t, err)
	require.Equal(t, "font", string(data))
}
