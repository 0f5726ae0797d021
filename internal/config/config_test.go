package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cppdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Minimal(t *testing.T) {
	path := writeConfig(t, `
project:
  name: geo
sources:
  - dir: include
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "geo", cfg.Project.Name)
	require.Equal(t, "0.0.0", cfg.Project.Version)
	require.Equal(t, "ast.json", cfg.AST.Dump)
	require.Equal(t, "site", cfg.Output.Dir)
	require.Len(t, cfg.Sources, 1)
	require.Equal(t, "include", cfg.Sources[0].Name)
	require.NotEmpty(t, cfg.Sources[0].Include)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
project:
  name: geo
  version: 1.2.0
  repository: https://github.com/example/geo
  source_tree: https://github.com/example/geo/blob/main/
ast:
  dump: build/ast.json
sources:
  - name: public headers
    dir: include
    include: ["*.hpp"]
    exclude: ["detail/*"]
    strip_prefix: include
tutorials:
  dir: docs
output:
  dir: out
  base_url: /docs/v1
verify:
  links: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "1.2.0", cfg.Project.Version)
	require.Equal(t, "include", cfg.Sources[0].StripPrefix)
	require.Equal(t, "docs/v1", cfg.Output.BasePath().String())
	require.True(t, cfg.Verify.Links)
	require.Equal(t, 8, cfg.Verify.MaxConcurrent)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("CPPDOC_TEST_PROJECT", "expanded")
	path := writeConfig(t, `
project:
  name: ${CPPDOC_TEST_PROJECT}
sources:
  - dir: include
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "expanded", cfg.Project.Name)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing project name", "sources:\n  - dir: include\n"},
		{"no sources", "project:\n  name: geo\n"},
		{"absolute source dir", "project:\n  name: geo\nsources:\n  - dir: /abs\n"},
		{"duplicate source names", "project:\n  name: geo\nsources:\n  - dir: a\n    name: x\n  - dir: b\n    name: x\n"},
		{"tutorials without dir", "project:\n  name: geo\nsources:\n  - dir: include\ntutorials: {}\n"},
		{"base url with scheme", "project:\n  name: geo\nsources:\n  - dir: include\noutput:\n  base_url: https://example.org/docs\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "project: [unclosed"))
	require.Error(t, err)
}

func TestConfig_InputDir(t *testing.T) {
	path := writeConfig(t, "project:\n  name: geo\nsources:\n  - dir: include\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Dir(path), cfg.InputDir)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cppdoc.yml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "My Library", cfg.Project.Name)
	require.Len(t, cfg.Sources, 1)

	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
