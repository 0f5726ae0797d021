// Package config loads and validates the cppdoc project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Config is the complete project configuration. It is constructed once at
// startup and treated as immutable shared state for the rest of the run.
type Config struct {
	Project   ProjectConfig    `yaml:"project"`
	AST       ASTConfig        `yaml:"ast"`
	Sources   []*SourceConfig  `yaml:"sources"`
	Tutorials *TutorialsConfig `yaml:"tutorials,omitempty"`
	Output    OutputConfig     `yaml:"output"`
	Templates TemplatesConfig  `yaml:"templates,omitempty"`
	Assets    AssetsConfig     `yaml:"assets,omitempty"`
	Verify    VerifyConfig     `yaml:"verify,omitempty"`

	// InputDir is the directory the config file was loaded from; all relative
	// paths resolve against it. Not part of the YAML surface.
	InputDir string `yaml:"-"`
}

// ProjectConfig identifies the documented project.
type ProjectConfig struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	Repository string `yaml:"repository,omitempty"`

	// SourceTree is a URL template for "view source" links, e.g.
	// "https://github.com/org/repo/blob/main/". Auto-detected from the git
	// remote when empty and a repository checkout is present.
	SourceTree string `yaml:"source_tree,omitempty"`

	Icon string `yaml:"icon,omitempty"`
}

// ASTConfig points at the externally produced AST dump.
type ASTConfig struct {
	Dump string `yaml:"dump"`
}

// DumpPath resolves the dump location against the config directory.
func (c *Config) DumpPath() string {
	return filepath.Join(c.InputDir, c.AST.Dump)
}

// SourceConfig is one documented source root.
type SourceConfig struct {
	Name    string   `yaml:"name"`
	Dir     string   `yaml:"dir"`
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`

	// StripPrefix is removed from header display paths, so that
	// "include/geo/point.hpp" can render as "#include <geo/point.hpp>".
	StripPrefix string `yaml:"strip_prefix,omitempty"`
}

// DirPath returns the source root as a URL path.
func (s *SourceConfig) DirPath() urlpath.Path {
	return urlpath.FromFilepath(s.Dir)
}

// StripPrefixPath returns the display prefix as a URL path.
func (s *SourceConfig) StripPrefixPath() urlpath.Path {
	return urlpath.FromFilepath(s.StripPrefix)
}

// TutorialsConfig configures the hand-authored narrative pages.
type TutorialsConfig struct {
	Dir    string   `yaml:"dir"`
	Assets []string `yaml:"assets,omitempty"`
}

// OutputConfig configures the generated site location.
type OutputConfig struct {
	Dir string `yaml:"dir"`

	// BaseURL is the site-absolute prefix every internal link is joined
	// against, e.g. "/docs/v2".
	BaseURL string `yaml:"base_url,omitempty"`
}

// BasePath returns the configured base URL as a path.
func (o OutputConfig) BasePath() urlpath.Path {
	return urlpath.Parse(o.BaseURL)
}

// TemplatesConfig optionally overrides the embedded page templates.
type TemplatesConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// AssetsConfig lists extra files copied verbatim into the output root.
type AssetsConfig struct {
	CSS []string `yaml:"css,omitempty"`
	JS  []string `yaml:"js,omitempty"`
}

// VerifyConfig controls post-build link verification.
type VerifyConfig struct {
	Links         bool `yaml:"links,omitempty"`
	MaxConcurrent int  `yaml:"max_concurrent,omitempty"`
}

// Load reads, expands and validates the configuration file. Any failure here
// is configuration-time fatal: it happens before any build task is scheduled.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// Environment references in the YAML are expanded before parsing so
	// secrets and machine-local paths stay out of the file.
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.InputDir = dirOf(path)
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if os.IsPathSeparator(path[i]) {
			return path[:i]
		}
	}
	return "."
}
