// Package commands holds the cppdoc CLI subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/entity"
	"git.home.luguber.info/inful/cppdoc/internal/git"
	"git.home.luguber.info/inful/cppdoc/internal/logfields"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
)

// Global holds state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition with global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"cppdoc.yml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build the documentation site from the AST dump and tutorial sources"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
	Serve ServeCmd `cmd:"" help:"Serve the site locally and rebuild on changes"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadProject loads the configuration and the symbol graph it points at.
func loadProject(configPath string) (*config.Config, *symbols.Graph, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	detectRepository(cfg)

	entities, err := entity.LoadDump(cfg.DumpPath())
	if err != nil {
		return nil, nil, err
	}
	return cfg, symbols.Build(entities), nil
}

// detectRepository fills empty repository settings from the local git
// checkout. Detection failures are expected outside a checkout and only
// logged.
func detectRepository(cfg *config.Config) {
	if cfg.Project.Repository != "" && cfg.Project.SourceTree != "" {
		return
	}
	info, err := git.Detect(cfg.InputDir)
	if err != nil {
		slog.Debug("No repository detected", logfields.Error(err))
		return
	}
	if cfg.Project.Repository == "" {
		cfg.Project.Repository = info.RepositoryURL
	}
	if cfg.Project.SourceTree == "" {
		cfg.Project.SourceTree = info.SourceTreeURL
	}
}
