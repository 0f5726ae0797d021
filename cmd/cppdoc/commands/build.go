package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/cppdoc/internal/linkverify"
	"git.home.luguber.info/inful/cppdoc/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Workers int  `short:"j" help:"Number of concurrent page workers (default: number of CPUs)"`
	Quiet   bool `short:"q" help:"Suppress per-page progress output"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, graph, err := loadProject(root.Config)
	if err != nil {
		return err
	}

	opts := site.Options{Workers: b.Workers}
	if !b.Quiet {
		opts.Progress = func(msg string) { fmt.Println(msg) }
	}

	builder, err := site.New(cfg, graph, opts)
	if err != nil {
		return err
	}
	if err := builder.Run(ctx); err != nil {
		return err
	}

	if cfg.Verify.Links {
		outDir := filepath.Join(cfg.InputDir, cfg.Output.Dir)
		v := linkverify.New(outDir, cfg.Output.BasePath(), cfg.Verify.MaxConcurrent)
		broken, err := v.Run(ctx)
		if err != nil {
			return err
		}
		if len(broken) > 0 && !b.Quiet {
			fmt.Fprintf(os.Stderr, "%d broken internal links\n", len(broken))
		}
	}
	return nil
}
