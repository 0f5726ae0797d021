package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/cppdoc/internal/metrics"
	"git.home.luguber.info/inful/cppdoc/internal/server"
	"git.home.luguber.info/inful/cppdoc/internal/site"
)

// ServeCmd implements the 'serve' command: a local preview that rebuilds
// the site when tutorial sources, templates or the AST dump change.
type ServeCmd struct {
	Addr    string `short:"a" default:":8080" help:"Listen address"`
	Metrics bool   `help:"Expose build metrics on /metrics"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := server.Options{Addr: s.Addr}
	var rec metrics.Recorder
	if s.Metrics {
		reg := prometheus.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		opts.Registry = reg
	}

	rebuild := func(ctx context.Context) error {
		cfg, graph, err := loadProject(root.Config)
		if err != nil {
			return err
		}
		builder, err := site.New(cfg, graph, site.Options{Metrics: rec})
		if err != nil {
			return err
		}
		return builder.Run(ctx)
	}

	if err := rebuild(ctx); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	cfg, _, err := loadProject(root.Config)
	if err != nil {
		return err
	}
	outDir := filepath.Join(cfg.InputDir, cfg.Output.Dir)

	watch := []string{cfg.DumpPath()}
	if cfg.Tutorials != nil {
		watch = append(watch, filepath.Join(cfg.InputDir, cfg.Tutorials.Dir))
	}
	if cfg.Templates.Dir != "" {
		watch = append(watch, filepath.Join(cfg.InputDir, cfg.Templates.Dir))
	}

	return server.New(outDir, watch, rebuild, opts).Run(ctx)
}
