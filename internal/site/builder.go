package site

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/entity"
	"git.home.luguber.info/inful/cppdoc/internal/linker"
	"git.home.luguber.info/inful/cppdoc/internal/logfields"
	"git.home.luguber.info/inful/cppdoc/internal/metrics"
	"git.home.luguber.info/inful/cppdoc/internal/render"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Options tune one build run. The zero value is usable.
type Options struct {
	// Progress is invoked with a human readable message as each page task
	// completes. Its absence or failure never affects the build outcome.
	Progress func(msg string)

	// Metrics receives page and build observations. Defaults to a noop.
	Metrics metrics.Recorder

	// Workers bounds the number of concurrently running page tasks.
	// Defaults to the number of CPUs.
	Workers int
}

// Builder holds the immutable state shared by every page task of one run:
// configuration, symbol graph, linker, templates and the nav cache. The nav
// cache is written once during construction, before any concurrent reader
// exists, and never written again.
type Builder struct {
	cfg       *config.Config
	graph     *symbols.Graph
	links     *linker.Linker
	templates render.Renderer
	metrics   metrics.Recorder
	progress  func(string)
	workers   int

	buildID string
	base    urlpath.Path

	entries     []Entry
	tutorials   *tutorialFolder
	symbolIndex map[string]*symbols.Symbol

	nav string
}

// New constructs a Builder and performs all setup that must precede the
// concurrent fan-out: output directory creation, asset copying, entry tree
// construction and the one-time nav render. Any failure here is fatal and
// happens before a single page task is scheduled.
func New(cfg *config.Config, graph *symbols.Graph, opts Options) (*Builder, error) {
	if opts.Metrics == nil {
		opts.Metrics = metrics.NoopRecorder{}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	templatesDir := ""
	if cfg.Templates.Dir != "" {
		templatesDir = filepath.Join(cfg.InputDir, cfg.Templates.Dir)
	}
	templates, err := render.Load(templatesDir)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:       cfg,
		graph:     graph,
		links:     linker.New(cfg),
		templates: templates,
		metrics:   opts.Metrics,
		progress:  opts.Progress,
		workers:   opts.Workers,
		buildID:   uuid.NewString(),
		base:      cfg.Output.BasePath(),
	}

	b.tutorials, err = loadTutorials(cfg)
	if err != nil {
		return nil, err
	}
	roots, err := fileRoots(cfg)
	if err != nil {
		return nil, err
	}

	b.entries = []Entry{&indexEntry{tutorials: b.tutorials}, b.tutorials}
	b.entries = append(b.entries, symbolEntries(graph.Root.Children)...)
	for _, root := range roots {
		b.entries = append(b.entries, root)
	}

	b.symbolIndex = indexSymbols(graph)

	if err := b.setup(roots); err != nil {
		return nil, err
	}
	return b, nil
}

// setup copies static assets into the output directory and establishes the
// nav cache.
func (b *Builder) setup(roots []*fileRoot) error {
	if err := os.MkdirAll(b.outDir(), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := render.WriteBuiltinAssets(b.outDir()); err != nil {
		return err
	}
	for _, asset := range append(b.cfg.Assets.CSS, b.cfg.Assets.JS...) {
		src := filepath.Join(b.cfg.InputDir, asset)
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", asset, err)
		}
		if err := os.WriteFile(filepath.Join(b.outDir(), filepath.Base(asset)), data, 0o640); err != nil {
			return fmt.Errorf("copy asset %s: %w", asset, err)
		}
	}

	if icon := b.cfg.Project.Icon; icon != "" {
		data, err := os.ReadFile(filepath.Join(b.cfg.InputDir, icon))
		if err != nil {
			return fmt.Errorf("read icon: %w", err)
		}
		if err := os.WriteFile(filepath.Join(b.outDir(), "icon.png"), data, 0o640); err != nil {
			return fmt.Errorf("copy icon: %w", err)
		}
	}

	if b.cfg.Tutorials != nil {
		for _, asset := range b.cfg.Tutorials.Assets {
			if err := b.copyTutorialAsset(asset); err != nil {
				return err
			}
		}
	}

	b.nav = b.buildNav(roots)
	return nil
}

// copyTutorialAsset copies one tutorial asset, stripping the tutorials
// directory prefix so that pages can reference it the way the markdown does.
func (b *Builder) copyTutorialAsset(asset string) error {
	rel := asset
	if stripped, err := filepath.Rel(b.cfg.Tutorials.Dir, asset); err == nil && filepath.IsLocal(stripped) {
		rel = stripped
	}
	data, err := os.ReadFile(filepath.Join(b.cfg.InputDir, asset))
	if err != nil {
		return fmt.Errorf("read tutorial asset %s: %w", asset, err)
	}
	dst := filepath.Join(b.outDir(), rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("create asset directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o640); err != nil {
		return fmt.Errorf("copy tutorial asset %s: %w", asset, err)
	}
	return nil
}

// buildNav renders the sidebar exactly once. Every page of the run shares
// this string.
func (b *Builder) buildNav(roots []*fileRoot) string {
	var sections []string

	home := Link("Home", urlpath.Path{})
	sections = append(sections, `<ul>`+home.HTML(b.base)+`</ul>`)

	if tutorials := b.tutorials.Nav(); !tutorials.Empty() {
		sections = append(sections, tutorials.HTML(b.base))
	}

	api := RootNav("API")
	for _, e := range b.entries {
		switch e.(type) {
		case *namespaceEntry, *classEntry, *functionEntry:
			api.Add(e.Nav())
		}
	}
	if !api.Empty() {
		sections = append(sections, api.HTML(b.base))
	}

	for _, root := range roots {
		if nav := root.Nav(); !nav.Empty() {
			sections = append(sections, nav.HTML(b.base))
		}
	}

	var out string
	for _, s := range sections {
		out += s
	}
	return out
}

// outDir is the resolved output directory.
func (b *Builder) outDir() string {
	return filepath.Join(b.cfg.InputDir, b.cfg.Output.Dir)
}

// iconHTML is the head fragment for the project icon, empty when none is
// configured.
func (b *Builder) iconHTML() string {
	if b.cfg.Project.Icon == "" {
		return ""
	}
	return `<link rel="icon" href="` + html.EscapeString(b.base.Append("icon.png").Href()) + `">`
}

// Run executes every page task with bounded concurrency and aggregates the
// results. The first failure observed is the build failure; all in-flight
// tasks are still drained. Partial output from already succeeded pages is
// left on disk.
func (b *Builder) Run(ctx context.Context) error {
	start := time.Now()

	var tasks []Task
	for _, e := range b.entries {
		tasks = append(tasks, e.Build(b)...)
	}

	slog.Info("building site",
		logfields.BuildID(b.buildID),
		logfields.Pages(len(tasks)),
		logfields.Workers(b.workers))
	b.metrics.SetWorkerConcurrency(b.workers)

	sem := make(chan struct{}, b.workers)
	errCh := make(chan error, len(tasks))
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			url, err := runTask(ctx, task)
			if err != nil {
				b.metrics.IncPageResult(metrics.ResultFatal)
				errCh <- err
				return
			}
			b.metrics.IncPageResult(metrics.ResultSuccess)
			b.notify("Built " + url.String())
		}(task)
	}
	wg.Wait()
	close(errCh)

	var first error
	for err := range errCh {
		if first == nil {
			first = err
		}
	}

	b.metrics.ObserveBuildDuration(time.Since(start))
	if first != nil {
		b.metrics.IncBuildOutcome(metrics.OutcomeFailed)
		slog.Error("build failed",
			logfields.BuildID(b.buildID),
			logfields.Error(first),
			logfields.DurationMS(float64(time.Since(start).Milliseconds())))
		return first
	}

	b.metrics.IncBuildOutcome(metrics.OutcomeSuccess)
	slog.Info("build complete",
		logfields.BuildID(b.buildID),
		logfields.Pages(len(tasks)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

// runTask executes one task, converting an unexpected crash into the fatal
// error class.
func runTask(ctx context.Context, task Task) (url urlpath.Path, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page task crashed: %v", r)
		}
	}()
	return task(ctx)
}

// notify invokes the progress callback. A panicking callback is absorbed so
// that it can never affect the build outcome.
func (b *Builder) notify(msg string) {
	if b.progress == nil {
		return
	}
	defer func() { _ = recover() }()
	b.progress(msg)
}

// indexSymbols records the first symbol of each simple name encountered in a
// depth-first walk, for resolving type references in signatures. The walk
// order matches the autolink collision rule.
func indexSymbols(graph *symbols.Graph) map[string]*symbols.Symbol {
	index := map[string]*symbols.Symbol{}
	graph.Root.Walk(func(sym *symbols.Symbol) {
		if _, ok := linker.Category(sym.Kind); !ok {
			return
		}
		if _, seen := index[sym.Name]; !seen && sym.Name != "" {
			index[sym.Name] = sym
		}
	})
	return index
}

// symbolFor resolves a type reference's declaration to its graph symbol.
func (b *Builder) symbolFor(decl *entity.Entity) *symbols.Symbol {
	if decl == nil || decl.Name == "" {
		return nil
	}
	return b.symbolIndex[decl.Name]
}

// BuildID identifies this run in logs.
func (b *Builder) BuildID() string { return b.buildID }

// Nav exposes the cached sidebar HTML, primarily for tests and the preview
// server.
func (b *Builder) Nav() string { return b.nav }
