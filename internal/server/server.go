// Package server runs a local preview of a generated site. It serves the
// output directory over HTTP and rebuilds the site when watched source
// files change.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/cppdoc/internal/logfields"
	"git.home.luguber.info/inful/cppdoc/internal/metrics"
)

const debounceDelay = 300 * time.Millisecond

// Rebuild regenerates the site. It is called after watched files change.
type Rebuild func(ctx context.Context) error

// Options configures a Preview.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Registry enables a /metrics endpoint when set.
	Registry *prometheus.Registry
}

// Preview serves a generated site and triggers rebuilds on file changes.
type Preview struct {
	outDir    string
	watchDirs []string
	rebuild   Rebuild
	opts      Options
}

// New creates a Preview serving outDir. watchDirs are watched recursively;
// any change debounces into a rebuild.
func New(outDir string, watchDirs []string, rebuild Rebuild, opts Options) *Preview {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	return &Preview{outDir: outDir, watchDirs: watchDirs, rebuild: rebuild, opts: opts}
}

// Handler returns the HTTP handler serving the site and, when a registry is
// configured, the /metrics endpoint.
func (p *Preview) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(p.outDir)))
	if p.opts.Registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(p.opts.Registry))
	}
	return mux
}

// Run serves until the context is cancelled.
func (p *Preview) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", p.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", p.opts.Addr, err)
	}

	srv := &http.Server{Handler: p.Handler(), ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	slog.Info("Preview server listening",
		logfields.URL("http://"+ln.Addr().String()),
		logfields.Page(p.outDir))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		_ = srv.Close()
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	for _, dir := range p.watchDirs {
		if err := addDirsRecursive(watcher, dir); err != nil {
			slog.Warn("watch setup failed", logfields.Page(dir), logfields.Error(err))
		}
	}

	rebuildReq, trigger := newDebouncer(debounceDelay)
	go p.rebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("server shutdown", logfields.Error(err))
			}
			return nil
		case err := <-serveErr:
			return err
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			p.handleEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (p *Preview) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if ignoreEvent(ev.Name) {
		return
	}
	// New directories join the watch set so nested changes keep arriving.
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Page(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// rebuildWorker serializes rebuilds. A change arriving mid-rebuild queues
// exactly one followup.
func (p *Preview) rebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-rebuildReq:
			if !ok {
				return
			}
			mu.Lock()
			if running {
				pending = true
				mu.Unlock()
				continue
			}
			running = true
			mu.Unlock()

			slog.Info("Change detected; rebuilding site")
			if err := p.rebuild(ctx); err != nil {
				slog.Warn("rebuild failed", logfields.Error(err))
			}

			mu.Lock()
			running = false
			if pending {
				pending = false
				mu.Unlock()
				select {
				case rebuildReq <- struct{}{}:
				default:
				}
			} else {
				mu.Unlock()
			}
		}
	}
}

// newDebouncer returns a request channel and a trigger that coalesces bursts
// of triggers into one request after delay.
func newDebouncer(delay time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// addDirsRecursive watches root and every directory below it. A plain file
// root is watched directly.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	if fi, err := os.Stat(root); err == nil && !fi.IsDir() {
		return w.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Page(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// ignoreEvent reports filesystem events that never warrant a rebuild, such
// as hidden files and editor swap files.
func ignoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp")
}
