// Package site turns the symbol graph, the documented file tree and the
// tutorial tree into pages and orchestrates building them concurrently.
package site

import (
	"context"
	"fmt"
	"html"
	"time"

	"git.home.luguber.info/inful/cppdoc/internal/render"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Task builds exactly one page. Tasks for one build are path addressed and
// write disjoint files, so they carry no ordering between each other.
type Task func(ctx context.Context) (urlpath.Path, error)

// Entry is one schedulable documentation unit. The variant set is closed:
// namespace, class, struct and function pages from the symbol graph, file and
// directory pages from the source tree, tutorial pages and folders, and the
// index. Containers collect their children's tasks and do not write output
// themselves unless they are also pages.
type Entry interface {
	Name() string
	URL() urlpath.Path
	Nav() *NavItem
	Build(b *Builder) []Task
}

// OutputEntry is an Entry that produces a page of its own.
type OutputEntry interface {
	Entry
	Title(b *Builder) string
	Description(b *Builder) string
	Content(b *Builder) (string, error)
}

// pageTask wraps one OutputEntry into the task that formats and writes its
// page. The nav cache is read here; it is established before any task runs.
func (b *Builder) pageTask(category string, e OutputEntry) Task {
	return func(ctx context.Context) (urlpath.Path, error) {
		url := e.URL()
		if err := ctx.Err(); err != nil {
			return url, err
		}

		start := time.Now()
		content, err := e.Content(b)
		if err != nil {
			return url, fmt.Errorf("build %s: %w", url, err)
		}

		doc, err := b.templates.Render(render.PageTemplate, map[string]string{
			"title":      html.EscapeString(e.Title(b)),
			"project":    html.EscapeString(b.cfg.Project.Name),
			"version":    html.EscapeString(b.cfg.Project.Version),
			"icon":       b.iconHTML(),
			"stylesheet": b.base.Append("main.css").Href(),
			"home":       b.base.Href(),
			"nav":        b.nav,
			"content":    content,
		})
		if err != nil {
			return url, fmt.Errorf("build %s: %w", url, err)
		}

		err = render.WritePage(b.outDir(), url, render.Page{
			Title:       e.Title(b),
			Description: e.Description(b),
			Content:     []byte(content),
			Document:    doc,
		})
		if err != nil {
			return url, fmt.Errorf("build %s: %w", url, err)
		}

		b.metrics.ObservePageDuration(category, time.Since(start))
		return url, nil
	}
}
