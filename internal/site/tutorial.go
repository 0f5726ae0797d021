package site

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/config"
	"git.home.luguber.info/inful/cppdoc/internal/markdown"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

const tutorialsPrefix = "tutorials"

// tutorialEntry is one hand-authored markdown page. Content is read at
// construction time so a missing file fails before any task is scheduled.
type tutorialEntry struct {
	rel   urlpath.Path
	title string
	meta  markdown.Meta
	body  []byte
}

func newTutorial(dir string, rel urlpath.Path) (*tutorialEntry, error) {
	raw, err := os.ReadFile(filepath.Join(dir, rel.Filepath()))
	if err != nil {
		return nil, fmt.Errorf("read tutorial %s: %w", rel, err)
	}
	meta, body, err := markdown.SplitFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("tutorial %s: %w", rel, err)
	}
	title := meta.Title
	if title == "" {
		title = markdown.ExtractTitle(body)
	}
	if title == "" {
		title = rel.TrimExt(".md").FileName()
	}
	return &tutorialEntry{rel: rel, title: title, meta: meta, body: body}, nil
}

func (e *tutorialEntry) Name() string { return e.rel.TrimExt(".md").FileName() }

func (e *tutorialEntry) URL() urlpath.Path {
	return urlpath.New(tutorialsPrefix).Join(e.rel.TrimExt(".md"))
}

func (e *tutorialEntry) Nav() *NavItem { return Link(e.title, e.URL()) }

func (e *tutorialEntry) Build(b *Builder) []Task {
	return []Task{b.pageTask("tutorial", e)}
}

func (e *tutorialEntry) Title(b *Builder) string {
	return fmt.Sprintf("%s - %s", e.title, b.cfg.Project.Name)
}

func (e *tutorialEntry) Description(b *Builder) string {
	if e.meta.Description != "" {
		return e.meta.Description
	}
	return fmt.Sprintf("%s tutorial for %s", e.title, b.cfg.Project.Name)
}

func (e *tutorialEntry) Content(b *Builder) (string, error) {
	return b.markdownHTML(string(e.body))
}

// tutorialFolder is a directory of tutorials. Non-root folders with an
// index.md render it as their own page; the root folder only contributes
// its children.
type tutorialFolder struct {
	root    bool
	open    bool
	rel     urlpath.Path
	title   string
	index   *tutorialEntry
	folders []*tutorialFolder
	pages   []*tutorialEntry
}

// loadTutorials builds the tutorial tree from the configured directory, or
// an empty root when tutorials are not configured. Folders without any
// markdown files below them are dropped. Folders nested deeper than one
// level start collapsed in the nav.
func loadTutorials(cfg *config.Config) (*tutorialFolder, error) {
	root := &tutorialFolder{root: true, open: true}
	if cfg.Tutorials == nil {
		return root, nil
	}
	dir := filepath.Join(cfg.InputDir, cfg.Tutorials.Dir)
	loaded, err := loadTutorialFolder(dir, urlpath.Path{}, 0)
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return root, nil
	}
	loaded.root = true
	return loaded, nil
}

func loadTutorialFolder(dir string, rel urlpath.Path, depth int) (*tutorialFolder, error) {
	entries, err := os.ReadDir(filepath.Join(dir, rel.Filepath()))
	if err != nil {
		return nil, fmt.Errorf("read tutorial directory %s: %w", rel, err)
	}

	folder := &tutorialFolder{rel: rel, open: depth < 2, title: rel.FileName()}
	for _, ent := range entries {
		name := ent.Name()
		switch {
		case ent.IsDir():
			sub, err := loadTutorialFolder(dir, rel.Append(name), depth+1)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				folder.folders = append(folder.folders, sub)
			}

		case strings.EqualFold(name, "index.md"):
			index, err := newTutorial(dir, rel.Append(name))
			if err != nil {
				return nil, err
			}
			folder.index = index
			folder.title = index.title

		case strings.EqualFold(name, "readme.md"):
			// skipped, same as index.md in spirit but not rendered

		case strings.HasSuffix(strings.ToLower(name), ".md"):
			page, err := newTutorial(dir, rel.Append(name))
			if err != nil {
				return nil, err
			}
			folder.pages = append(folder.pages, page)
		}
	}

	if len(folder.folders) == 0 && len(folder.pages) == 0 {
		return nil, nil
	}
	return folder, nil
}

func (e *tutorialFolder) Name() string { return e.title }

func (e *tutorialFolder) URL() urlpath.Path {
	if e.root {
		return urlpath.Path{}
	}
	return urlpath.New(tutorialsPrefix).Join(e.rel)
}

func (e *tutorialFolder) Nav() *NavItem {
	if e.root {
		root := RootNav("Tutorials")
		for _, page := range e.pages {
			root.Add(page.Nav())
		}
		for _, sub := range e.folders {
			root.Add(sub.Nav())
		}
		return root
	}

	dir := Dir(e.title, e.open)
	if e.index != nil {
		dir.Add(Link("Overview", e.URL()))
	}
	for _, page := range e.pages {
		dir.Add(page.Nav())
	}
	for _, sub := range e.folders {
		dir.Add(sub.Nav())
	}
	return dir
}

func (e *tutorialFolder) Build(b *Builder) []Task {
	var tasks []Task
	if !e.root && e.index != nil {
		tasks = append(tasks, b.pageTask("tutorial", e))
	}
	for _, page := range e.pages {
		tasks = append(tasks, page.Build(b)...)
	}
	for _, sub := range e.folders {
		tasks = append(tasks, sub.Build(b)...)
	}
	return tasks
}

func (e *tutorialFolder) Title(b *Builder) string {
	return fmt.Sprintf("%s - %s", e.title, b.cfg.Project.Name)
}

func (e *tutorialFolder) Description(b *Builder) string {
	return fmt.Sprintf("%s tutorials for %s", e.title, b.cfg.Project.Name)
}

func (e *tutorialFolder) Content(b *Builder) (string, error) {
	var out strings.Builder
	if e.index != nil {
		body, err := e.index.Content(b)
		if err != nil {
			return "", err
		}
		out.WriteString(body)
	} else {
		out.WriteString(`<h1>` + html.EscapeString(e.title) + `</h1>`)
	}

	items := make([]string, 0, len(e.pages))
	for _, page := range e.pages {
		items = append(items, `<p><a href="`+html.EscapeString(b.base.Join(page.URL()).Href())+`">`+html.EscapeString(page.title)+`</a></p>`)
	}
	out.WriteString(section("Pages", items))
	return out.String(), nil
}
