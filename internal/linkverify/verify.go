package linkverify

import (
	"context"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"git.home.luguber.info/inful/cppdoc/internal/logfields"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Broken is one internal link whose target does not exist in the output
// directory.
type Broken struct {
	Page   string // path of the page containing the link, relative to the output dir
	URL    string // the broken link target
	Reason string
}

// Verifier checks every internal link of a generated site against the files
// on disk.
type Verifier struct {
	outDir        string
	base          urlpath.Path
	maxConcurrent int
}

// New creates a Verifier for the site under outDir. base is the configured
// site base URL prefix, stripped from link targets before resolution.
func New(outDir string, base urlpath.Path, maxConcurrent int) *Verifier {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &Verifier{outDir: outDir, base: base, maxConcurrent: maxConcurrent}
}

// Run walks every rendered page, extracts its links and resolves the
// internal ones against the output directory. Broken links are logged as
// warnings and returned; Run only errors when the site itself cannot be
// read.
func (v *Verifier) Run(ctx context.Context) ([]Broken, error) {
	var pages []string
	err := filepath.WalkDir(v.outDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "index.html" {
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sem := make(chan struct{}, v.maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var broken []Broken

	for _, page := range pages {
		wg.Add(1)
		go func(page string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}

			for _, b := range v.verifyPage(page) {
				mu.Lock()
				broken = append(broken, b)
				mu.Unlock()
			}
		}(page)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return broken, err
	}
	for _, b := range broken {
		slog.Warn("broken internal link",
			logfields.Page(b.Page),
			logfields.URL(b.URL),
			slog.String("reason", b.Reason))
	}
	return broken, nil
}

func (v *Verifier) verifyPage(page string) []Broken {
	rel, err := filepath.Rel(v.outDir, page)
	if err != nil {
		rel = page
	}

	f, err := os.Open(page)
	if err != nil {
		return []Broken{{Page: rel, URL: "", Reason: err.Error()}}
	}
	defer f.Close()

	links, err := ExtractLinks(f, "")
	if err != nil {
		return []Broken{{Page: rel, URL: "", Reason: err.Error()}}
	}

	var broken []Broken
	for _, link := range links {
		if !link.IsInternal || !shouldVerify(link) {
			continue
		}
		if !v.targetExists(page, link.URL) {
			broken = append(broken, Broken{Page: rel, URL: link.URL, Reason: "target not found"})
		}
	}
	return broken
}

// targetExists resolves an internal link to a filesystem path. Site-absolute
// links resolve from the output root after stripping the base prefix;
// relative links resolve from the page's directory. A directory target
// counts when it holds an index.html.
func (v *Verifier) targetExists(page, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	p := u.Path
	if p == "" {
		return true
	}

	var target string
	if strings.HasPrefix(p, "/") {
		stripped := urlpath.Parse(p).StripPrefix(v.base)
		target = filepath.Join(v.outDir, stripped.Filepath())
	} else {
		target = filepath.Join(filepath.Dir(page), filepath.FromSlash(p))
	}

	info, err := os.Stat(target)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(target, "index.html"))
		return err == nil
	}
	return true
}
