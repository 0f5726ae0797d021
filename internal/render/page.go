package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Page is the fully rendered form of one site entry.
type Page struct {
	Title       string
	Description string
	// Content is the inner HTML of the page body, written alongside the
	// full document for embedding and verification.
	Content []byte
	// Document is the complete HTML document.
	Document []byte
}

type pageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WritePage writes a page's three output files under outDir at the directory
// named by url: index.html, content.html and metadata.json.
func WritePage(outDir string, url urlpath.Path, page Page) error {
	dir, err := pageDir(outDir, url)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create page directory: %w", err)
	}

	meta, err := json.Marshal(pageMetadata{Title: page.Title, Description: page.Description})
	if err != nil {
		return fmt.Errorf("encode page metadata: %w", err)
	}

	for name, data := range map[string][]byte{
		"index.html":    page.Document,
		"content.html":  page.Content,
		"metadata.json": meta,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o640); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// pageDir resolves the output directory for a page and rejects anything that
// would escape outDir.
func pageDir(outDir string, url urlpath.Path) (string, error) {
	if url.IsExternal() {
		return "", fmt.Errorf("cannot write external url %s", url)
	}
	dir := filepath.Join(outDir, url.Filepath())
	rel, err := filepath.Rel(outDir, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("page path %s escapes output directory", url)
	}
	return dir, nil
}
