// Package render turns assembled page fragments into the final on-disk site:
// template substitution for the document shell and the fixed per-page output
// layout (index.html, content.html, metadata.json).
package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.html
var builtinTemplates embed.FS

// Template identifiers. These are the file names a custom template directory
// must provide to override the built-ins.
const (
	PageTemplate = "page.html"
)

// Renderer produces the final bytes of a page from a template identifier and
// a set of named fragments. Fragment values are pre-built markup or plain
// strings; substitution is verbatim, with no escaping.
type Renderer interface {
	Render(name string, fragments map[string]string) ([]byte, error)
}

// Templates is a Renderer backed by a parsed template set. The zero value is
// not usable; construct with Load.
type Templates struct {
	set *template.Template
}

// Load parses the template set from dir, or the built-in templates when dir
// is empty. A missing or unparsable template file is a configuration error
// and fails before any page is built.
func Load(dir string) (*Templates, error) {
	root := template.New("").Option("missingkey=error")
	var (
		set *template.Template
		err error
	)
	if dir == "" {
		set, err = root.ParseFS(builtinTemplates, "templates/*.html")
	} else {
		set, err = root.ParseGlob(dir + "/*.html")
	}
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render executes the named template with the given fragments. A fragment
// referenced by the template but absent from the map is an error.
func (t *Templates) Render(name string, fragments map[string]string) ([]byte, error) {
	tpl := t.set.Lookup(name)
	if tpl == nil {
		return nil, fmt.Errorf("render %s: no such template", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, fragments); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
