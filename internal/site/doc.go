package site

import (
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/autolink"
	"git.home.luguber.info/inful/cppdoc/internal/comment"
	"git.home.luguber.info/inful/cppdoc/internal/logfields"
	"git.home.luguber.info/inful/cppdoc/internal/markdown"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
)

const noDescription = "<p>No description provided.</p>"

// markdownHTML autolinks bare symbol mentions in text and renders it to HTML.
func (b *Builder) markdownHTML(text string) (string, error) {
	linked := autolink.Linkify(text, b.graph, b.links)
	out, err := markdown.Render([]byte(linked))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// docHTML renders a symbol's full doc comment: description followed by the
// structured sections. A missing comment degrades to a placeholder.
func (b *Builder) docHTML(sym *symbols.Symbol) (string, error) {
	if sym.Comment == "" {
		slog.Warn("symbol has no documentation", logfields.Symbol(strings.Join(sym.QualifiedName(), "::")))
		return noDescription, nil
	}
	doc := comment.Parse(sym.Comment)

	var out strings.Builder
	if doc.Description == "" {
		out.WriteString(noDescription)
	} else {
		desc, err := b.markdownHTML(doc.Description)
		if err != nil {
			return "", err
		}
		out.WriteString(desc)
	}

	if err := b.writeDocSections(&out, doc); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (b *Builder) writeDocSections(out *strings.Builder, doc *comment.Doc) error {
	if err := b.writeParamList(out, "Template parameters", doc.TParams); err != nil {
		return err
	}
	if err := b.writeParamList(out, "Parameters", doc.Params); err != nil {
		return err
	}

	for _, pair := range []struct{ title, text string }{
		{"Returns", doc.Returns},
		{"Throws", doc.Throws},
	} {
		if pair.text == "" {
			continue
		}
		body, err := b.markdownHTML(pair.text)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, `<h4>%s</h4>%s`, pair.title, body)
	}

	for _, note := range doc.Notes {
		body, err := b.markdownHTML(note)
		if err != nil {
			return err
		}
		out.WriteString(`<div class="note">` + body + `</div>`)
	}
	for _, warn := range doc.Warnings {
		body, err := b.markdownHTML(warn)
		if err != nil {
			return err
		}
		out.WriteString(`<div class="warning">` + body + `</div>`)
	}

	if len(doc.See) > 0 {
		out.WriteString(`<h4>See also</h4><ul class="see">`)
		for _, see := range doc.See {
			body, err := b.markdownHTML(see)
			if err != nil {
				return err
			}
			out.WriteString(`<li>` + body + `</li>`)
		}
		out.WriteString(`</ul>`)
	}

	for _, ex := range doc.Examples {
		class := "example"
		if ex.Analyze {
			class += " analyze"
		}
		fmt.Fprintf(out, `<pre class="%s"><code>%s</code></pre>`, class, html.EscapeString(ex.Code))
	}

	if doc.Version != "" || doc.Since != "" {
		out.WriteString(`<p class="meta">`)
		if doc.Version != "" {
			out.WriteString(`<span class="version">Version ` + html.EscapeString(doc.Version) + `</span> `)
		}
		if doc.Since != "" {
			out.WriteString(`<span class="since">Since ` + html.EscapeString(doc.Since) + `</span>`)
		}
		out.WriteString(`</p>`)
	}
	return nil
}

func (b *Builder) writeParamList(out *strings.Builder, title string, params []comment.Param) error {
	if len(params) == 0 {
		return nil
	}
	fmt.Fprintf(out, `<h4>%s</h4><dl class="params">`, title)
	for _, p := range params {
		body, err := b.markdownHTML(p.Text)
		if err != nil {
			return err
		}
		out.WriteString(`<dt>` + html.EscapeString(p.Name) + `</dt><dd>` + body + `</dd>`)
	}
	out.WriteString(`</dl>`)
	return nil
}

// section wraps rendered items in a collapsible block with a count badge.
// Empty sections are omitted.
func section(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return `<details open class="section"><summary>` + html.EscapeString(title) +
		` <span class="badge">` + strconv.Itoa(len(items)) + `</span></summary><div>` +
		strings.Join(items, "\n") + `</div></details>`
}
