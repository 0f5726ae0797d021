// Package markdown renders narrative text (tutorials, doc comment prose) to
// HTML and extracts page metadata from it.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Render converts a Markdown body (frontmatter already removed) to HTML.
// Headings receive stable slug ids so deep links work.
func Render(body []byte) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(headingIDTransformer{}, 100)),
			parser.WithAttribute(),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// headingIDTransformer assigns slugified id attributes to headings that do
// not already carry one.
type headingIDTransformer struct{}

func (headingIDTransformer) Transform(doc *gmast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if _, has := heading.AttributeString("id"); has {
			return gmast.WalkContinue, nil
		}
		title := nodeText(heading, source)
		if slug := Slug(title); slug != "" {
			heading.SetAttributeString("id", []byte(slug))
		}
		return gmast.WalkContinue, nil
	})
}

func nodeText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*gmast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}

// ExtractTitle returns the text of the first heading in the body, or ""
// when the document has none.
func ExtractTitle(body []byte) string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*gmast.Heading); ok {
			return nodeText(heading, body)
		}
	}
	return ""
}
