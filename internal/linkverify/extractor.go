// Package linkverify checks the links of a generated site. Internal links
// are resolved against the output directory on disk; anything broken is
// reported as a warning and never fails a build.
package linkverify

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is one extracted link from a rendered page.
type Link struct {
	URL        string // the raw href/src value
	Text       string // link text or alt text
	Tag        string // html tag (a, img, script, link)
	Attribute  string // attribute carrying the link
	IsInternal bool   // true when the link stays on this site
}

// ExtractLinks parses HTML and returns every link it references.
func ExtractLinks(r io.Reader, baseURL string) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	var links []*Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			extractElementLinks(n, &links, base)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func extractElementLinks(n *html.Node, links *[]*Link, base *url.URL) {
	add := func(value, text, attr string) {
		if value == "" {
			return
		}
		*links = append(*links, &Link{
			URL:        value,
			Text:       text,
			Tag:        n.Data,
			Attribute:  attr,
			IsInternal: isInternalLink(value, base),
		})
	}

	switch n.Data {
	case "a":
		add(getAttr(n, "href"), extractText(n), "href")
	case "img":
		add(getAttr(n, "src"), getAttr(n, "alt"), "src")
	case "script", "video", "audio", "source":
		add(getAttr(n, "src"), "", "src")
	case "link":
		add(getAttr(n, "href"), getAttr(n, "rel"), "href")
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}

// isInternalLink reports whether a URL stays on this site. Special protocols
// and bare anchors count as internal; they are skipped by verification.
func isInternalLink(linkURL string, base *url.URL) bool {
	if strings.HasPrefix(linkURL, "mailto:") ||
		strings.HasPrefix(linkURL, "tel:") ||
		strings.HasPrefix(linkURL, "javascript:") ||
		strings.HasPrefix(linkURL, "#") {
		return true
	}
	u, err := url.Parse(linkURL)
	if err != nil {
		return false
	}
	if u.Scheme == "" || u.Host == "" {
		return true
	}
	return base != nil && u.Host == base.Host
}

// shouldVerify filters out links that never have an on-disk target.
func shouldVerify(link *Link) bool {
	if link.URL == "" || strings.HasPrefix(link.URL, "#") {
		return false
	}
	if strings.HasPrefix(link.URL, "mailto:") ||
		strings.HasPrefix(link.URL, "tel:") ||
		strings.HasPrefix(link.URL, "javascript:") ||
		strings.HasPrefix(link.URL, "data:") {
		return false
	}
	return true
}
