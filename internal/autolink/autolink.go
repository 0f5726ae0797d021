// Package autolink rewrites bare mentions of symbol names in narrative text
// into markdown links. The text is tokenized exactly once; every symbol of
// the graph then claims at most the first unclaimed token matching its simple
// name, and all claimed replacements are materialized in a single
// forward pass over the original text.
package autolink

import (
	"unicode"

	"git.home.luguber.info/inful/cppdoc/internal/symbols"
	"git.home.luguber.info/inful/cppdoc/internal/urlpath"
)

// Annotation is one located token with an optional pending replacement.
type Annotation struct {
	Start int
	End   int
	Raw   string

	value   string
	claimed bool
}

// Annotations holds the token list for one text, ordered by position.
type Annotations struct {
	raw   string
	words []Annotation
}

// Scan tokenizes text into maximal alphanumeric runs with their byte ranges.
// This pass is independent of any symbol lookup.
func Scan(text string) *Annotations {
	a := &Annotations{raw: text}
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			a.words = append(a.words, Annotation{Start: start, End: i, Raw: text[start:i]})
			start = -1
		}
	}
	if start >= 0 {
		a.words = append(a.words, Annotation{Start: start, End: len(text), Raw: text[start:]})
	}
	return a
}

// Claim records a pending replacement on the first unclaimed token whose text
// equals name, skipping lowercase-only tokens. Returns false when no token
// was available.
func (a *Annotations) Claim(name, replacement string) bool {
	for i := range a.words {
		w := &a.words[i]
		if w.claimed || lowercaseOnly(w.Raw) || w.Raw != name {
			continue
		}
		w.claimed = true
		w.value = replacement
		return true
	}
	return false
}

// Result materializes the rewritten string. Replacements are applied in
// left-to-right order over the original text; a single running signed delta
// corrects each replacement's effective offsets for the length differences
// of all earlier ones.
func (a *Annotations) Result() string {
	out := []byte(a.raw)
	delta := 0
	for _, w := range a.words {
		if !w.claimed {
			continue
		}
		start, end := w.Start+delta, w.End+delta
		next := make([]byte, 0, len(out)+len(w.value)-(end-start))
		next = append(next, out[:start]...)
		next = append(next, w.value...)
		next = append(next, out[end:]...)
		out = next
		delta += len(w.value) - (w.End - w.Start)
	}
	return string(out)
}

// lowercaseOnly reports whether the token consists entirely of lowercase
// characters, which excludes common words ("get", "data") from linking.
func lowercaseOnly(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// URLResolver supplies the absolute documentation URL for a symbol. Symbols
// without a page report false and are skipped.
type URLResolver interface {
	AbsURL(*symbols.Symbol) (urlpath.Path, bool)
}

// Linkify rewrites the first mention of each known symbol name in text into
// a markdown link. When several symbols share an unqualified name, the first
// one encountered in a depth-first walk of the graph wins.
func Linkify(text string, graph *symbols.Graph, resolver URLResolver) string {
	if text == "" || graph == nil {
		return text
	}
	ann := Scan(text)
	graph.Root.Walk(func(sym *symbols.Symbol) {
		if lowercaseOnly(sym.Name) {
			return
		}
		url, ok := resolver.AbsURL(sym)
		if !ok {
			return
		}
		link := "[" + sym.Name + "](" + url.Href() + ")"
		ann.Claim(sym.Name, link)
	})
	return ann.Result()
}

// LinkifyAll applies Linkify to every string in texts, sharing one graph
// walk order.
func LinkifyAll(texts []string, graph *symbols.Graph, resolver URLResolver) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Linkify(t, graph, resolver)
	}
	return out
}
