// Package comment parses structured doc comments: a small command DSL in the
// JSDoc style, with explicit "@tag[attr=val,...]" commands and an implicit
// description command for leading prose.
//
// Parse is a total function. Malformed input degrades to placeholders with a
// logged warning; it never fails and never panics.
package comment

import "log/slog"

// Param is a named piece of documentation, used for @param and @tparam.
type Param struct {
	Name string
	Text string
}

// Example is one code block. Analyze marks it for re-highlighting by the
// renderer.
type Example struct {
	Code    string
	Analyze bool
}

// Doc is the structured form of one symbol's doc comment. Immutable after
// Parse.
type Doc struct {
	Description string
	Params      []Param
	TParams     []Param
	Returns     string
	Throws      string
	See         []string
	Notes       []string
	Warnings    []string
	Version     string
	Since       string
	Examples    []Example
}

// Empty reports whether the comment carried no recognized content.
func (d *Doc) Empty() bool {
	return d.Description == "" && len(d.Params) == 0 && len(d.TParams) == 0 &&
		d.Returns == "" && d.Throws == "" && len(d.See) == 0 && len(d.Notes) == 0 &&
		len(d.Warnings) == 0 && d.Version == "" && d.Since == "" && len(d.Examples) == 0
}

// Parse converts a raw comment body into a Doc. Any input parses; missing
// parameters or values substitute the empty string and log a warning, unknown
// tags consume their value and are discarded.
func Parse(raw string) *Doc {
	doc := &Doc{}
	lex := newLexer(raw)

	for {
		cmd, ok := lex.nextCommand()
		if !ok {
			return doc
		}
		attrs := lex.attrs()

		switch cmd {
		case "description", "desc":
			doc.Description = valueFor(lex, cmd)
		case "param", "arg":
			doc.Params = append(doc.Params, Param{Name: paramFor(lex, cmd), Text: valueFor(lex, cmd)})
		case "tparam", "targ":
			doc.TParams = append(doc.TParams, Param{Name: paramFor(lex, cmd), Text: valueFor(lex, cmd)})
		case "return", "returns":
			doc.Returns = valueFor(lex, cmd)
		case "throws":
			doc.Throws = valueFor(lex, cmd)
		case "see":
			doc.See = append(doc.See, valueFor(lex, cmd))
		case "note":
			doc.Notes = append(doc.Notes, valueFor(lex, cmd))
		case "warning", "warn":
			doc.Warnings = append(doc.Warnings, valueFor(lex, cmd))
		case "version":
			doc.Version = valueFor(lex, cmd)
		case "since":
			doc.Since = valueFor(lex, cmd)
		case "example", "code":
			_, analyze := attrs["analyze"]
			doc.Examples = append(doc.Examples, Example{Code: valueFor(lex, cmd), Analyze: analyze})
		default:
			slog.Warn("Unknown doc comment tag", "tag", cmd)
			lex.nextValue()
		}
	}
}

func paramFor(lex *lexer, cmd string) string {
	p, ok := lex.nextParam()
	if !ok {
		slog.Warn("Doc comment command missing parameter", "tag", cmd)
		return ""
	}
	return p
}

func valueFor(lex *lexer, cmd string) string {
	v, ok := lex.nextValue()
	if !ok {
		slog.Warn("Doc comment command missing value", "tag", cmd)
		return ""
	}
	return v
}
