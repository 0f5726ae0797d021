package comment

import (
	"strings"
	"unicode"
)

// lexer walks the stripped comment body rune by rune. It compresses per-line
// decoration (leading whitespace up to the base indentation plus an optional
// "*" marker) down to a single line break, so indentation beyond the base
// width survives for code blocks.
type lexer struct {
	runes []rune
	pos   int

	// indent is the marker width observed on the first continuation line,
	// -1 until measured.
	indent int
}

func newLexer(raw string) *lexer {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "/*")
	body = strings.TrimSuffix(body, "*/")
	// "/**" doc openers leave a dangling star behind.
	body = strings.TrimLeft(body, "* \t")
	return &lexer{runes: []rune(body), indent: -1}
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.runes) {
		return 0, false
	}
	return l.runes[l.pos], true
}

func (l *lexer) next() (rune, bool) {
	r, ok := l.peek()
	if ok {
		l.pos++
	}
	return r, ok
}

func (l *lexer) skipWhile(pred func(rune) bool) {
	for {
		r, ok := l.peek()
		if !ok || !pred(r) {
			return
		}
		l.pos++
	}
}

func (l *lexer) skipSpace() {
	l.skipWhile(unicode.IsSpace)
}

// skipLineStart consumes one line's decoration after a newline: an optional
// "*" marker and leading whitespace, bounded by the indentation width seen on
// the first continuation line. The first continuation line also establishes
// that width.
func (l *lexer) skipLineStart() {
	if l.indent < 0 {
		start := l.pos
		l.skipWhile(func(r rune) bool { return r == ' ' || r == '\t' })
		if r, ok := l.peek(); ok && r == '*' {
			l.pos++
			if r, ok := l.peek(); ok && r == ' ' {
				l.pos++
			}
		}
		l.indent = l.pos - start
		return
	}
	for taken := 0; taken < l.indent; taken++ {
		r, ok := l.peek()
		if !ok {
			return
		}
		if r == '*' {
			l.pos++
			if r, ok := l.peek(); ok && r == ' ' {
				l.pos++
				taken++
			}
			continue
		}
		if r != ' ' && r != '\t' {
			return
		}
		l.pos++
	}
}

// eatUntil collects runes until pred matches, applying line compression on
// newlines. Returns false when nothing was collected.
func (l *lexer) eatUntil(pred func(rune) bool) (string, bool) {
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || pred(r) {
			break
		}
		if r == '\n' {
			l.pos++
			l.skipLineStart()
			b.WriteRune('\n')
			continue
		}
		l.pos++
		b.WriteRune(r)
	}
	return b.String(), b.Len() > 0
}

func (l *lexer) eatWord() (string, bool) {
	return l.eatUntil(unicode.IsSpace)
}

// nextCommand returns the next command name: the word after "@", or the
// implicit "description" command when the text does not start with one.
// Returns false at end of input.
func (l *lexer) nextCommand() (string, bool) {
	// Leading whitespace and stray line markers carry no content.
	l.skipWhile(func(r rune) bool { return unicode.IsSpace(r) || r == '*' })
	r, ok := l.peek()
	if !ok {
		return "", false
	}
	if r != '@' {
		return "description", true
	}
	l.pos++
	word, ok := l.eatUntil(func(r rune) bool { return unicode.IsSpace(r) || r == '[' })
	if !ok {
		// A bare trailing "@"; nothing to dispatch on.
		return "", false
	}
	return word, true
}

// attrs parses an optional "[key=value,...]" attribute list directly after a
// command name. Malformed lists degrade to whatever was parsed before the
// input ran out.
func (l *lexer) attrs() map[string]string {
	r, ok := l.peek()
	if !ok || r != '[' {
		return nil
	}
	l.pos++
	out := map[string]string{}
	for {
		key, _ := l.eatUntil(func(r rune) bool { return r == '=' || r == ',' || r == ']' })
		key = strings.TrimSpace(key)
		r, ok := l.next()
		if !ok {
			if key != "" {
				out[key] = ""
			}
			return out
		}
		switch r {
		case ']':
			if key != "" {
				out[key] = ""
			}
			return out
		case ',':
			if key != "" {
				out[key] = ""
			}
		case '=':
			val, _ := l.eatUntil(func(r rune) bool { return r == ',' || r == ']' })
			out[key] = strings.TrimSpace(val)
			if r, ok := l.next(); !ok || r == ']' {
				return out
			}
		}
	}
}

// nextParam reads one whitespace-delimited parameter.
func (l *lexer) nextParam() (string, bool) {
	l.skipSpace()
	return l.eatWord()
}

// nextValue reads the command's value: everything until the next "@" or end
// of input. Only spaces are skipped up front; a leading newline must go
// through the line-compression path so the marker width gets measured.
func (l *lexer) nextValue() (string, bool) {
	l.skipWhile(func(r rune) bool { return r == ' ' || r == '\t' })
	val, ok := l.eatUntil(func(r rune) bool { return r == '@' })
	if !ok {
		return "", false
	}
	val = strings.TrimSpace(val)
	return val, val != ""
}
