package site

import (
	"html"
	"strings"

	"git.home.luguber.info/inful/cppdoc/internal/entity"
	"git.home.luguber.info/inful/cppdoc/internal/symbols"
)

// typeHTML renders a type reference. Types whose declaration is part of the
// graph link to their page.
func (b *Builder) typeHTML(ref *entity.TypeRef) string {
	if ref == nil {
		return ""
	}
	display := html.EscapeString(ref.Display)
	if sym := b.symbolFor(ref.Decl); sym != nil {
		if url, ok := b.links.AbsURL(sym); ok {
			return `<a class="type" href="` + html.EscapeString(url.Href()) + `">` + display + `</a>`
		}
	}
	return `<span class="type">` + display + `</span>`
}

// signatureHTML renders a function or method declaration line.
func (b *Builder) signatureHTML(sym *symbols.Symbol) string {
	var out strings.Builder
	out.WriteString(`<div class="signature" id="` + html.EscapeString(strings.ToLower(sym.Name)) + `">`)
	if sym.Static {
		out.WriteString(`<span class="keyword">static</span> `)
	}
	if sym.Virtual {
		out.WriteString(`<span class="keyword">virtual</span> `)
	}
	if ret := b.typeHTML(sym.Result); ret != "" {
		out.WriteString(ret + ` `)
	}
	out.WriteString(`<span class="name">` + html.EscapeString(sym.Name) + `</span>(`)
	for i, p := range sym.Params {
		if i > 0 {
			out.WriteString(`, `)
		}
		out.WriteString(b.typeHTML(&p.Type))
		if p.Name != "" {
			out.WriteString(` <span class="param">` + html.EscapeString(p.Name) + `</span>`)
		}
	}
	out.WriteString(`)`)
	if sym.Const {
		out.WriteString(` <span class="keyword">const</span>`)
	}
	if sym.PureVirtual {
		out.WriteString(` = 0`)
	}
	out.WriteString(`;</div>`)
	return out.String()
}

// fieldHTML renders a field declaration line.
func (b *Builder) fieldHTML(sym *symbols.Symbol) string {
	var out strings.Builder
	out.WriteString(`<div class="signature" id="` + html.EscapeString(strings.ToLower(sym.Name)) + `">`)
	if sym.Static {
		out.WriteString(`<span class="keyword">static</span> `)
	}
	if t := b.typeHTML(sym.Type); t != "" {
		out.WriteString(t + ` `)
	}
	out.WriteString(`<span class="name">` + html.EscapeString(sym.Name) + `</span>;</div>`)
	return out.String()
}

// memberHTML renders one member's declaration followed by its documentation.
func (b *Builder) memberHTML(sym *symbols.Symbol) (string, error) {
	var decl string
	if sym.Kind == symbols.KindField {
		decl = b.fieldHTML(sym)
	} else {
		decl = b.signatureHTML(sym)
	}

	body := noDescription
	if sym.Comment != "" {
		var err error
		if body, err = b.docHTML(sym); err != nil {
			return "", err
		}
	}
	return `<div class="member">` + decl + body + `</div>`, nil
}
