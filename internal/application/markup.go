package application

import (
	"sort"
	"strings"

	"github.com/bnema/scriptbridge/internal/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleDecl is one CSS declaration. Order is kept when rendered.
type StyleDecl struct {
	Property string
	Value    string
}

type Style []StyleDecl

func (s Style) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s {
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

var (
	TextStyle = Style{
		{"padding", "5px"},
		{"max-width", "96ch"},
		{"font-family", "monospace"},
		{"overflow-wrap", "break-word"},
		{"white-space", "break-spaces"},
	}
	SquareStyle = Style{
		{"line-height", "1"},
		{"font-family", "Kreative Square"},
		{"white-space", "break-spaces"},
	}
)

// StyleFromValue reads custom declarations from a script value. A list of
// [property, value] pairs keeps its order, so later declarations win. Records
// carry no order and are read sorted by property.
func StyleFromValue(v domain.Value) (Style, bool) {
	if items, ok := v.List(); ok {
		style := make(Style, 0, len(items))
		for _, item := range items {
			pair, ok := item.List()
			if !ok || len(pair) < 2 {
				return nil, false
			}
			style = append(style, StyleDecl{Property: pair[0].String(), Value: pair[1].String()})
		}
		return style, len(style) > 0
	}

	fields, ok := v.Record()
	if !ok {
		return nil, false
	}

	props := make([]string, 0, len(fields))
	for p := range fields {
		props = append(props, p)
	}
	sort.Strings(props)

	style := make(Style, 0, len(props))
	for _, p := range props {
		style = append(style, StyleDecl{Property: p, Value: fields[p].String()})
	}
	return style, true
}

const (
	TextSelector = "div"
	SVGSelector  = "svg"
)

// Htmlize wraps text in a styled block ready for rendering.
func Htmlize(text string, style Style) string {
	div := element(atom.Div, html.Attribute{Key: "style", Val: style.String()})
	div.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return document(div)
}

// Svglize builds an SVG document from a [width, height, items...] list.
// Items are [kind, style, ...]: path/p takes d; text/t takes x, y, content;
// img/i takes x, y, width, height, href. Other items are ignored.
func Svglize(v domain.Value, format func(domain.Value) string) string {
	items, _ := v.List()
	at := func(list []domain.Value, i int) domain.Value {
		if i < len(list) {
			return list[i]
		}
		return domain.Undefined
	}

	svg := &html.Node{Type: html.ElementNode, Data: "svg", Attr: []html.Attribute{
		{Key: "xmlns", Val: "http://www.w3.org/2000/svg"},
		{Key: "width", Val: attrValue(at(items, 0))},
		{Key: "height", Val: attrValue(at(items, 1))},
	}}

	for i := 2; i < len(items); i++ {
		item, ok := items[i].List()
		if !ok || len(item) == 0 {
			continue
		}
		kind, _ := item[0].Text()
		switch kind {
		case "path", "p":
			svg.AppendChild(svgElement("path",
				"style", attrValue(at(item, 1)),
				"d", attrValue(at(item, 2)),
			))
		case "text", "t":
			text := svgElement("text",
				"style", attrValue(at(item, 1)),
				"x", attrValue(at(item, 2)),
				"y", attrValue(at(item, 3)),
			)
			text.AppendChild(&html.Node{Type: html.TextNode, Data: formatValue(at(item, 4), format)})
			svg.AppendChild(text)
		case "img", "i":
			svg.AppendChild(svgElement("image",
				"style", attrValue(at(item, 1)),
				"x", attrValue(at(item, 2)),
				"y", attrValue(at(item, 3)),
				"width", attrValue(at(item, 4)),
				"height", attrValue(at(item, 5)),
				"href", attrValue(at(item, 6)),
			))
		}
	}

	return document(svg)
}

func formatValue(v domain.Value, format func(domain.Value) string) string {
	if text, ok := v.Text(); ok {
		return text
	}
	if format != nil {
		return format(v)
	}
	return v.String()
}

func attrValue(v domain.Value) string {
	if v.IsAbsent() {
		return ""
	}
	return v.String()
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func svgElement(name string, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: name}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func document(child *html.Node) string {
	root := element(atom.Html)
	root.AppendChild(child)

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return ""
	}
	return b.String()
}
