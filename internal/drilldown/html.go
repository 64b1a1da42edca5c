package drilldown

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names of the rendered markup.
const (
	ContainerClass = "departments-mobile"
	ParentClass    = "department-parent"
	RowClass       = "department-list"
	NameClass      = "department-name"
	LinkClass      = "department-link"
	NextClass      = "department-next"
	PrevClass      = "department-prev"
	CloseClass     = "department-close"
)

// Render builds the markup for the navigator's current state: a parent
// header with the back and "show all" affordances when drilled in, then one
// row per item of the current list with a next affordance on items that
// have children.
func (n Navigator) Render() *html.Node {
	root := element(atom.Div, ContainerClass)
	root.AppendChild(button(CloseClass, "×"))

	if parent, ok := n.ParentItem(); ok {
		header := element(atom.Div, ParentClass)
		header.AppendChild(button(PrevClass, "‹"))
		header.AppendChild(textElement(atom.Span, NameClass, parent.Name))
		link := textElement(atom.A, LinkClass, n.AggregateLabel())
		link.Attr = append(link.Attr, html.Attribute{Key: "data-id", Val: parent.ID})
		header.AppendChild(link)
		root.AppendChild(header)
	}

	ul := element(atom.Ul, "department-lists")
	for _, item := range n.CurrentList() {
		li := element(atom.Li, RowClass)
		li.Attr = append(li.Attr, html.Attribute{Key: "data-id", Val: item.ID})
		li.AppendChild(textElement(atom.Span, NameClass, item.Name))
		if item.HasChildren() {
			li.AppendChild(button(NextClass, "›"))
		}
		ul.AppendChild(li)
	}
	root.AppendChild(ul)
	return root
}

// WriteHTML renders the navigator's current state to w.
func (n Navigator) WriteHTML(w io.Writer) error {
	if err := html.Render(w, n.Render()); err != nil {
		return fmt.Errorf("drilldown: rendering: %w", err)
	}
	return nil
}

func element(a atom.Atom, class string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
}

func textElement(a atom.Atom, class, text string) *html.Node {
	e := element(a, class)
	e.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return e
}

func button(class, label string) *html.Node {
	b := textElement(atom.Button, class, label)
	b.Attr = append(b.Attr, html.Attribute{Key: "type", Val: "button"})
	return b
}
