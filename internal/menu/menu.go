// Package menu renders the desktop department menu: every level of the
// category tree at once, as nested dropdown lists.
//
// The menu holds no state. Visibility belongs to the owner, which is told to
// hide the menu through Close.
package menu

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/smileynet/storefront/internal/catalog"
	"github.com/smileynet/storefront/internal/nav"
)

// Class names of the rendered markup.
const (
	ListClass = "departments-list"
	ItemClass = "department-item"
	NameClass = "department-name"
)

// SubListClass returns the class of a nested list at the given level.
func SubListClass(level int) string {
	return fmt.Sprintf("sub-list-%d", level)
}

// Render builds the dropdown markup for model. The top list carries
// ListClass; the children of an item in a list at level L are rendered in a
// nested list classed SubListClass(L), which is itself at level L+1.
// An empty model renders nothing and Render returns nil.
func Render(model []catalog.Node, level int) *html.Node {
	if len(model) == 0 {
		return nil
	}
	if level < 1 {
		level = 1
	}
	return renderList(model, level, ListClass)
}

func renderList(list []catalog.Node, level int, class string) *html.Node {
	ul := element(atom.Ul, class)
	for _, n := range list {
		li := element(atom.Li, ItemClass)
		li.Attr = append(li.Attr,
			html.Attribute{Key: "data-id", Val: n.ID},
			html.Attribute{Key: "data-level", Val: fmt.Sprint(level)},
		)
		name := element(atom.Span, NameClass)
		name.AppendChild(&html.Node{Type: html.TextNode, Data: n.Name})
		li.AppendChild(name)
		if n.HasChildren() {
			li.AppendChild(renderList(n.Children, level+1, SubListClass(level)))
		}
		ul.AppendChild(li)
	}
	return ul
}

func element(a atom.Atom, class string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
}

// WriteHTML renders model at level and writes the markup to w.
// Nothing is written for an empty model.
func WriteHTML(w io.Writer, model []catalog.Node, level int) error {
	root := Render(model, level)
	if root == nil {
		return nil
	}
	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("menu: rendering: %w", err)
	}
	return nil
}

// DeepestLevel returns the level number of the deepest nested list Render
// produces for model at level, or 0 when no item has children.
func DeepestLevel(model []catalog.Node, level int) int {
	if level < 1 {
		level = 1
	}
	depth := catalog.Depth(model)
	if depth == 0 {
		return 0
	}
	return level + depth - 1
}

// Close asks the owner to dismiss the menu.
func Close() tea.Cmd {
	return nav.Close()
}
