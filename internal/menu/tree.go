package menu

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/storefront/internal/catalog"
)

var (
	branchStyle = lipgloss.NewStyle().Bold(true)
	prefixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// row is a node with its pre-computed box-drawing prefix.
type row struct {
	Node   catalog.Node
	Prefix string // e.g. "├── ", "│   └── "
	Depth  int
}

// flatten converts the tree into rows with box-drawing prefixes.
// Roots get no prefix.
func flatten(list []catalog.Node) []row {
	var rows []row
	for _, n := range list {
		rows = flattenNode(n, "", 0, false, rows)
	}
	return rows
}

func flattenNode(n catalog.Node, parentPrefix string, depth int, isLast bool, rows []row) []row {
	var prefix, childPrefix string
	if depth > 0 {
		if isLast {
			prefix = parentPrefix + "└── "
			childPrefix = parentPrefix + "    "
		} else {
			prefix = parentPrefix + "├── "
			childPrefix = parentPrefix + "│   "
		}
	}
	rows = append(rows, row{Node: n, Prefix: prefix, Depth: depth})
	for i, child := range n.Children {
		rows = flattenNode(child, childPrefix, depth+1, i == len(n.Children)-1, rows)
	}
	return rows
}

// Tree renders the whole menu for a terminal, one node per line.
// An empty model renders as "".
func Tree(model []catalog.Node) string {
	var b strings.Builder
	for i, r := range flatten(model) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(prefixStyle.Render(r.Prefix))
		if r.Node.HasChildren() {
			b.WriteString(branchStyle.Render(r.Node.Name))
		} else {
			b.WriteString(r.Node.Name)
		}
	}
	return b.String()
}
