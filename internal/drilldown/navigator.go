// Package drilldown implements the mobile department navigator: one level
// of the category tree at a time, with a stack of visited parents so the
// user can step into a category and back out again.
package drilldown

import (
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/storefront/internal/catalog"
	"github.com/smileynet/storefront/internal/nav"
)

// Sentinel errors for rejected transitions.
var (
	ErrLeaf   = errors.New("drilldown: category has no children")
	ErrAtRoot = errors.New("drilldown: already at the root list")
)

// Aggregate labels for the "show all" link of a sublist.
const (
	LabelAll      = "All"
	LabelServices = "All Services"
	LabelGames    = "All Games"
	LabelSeries   = "All Series"
)

// Navigator holds the breadcrumb of parents visited over a read-only tree.
// The current list and parent item are always derived from the stack.
// The zero value shows an empty root.
type Navigator struct {
	root  []catalog.Node
	stack []catalog.Node // most recent last; nil reads as empty
}

// NewNavigator returns a Navigator showing the root list of tree.
func NewNavigator(tree []catalog.Node) Navigator {
	return Navigator{root: tree}
}

// Root returns the tree the navigator was built with.
func (n Navigator) Root() []catalog.Node {
	return n.root
}

// Stack returns a copy of the visited parents, most recent last.
func (n Navigator) Stack() []catalog.Node {
	return slices.Clone(n.stack)
}

// SetStack replaces the visited parents. A nil stack is the same as an
// empty one: the root list shows.
func (n *Navigator) SetStack(stack []catalog.Node) {
	n.stack = slices.Clone(stack)
}

// Depth returns the number of parents on the stack.
func (n Navigator) Depth() int {
	return len(n.stack)
}

// AtRoot returns true if the root list is showing.
func (n Navigator) AtRoot() bool {
	return len(n.stack) == 0
}

// CurrentList returns the list on screen: the root when the stack is empty,
// otherwise the children of the most recent parent.
func (n Navigator) CurrentList() []catalog.Node {
	parent, ok := n.ParentItem()
	if !ok {
		return n.root
	}
	return parent.Children
}

// ParentItem returns the most recent parent, or false at the root.
func (n Navigator) ParentItem() (catalog.Node, bool) {
	if len(n.stack) == 0 {
		return catalog.Node{}, false
	}
	return n.stack[len(n.stack)-1], true
}

// AggregateLabel returns the "show all" label for the current list.
// Only the first item is inspected; siblings are assumed to share its
// discriminator.
func (n Navigator) AggregateLabel() string {
	list := n.CurrentList()
	if len(list) == 0 {
		return LabelAll
	}
	switch list[0].Discriminator() {
	case catalog.DiscriminatorSeries:
		return LabelSeries
	case catalog.DiscriminatorGame:
		return LabelGames
	case catalog.DiscriminatorService:
		return LabelServices
	default:
		return LabelAll
	}
}

// Descend pushes node so its children become the current list.
// A leaf is rejected with ErrLeaf and the state is unchanged.
func (n *Navigator) Descend(node catalog.Node) error {
	if !node.HasChildren() {
		return fmt.Errorf("drilldown: descend into %q: %w", node.ID, ErrLeaf)
	}
	n.stack = append(slices.Clip(n.stack), node)
	return nil
}

// Ascend pops the most recent parent. At the root it returns ErrAtRoot.
// The popped parent is returned so callers can restore focus on it.
func (n *Navigator) Ascend() (catalog.Node, error) {
	parent, ok := n.ParentItem()
	if !ok {
		return catalog.Node{}, ErrAtRoot
	}
	n.stack = slices.Clip(n.stack[:len(n.stack)-1])
	return parent, nil
}

// Close asks the owner to dismiss the navigator. The stack is left as is;
// the owner builds a fresh navigator when it reopens.
func (n Navigator) Close() tea.Cmd {
	return nav.Close()
}
