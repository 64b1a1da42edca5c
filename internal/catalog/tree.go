package catalog

import (
	"fmt"
	"strings"
)

// CountWithChildren returns the number of items in list that have children.
func CountWithChildren(list []Node) int {
	count := 0
	for _, n := range list {
		if n.HasChildren() {
			count++
		}
	}
	return count
}

// Depth returns the number of nested child-list levels below list: 0 when
// every item is a leaf, 1 when some item has only leaf children, and so on.
func Depth(list []Node) int {
	deepest := 0
	for _, n := range list {
		if !n.HasChildren() {
			continue
		}
		if d := 1 + Depth(n.Children); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Size returns the total number of nodes in list and all descendants.
func Size(list []Node) int {
	total := 0
	Walk(list, func(Node, int) bool {
		total++
		return true
	})
	return total
}

// Walk visits list depth-first in render order. depth is 0 for items of
// list itself. Returning false from fn skips the node's children.
func Walk(list []Node, fn func(n Node, depth int) bool) {
	walk(list, 0, fn)
}

func walk(list []Node, depth int, fn func(Node, int) bool) {
	for _, n := range list {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// FindPath resolves a sequence of ids, each one a child of the previous,
// starting from list. It returns the nodes along the path.
func FindPath(list []Node, ids ...string) ([]Node, error) {
	path := make([]Node, 0, len(ids))
	current := list
	for _, id := range ids {
		n, ok := find(current, id)
		if !ok {
			return nil, fmt.Errorf("catalog: id %q: %w", id, ErrNotFound)
		}
		path = append(path, n)
		current = n.Children
	}
	return path, nil
}

func find(list []Node, id string) (Node, bool) {
	for _, n := range list {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// MixedDiscriminators returns true if the items of list do not all carry the
// same discriminator. Navigators label a list from its first item only, so
// such lists get a label that does not fit every sibling.
func MixedDiscriminators(list []Node) bool {
	if len(list) < 2 {
		return false
	}
	first := list[0].Discriminator()
	for _, n := range list[1:] {
		if n.Discriminator() != first {
			return true
		}
	}
	return false
}

// Filter returns the nodes of list whose names contain query, case
// insensitively, along with their ancestors. A matching node keeps all of
// its children; an ancestor keeps only the branches that lead to a match.
// An empty query returns list unchanged. list itself is never modified.
func Filter(list []Node, query string) []Node {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	return filter(list, query)
}

func filter(list []Node, query string) []Node {
	var out []Node
	for _, n := range list {
		if strings.Contains(strings.ToLower(n.Name), query) {
			out = append(out, n)
			continue
		}
		if children := filter(n.Children, query); len(children) > 0 {
			n.Children = children
			out = append(out, n)
		}
	}
	return out
}
