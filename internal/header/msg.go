// Package header implements the storefront header shell: it loads the
// category tree, owns the visibility of the desktop menu and the mobile
// drill-down, and reacts to the close and select events they send.
package header

import "github.com/smileynet/storefront/internal/catalog"

// Layout represents which department navigator the header uses.
type Layout int

const (
	LayoutDesktop Layout = iota // Full nested menu.
	LayoutMobile                // One level at a time.
)

// String returns the layout name.
func (l Layout) String() string {
	if l == LayoutMobile {
		return "mobile"
	}
	return "desktop"
}

// TreeLoader fetches the category tree.
type TreeLoader interface {
	Load() ([]catalog.Node, error)
}

// TreeLoaderFunc adapts a function to TreeLoader.
type TreeLoaderFunc func() ([]catalog.Node, error)

// Load calls f.
func (f TreeLoaderFunc) Load() ([]catalog.Node, error) {
	return f()
}

// TreeLoadedMsg carries the result of a TreeLoader.Load call.
type TreeLoadedMsg struct {
	Tree []catalog.Node
	Err  error
}
