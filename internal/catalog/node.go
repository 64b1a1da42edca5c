// Package catalog models the storefront category tree handed to the
// department navigators.
package catalog

// Node is one entry in the category hierarchy.
// Children order is render order. A node is a leaf iff it has no children.
type Node struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"category_name" yaml:"category_name"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Discriminators select the "show all" label for the list this node
	// appears in.
	ServiceID string `json:"serviceId,omitempty" yaml:"serviceId,omitempty"`
	GameID    string `json:"gameId,omitempty" yaml:"gameId,omitempty"`
	SeriesID  string `json:"seriesId,omitempty" yaml:"seriesId,omitempty"`
}

// IsLeaf returns true if the node has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasChildren returns true if the node can be descended into.
func (n Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Discriminator names which domain-specific discriminator a node carries.
type Discriminator string

const (
	DiscriminatorNone    Discriminator = ""
	DiscriminatorService Discriminator = "service"
	DiscriminatorGame    Discriminator = "game"
	DiscriminatorSeries  Discriminator = "series"
)

// Discriminator returns the highest-precedence discriminator set on the node:
// series, then game, then service.
func (n Node) Discriminator() Discriminator {
	switch {
	case n.SeriesID != "":
		return DiscriminatorSeries
	case n.GameID != "":
		return DiscriminatorGame
	case n.ServiceID != "":
		return DiscriminatorService
	default:
		return DiscriminatorNone
	}
}
