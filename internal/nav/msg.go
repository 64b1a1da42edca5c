// Package nav defines the events department navigators send to the
// header that owns them.
package nav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/storefront/internal/catalog"
)

// CloseMsg asks the owner to dismiss the navigator that sent it.
type CloseMsg struct{}

// SelectMsg reports that the user picked a category.
type SelectMsg struct {
	Node catalog.Node
}

// Close returns a command that emits a single CloseMsg.
func Close() tea.Cmd {
	return func() tea.Msg { return CloseMsg{} }
}

// Select returns a command that emits a SelectMsg for n.
func Select(n catalog.Node) tea.Cmd {
	return func() tea.Msg { return SelectMsg{Node: n} }
}
