package drilldown

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/storefront/internal/catalog"
	"github.com/smileynet/storefront/internal/nav"
)

// CursorMarker is the prefix shown on the focused row.
const CursorMarker = "▸ "

// Affordance glyphs for the terminal view.
const (
	nextGlyph = "›"
	prevGlyph = "‹"
)

var (
	parentStyle = lipgloss.NewStyle().Bold(true)
	linkStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	mutedText = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// Model is the Bubble Tea model for the drill-down navigator.
type Model struct {
	nav    Navigator
	cursor int
	keys   KeyMap
}

// New returns a Model showing the root of tree with an empty stack.
func New(tree []catalog.Node) Model {
	return Model{
		nav:  NewNavigator(tree),
		keys: DefaultKeyMap(),
	}
}

// Navigator returns the navigation state.
func (m Model) Navigator() Navigator {
	return m.nav
}

// Keys returns the key bindings, for help rendering by the owner.
func (m Model) Keys() KeyMap {
	return m.keys
}

// Cursor returns the index of the focused row in the current list.
func (m Model) Cursor() int {
	return m.cursor
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses. Transitions are synchronous.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	list := m.nav.CurrentList()

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if len(list) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(list) - 1
			}
		}

	case key.Matches(keyMsg, m.keys.Down):
		if len(list) > 0 {
			m.cursor++
			if m.cursor >= len(list) {
				m.cursor = 0
			}
		}

	case key.Matches(keyMsg, m.keys.Next):
		if focused, ok := m.focused(); ok {
			m = m.descend(focused)
		}

	case key.Matches(keyMsg, m.keys.Select):
		focused, ok := m.focused()
		if !ok {
			return m, nil
		}
		if focused.HasChildren() {
			return m.descend(focused), nil
		}
		return m, nav.Select(focused)

	case key.Matches(keyMsg, m.keys.Prev):
		m = m.ascend()

	case key.Matches(keyMsg, m.keys.All):
		if parent, ok := m.nav.ParentItem(); ok {
			return m, nav.Select(parent)
		}

	case key.Matches(keyMsg, m.keys.Close):
		return m, m.nav.Close()
	}

	return m, nil
}

func (m Model) focused() (catalog.Node, bool) {
	list := m.nav.CurrentList()
	if m.cursor < 0 || m.cursor >= len(list) {
		return catalog.Node{}, false
	}
	return list[m.cursor], true
}

func (m Model) descend(node catalog.Node) Model {
	if err := m.nav.Descend(node); err != nil {
		return m
	}
	m.cursor = 0
	return m
}

// ascend pops a parent and puts the cursor back on it.
func (m Model) ascend() Model {
	parent, err := m.nav.Ascend()
	if errors.Is(err, ErrAtRoot) {
		return m
	}
	m.cursor = 0
	for i, n := range m.nav.CurrentList() {
		if n.ID == parent.ID {
			m.cursor = i
			break
		}
	}
	return m
}

// View renders the parent header (when drilled in) and the current list.
func (m Model) View() string {
	var b strings.Builder

	if parent, ok := m.nav.ParentItem(); ok {
		b.WriteString(prevGlyph + " " + parentStyle.Render(parent.Name))
		b.WriteString("  " + linkStyle.Render(m.nav.AggregateLabel()))
		b.WriteByte('\n')
	}

	list := m.nav.CurrentList()
	if len(list) == 0 {
		b.WriteString(mutedText.Render("No departments"))
		return b.String()
	}

	for i, n := range list {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == m.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(n.Name)
		if n.HasChildren() {
			b.WriteString(" " + mutedText.Render(nextGlyph))
		}
	}
	return b.String()
}
