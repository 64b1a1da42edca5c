package header

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/smileynet/storefront/internal/catalog"
	"github.com/smileynet/storefront/internal/drilldown"
	"github.com/smileynet/storefront/internal/menu"
	"github.com/smileynet/storefront/internal/nav"
)

// Model is the root Bubble Tea model for the storefront header.
type Model struct {
	loader     TreeLoader
	log        logrus.FieldLogger
	breakpoint int

	tree    []catalog.Node
	loading bool
	err     error

	width  int
	height int

	searchText            string
	showDepartments       bool
	showDepartmentsMobile bool
	mobile                drilldown.Model
	selected              *catalog.Node

	keys    KeyMap
	spinner spinner.Model
	help    help.Model
	search  textinput.Model
}

// Option configures a Model.
type Option func(*Model)

// WithTreeLoader sets the source of the category tree.
func WithTreeLoader(l TreeLoader) Option {
	return func(m *Model) { m.loader = l }
}

// WithTree hands the model an already loaded tree.
func WithTree(tree []catalog.Node) Option {
	return func(m *Model) { m.tree = tree }
}

// WithBreakpoint sets the width below which the mobile layout is used.
// Zero keeps the desktop layout at every width. Negative widths are ignored.
func WithBreakpoint(width int) Option {
	return func(m *Model) {
		if width >= 0 {
			m.breakpoint = width
		}
	}
}

// WithLogger sets the logger for load and selection events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Model) { m.log = log }
}

// NewModel creates a header with both navigators hidden. With a TreeLoader
// the tree is fetched on Init.
func NewModel(opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	search := textinput.New()
	search.Placeholder = "Search departments..."
	search.Prompt = "/ "
	search.CharLimit = 64

	m := Model{
		log:        quiet,
		breakpoint: DefaultBreakpoint,
		keys:       DefaultKeyMap(),
		spinner:    s,
		help:       help.New(),
		search:     search,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.loading = m.loader != nil
	return m
}

// loadTree returns a tea.Cmd that calls loader.Load asynchronously and wraps
// the result in a TreeLoadedMsg.
func loadTree(loader TreeLoader) tea.Cmd {
	return func() tea.Msg {
		tree, err := loader.Load()
		return TreeLoadedMsg{Tree: tree, Err: err}
	}
}

// Init starts the tree load, if any.
func (m Model) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return tea.Batch(m.spinner.Tick, loadTree(m.loader))
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		before := m.Layout()
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.Layout() != before {
			m = m.switchLayout()
		}
		return m, nil

	case TreeLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			m.tree = nil
			m.log.WithError(msg.Err).Warn("loading departments failed")
			return m, nil
		}
		m.err = nil
		m.tree = msg.Tree
		m.log.WithFields(logrus.Fields{
			"nodes": catalog.Size(msg.Tree),
			"depth": catalog.Depth(msg.Tree),
		}).Info("departments loaded")
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case nav.CloseMsg:
		m.showDepartments = false
		m.showDepartmentsMobile = false
		m.log.Debug("departments closed")
		return m, nil

	case nav.SelectMsg:
		node := msg.Node
		m.selected = &node
		m.showDepartments = false
		m.showDepartmentsMobile = false
		m.log.WithFields(logrus.Fields{"id": node.ID, "name": node.Name}).Info("department selected")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes keys to the focused search input first, then the open
// mobile navigator, then the header bindings.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	if m.showDepartmentsMobile {
		var cmd tea.Cmd
		m.mobile, cmd = m.mobile.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Close):
		if m.showDepartments {
			return m, menu.Close()
		}

	case key.Matches(msg, m.keys.Departments):
		return m.toggleDepartments(), nil

	case key.Matches(msg, m.keys.Refresh):
		if m.loader == nil || m.loading {
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, loadTree(m.loader))
	}

	return m, nil
}

// handleSearchKey feeds the focused search input. The filter follows every
// keystroke; enter keeps it and esc clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.log.WithField("query", m.searchText).Debug("search applied")
		return m, nil
	case tea.KeyEsc:
		m.search.Blur()
		m.search.Reset()
		m.searchText = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.searchText = m.search.Value()
	return m, cmd
}

// visibleTree returns the tree narrowed by the current search text.
func (m Model) visibleTree() []catalog.Node {
	return catalog.Filter(m.tree, m.searchText)
}

// toggleDepartments flips the navigator for the current layout. Opening the
// mobile navigator always starts from a fresh stack.
func (m Model) toggleDepartments() Model {
	if m.loading || m.err != nil {
		return m
	}
	if m.Layout() == LayoutMobile {
		m.showDepartmentsMobile = !m.showDepartmentsMobile
		if m.showDepartmentsMobile {
			m.mobile = drilldown.New(m.visibleTree())
		}
		return m
	}
	m.showDepartments = !m.showDepartments
	return m
}

// switchLayout carries an open navigator over to the other layout.
func (m Model) switchLayout() Model {
	open := m.showDepartments || m.showDepartmentsMobile
	m.showDepartments = false
	m.showDepartmentsMobile = false
	if open {
		m = m.toggleDepartments()
	}
	return m
}

// Layout returns the navigator layout for the current width. Before the
// first WindowSizeMsg the desktop layout is assumed.
func (m Model) Layout() Layout {
	if m.width > 0 && m.width < m.breakpoint {
		return LayoutMobile
	}
	return LayoutDesktop
}

// Tree returns the loaded category tree.
func (m Model) Tree() []catalog.Node { return m.tree }

// Err returns the last load error.
func (m Model) Err() error { return m.err }

// Loading returns true while the tree is being fetched.
func (m Model) Loading() bool { return m.loading }

// SearchText returns the text the departments are filtered by.
func (m Model) SearchText() string { return m.searchText }

// ShowDepartments returns true while the desktop menu is open.
func (m Model) ShowDepartments() bool { return m.showDepartments }

// ShowDepartmentsMobile returns true while the mobile drill-down is open.
func (m Model) ShowDepartmentsMobile() bool { return m.showDepartmentsMobile }

// Mobile returns the mobile drill-down model.
func (m Model) Mobile() drilldown.Model { return m.mobile }

// Selected returns the last category the user picked.
func (m Model) Selected() (catalog.Node, bool) {
	if m.selected == nil {
		return catalog.Node{}, false
	}
	return *m.selected, true
}

// View renders the title line, the body and the help bar.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render("Storefront")
	if node, ok := m.Selected(); ok {
		title += "  " + mutedText.Render("› "+node.Name)
	}

	body := panelBorder().
		Width(max(m.width-borderChrome, 0)).
		Render(m.viewBody())

	parts := []string{title}
	if m.search.Focused() || m.searchText != "" {
		parts = append(parts, m.search.View())
	}
	parts = append(parts, body, m.help.View(m.helpKeys()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewBody() string {
	switch {
	case m.loading:
		return fmt.Sprintf("%s Loading departments...", m.spinner.View())
	case m.err != nil:
		return fmt.Sprintf("Error: %s\n\nPress r to retry", m.err)
	case m.showDepartmentsMobile:
		return m.mobile.View()
	case m.showDepartments:
		tree := m.visibleTree()
		if len(tree) == 0 {
			return mutedText.Render("No departments")
		}
		return menu.Tree(tree)
	default:
		return mutedText.Render("Press d to browse departments")
	}
}

func (m Model) helpKeys() help.KeyMap {
	if m.showDepartmentsMobile {
		return m.mobile.Keys()
	}
	return m.keys
}
