package header

import (
	"errors"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/storefront/internal/catalog"
	"github.com/smileynet/storefront/internal/nav"
)

func loadDepartments(t *testing.T) []catalog.Node {
	t.Helper()
	tree, err := catalog.Load(os.DirFS("../../fixtures"), "departments.json")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return tree
}

func fixtureLoader(t *testing.T) TreeLoader {
	tree := loadDepartments(t)
	return TreeLoaderFunc(func() ([]catalog.Node, error) { return tree, nil })
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// loadedModel returns a sized header with the fixture tree already loaded.
func loadedModel(t *testing.T, width int) Model {
	t.Helper()
	m := NewModel(WithTreeLoader(fixtureLoader(t)))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: width, Height: 30})
	m, _ = update(t, m, loadTree(m.loader)())
	return m
}

var (
	keyD   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}
	keyR   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	keyQ   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	keyEsc = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel()

	if m.SearchText() != "" {
		t.Errorf("searchText = %q, want empty", m.SearchText())
	}
	if m.ShowDepartments() {
		t.Error("showDepartments should default to false")
	}
	if m.ShowDepartmentsMobile() {
		t.Error("showDepartmentsMobile should default to false")
	}
	if m.Loading() {
		t.Error("model without loader should not be loading")
	}
	if m.Init() != nil {
		t.Error("Init() without loader should return nil")
	}
}

func TestNewModel_WithLoaderStartsLoading(t *testing.T) {
	m := NewModel(WithTreeLoader(fixtureLoader(t)))
	if !m.Loading() {
		t.Error("model with loader should start loading")
	}
	if m.Init() == nil {
		t.Error("Init() should start the load")
	}
}

func TestModel_TreeLoaded(t *testing.T) {
	m := loadedModel(t, 120)
	if m.Loading() {
		t.Error("loading should clear after TreeLoadedMsg")
	}
	if len(m.Tree()) != 3 {
		t.Errorf("tree roots = %d, want 3", len(m.Tree()))
	}
}

func TestModel_TreeLoadError(t *testing.T) {
	// Given: a loader that fails
	boom := errors.New("boom")
	m := NewModel(WithTreeLoader(TreeLoaderFunc(func() ([]catalog.Node, error) { return nil, boom })))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	// When: the load result arrives
	m, _ = update(t, m, loadTree(m.loader)())

	// Then: the error is kept and departments cannot open
	if !errors.Is(m.Err(), boom) {
		t.Errorf("Err() = %v, want %v", m.Err(), boom)
	}
	if !containsPlain(m.View(), "Press r to retry") {
		t.Errorf("view should offer retry, got:\n%s", m.View())
	}
	m, _ = update(t, m, keyD)
	if m.ShowDepartments() {
		t.Error("departments should not open after a failed load")
	}

	// When: retrying
	m, cmd := update(t, m, keyR)
	if cmd == nil || !m.Loading() {
		t.Error("r should restart the load")
	}
}

func TestModel_Layout(t *testing.T) {
	tests := []struct {
		width int
		want  Layout
	}{
		{0, LayoutDesktop},
		{40, LayoutMobile},
		{DefaultBreakpoint - 1, LayoutMobile},
		{DefaultBreakpoint, LayoutDesktop},
		{200, LayoutDesktop},
	}
	for _, tt := range tests {
		m, _ := update(t, NewModel(), tea.WindowSizeMsg{Width: tt.width, Height: 20})
		if got := m.Layout(); got != tt.want {
			t.Errorf("width %d: Layout() = %v, want %v", tt.width, got, tt.want)
		}
	}

	m, _ := update(t, NewModel(WithBreakpoint(50)), tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.Layout() != LayoutDesktop {
		t.Error("custom breakpoint should be honoured")
	}
}

func TestModel_ZeroBreakpointAlwaysDesktop(t *testing.T) {
	// Given: a header configured with breakpoint 0
	m := NewModel(WithBreakpoint(0))

	// When: the terminal is very narrow
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 20})

	// Then: the desktop layout is kept
	if m.Layout() != LayoutDesktop {
		t.Errorf("Layout() = %v, want %v", m.Layout(), LayoutDesktop)
	}

	// And: a negative width leaves the default in place
	m, _ = update(t, NewModel(WithBreakpoint(-5)), tea.WindowSizeMsg{Width: DefaultBreakpoint - 1, Height: 20})
	if m.Layout() != LayoutMobile {
		t.Errorf("Layout() = %v, want %v", m.Layout(), LayoutMobile)
	}
}

func TestModel_DesktopToggleAndClose(t *testing.T) {
	// Given: a wide header with the tree loaded
	m := loadedModel(t, 120)

	// When: pressing d
	m, _ = update(t, m, keyD)

	// Then: the desktop menu opens and renders the tree
	if !m.ShowDepartments() || m.ShowDepartmentsMobile() {
		t.Fatal("d should open the desktop menu only")
	}
	if !containsPlain(m.View(), "World of Warcraft") {
		t.Errorf("desktop view should show nested departments, got:\n%s", m.View())
	}

	// When: pressing esc
	m, cmd := update(t, m, keyEsc)
	if cmd == nil {
		t.Fatal("esc should emit a close command")
	}
	closeMsg := cmd()
	if _, ok := closeMsg.(nav.CloseMsg); !ok {
		t.Fatalf("esc produced %T, want nav.CloseMsg", closeMsg)
	}
	m, _ = update(t, m, closeMsg)

	// Then: the menu is hidden
	if m.ShowDepartments() {
		t.Error("close should hide the desktop menu")
	}
}

func TestModel_MobileReopenResetsStack(t *testing.T) {
	// Given: a narrow header with the drill-down open and drilled in
	m := loadedModel(t, 50)
	m, _ = update(t, m, keyD)
	if !m.ShowDepartmentsMobile() {
		t.Fatal("d should open the mobile drill-down")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Mobile().Navigator().Depth() != 1 {
		t.Fatalf("depth = %d, want 1", m.Mobile().Navigator().Depth())
	}

	// When: closing through the navigator and reopening
	m, cmd := update(t, m, keyEsc)
	if cmd == nil {
		t.Fatal("esc should emit a close command")
	}
	m, _ = update(t, m, cmd())
	if m.ShowDepartmentsMobile() {
		t.Fatal("close should hide the drill-down")
	}
	m, _ = update(t, m, keyD)

	// Then: the drill-down starts at the root again
	if !m.Mobile().Navigator().AtRoot() {
		t.Error("reopened drill-down should start at the root")
	}
}

func TestModel_MobileSelectRecordsAndCloses(t *testing.T) {
	m := loadedModel(t, 50)
	m, _ = update(t, m, keyD)

	// Last root is a leaf.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on a leaf should emit a select command")
	}
	m, _ = update(t, m, cmd())

	node, ok := m.Selected()
	if !ok || node.Name != "Gift Cards" {
		t.Errorf("Selected() = %+v, %v; want Gift Cards", node, ok)
	}
	if m.ShowDepartmentsMobile() {
		t.Error("selection should close the drill-down")
	}
	if !containsPlain(m.View(), "Gift Cards") {
		t.Errorf("view should show the selection, got:\n%s", m.View())
	}
}

func TestModel_QuitOnlyWhenDrilldownClosed(t *testing.T) {
	m := loadedModel(t, 50)

	m, _ = update(t, m, keyD)
	if _, cmd := update(t, m, keyQ); cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("q should go to the open drill-down, not quit")
		}
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should always quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should produce tea.QuitMsg")
	}
}

func TestModel_ResizeCarriesOpenNavigator(t *testing.T) {
	// Given: the desktop menu open
	m := loadedModel(t, 120)
	m, _ = update(t, m, keyD)

	// When: the terminal shrinks below the breakpoint
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 30})

	// Then: the drill-down is open instead
	if m.ShowDepartments() || !m.ShowDepartmentsMobile() {
		t.Error("resize should swap the desktop menu for the drill-down")
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	if got := NewModel().View(); got != "Initializing..." {
		t.Errorf("View() = %q, want %q", got, "Initializing...")
	}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var keySlash = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}

func TestModel_SearchFiltersDesktopMenu(t *testing.T) {
	// Given: a wide header with the search focused
	m := loadedModel(t, 120)
	m, cmd := update(t, m, keySlash)
	if cmd == nil {
		t.Error("/ should start the cursor blink")
	}

	// When: typing a query, which includes the departments key
	m = typeText(t, m, "gold")

	// Then: the text lands in the search, not on the bindings
	if m.SearchText() != "gold" {
		t.Errorf("SearchText() = %q, want %q", m.SearchText(), "gold")
	}
	if m.ShowDepartments() {
		t.Error("typing d into the search should not open departments")
	}

	// When: applying the search and opening the menu
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, keyD)

	// Then: only the branch leading to the match is shown
	view := m.View()
	for _, want := range []string{"Games", "World of Warcraft", "Gold"} {
		if !containsPlain(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	for _, gone := range []string{"Collectibles", "Power Leveling", "Console"} {
		if containsPlain(view, gone) {
			t.Errorf("view should not show %q:\n%s", gone, view)
		}
	}
}

func TestModel_SearchNarrowsMobileRoot(t *testing.T) {
	m := loadedModel(t, 50)
	m, _ = update(t, m, keySlash)
	m = typeText(t, m, "cards")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, keyD)

	list := m.Mobile().Navigator().CurrentList()
	if len(list) != 2 || list[0].Name != "Collectibles" || list[1].Name != "Gift Cards" {
		t.Errorf("mobile root = %+v, want Collectibles and Gift Cards", list)
	}
}

func TestModel_SearchEscClears(t *testing.T) {
	m := loadedModel(t, 120)
	m, _ = update(t, m, keySlash)
	m = typeText(t, m, "pc")

	m, _ = update(t, m, keyEsc)

	if m.SearchText() != "" {
		t.Errorf("SearchText() = %q, want empty after esc", m.SearchText())
	}
	// The search no longer has focus, so q quits.
	_, cmd := update(t, m, keyQ)
	if cmd == nil {
		t.Fatal("q should quit once the search is closed")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce tea.QuitMsg")
	}
}
