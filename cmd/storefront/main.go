package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/smileynet/storefront"
	"github.com/smileynet/storefront/internal/catalog"
	"github.com/smileynet/storefront/internal/config"
	"github.com/smileynet/storefront/internal/drilldown"
	"github.com/smileynet/storefront/internal/header"
	"github.com/smileynet/storefront/internal/logging"
	"github.com/smileynet/storefront/internal/menu"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for storefront.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Menu    MenuCmd          `cmd:"" help:"Render the desktop department menu."`
	Drill   DrillCmd         `cmd:"" help:"Show one level of the department tree."`
	Browse  BrowseCmd        `cmd:"" help:"Open the interactive storefront header."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/storefront/config.yaml"),
		".storefront/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// catalogLoader reads the category tree named by the config. It satisfies
// header.TreeLoader.
type catalogLoader struct {
	fsys fs.FS
	name string
	log  logrus.FieldLogger
}

// Load reads and validates the tree, logging its shape.
func (l *catalogLoader) Load() ([]catalog.Node, error) {
	tree, err := catalog.Load(l.fsys, l.name)
	if err != nil {
		return nil, err
	}
	l.log.WithFields(logrus.Fields{
		"catalog": l.name,
		"nodes":   catalog.Size(tree),
		"depth":   catalog.Depth(tree),
	}).Debug("catalog loaded")
	return tree, nil
}

// newCatalogLoader resolves where the tree lives: an explicit file, or the
// bundled tree overlaid by the local fixtures directory.
func newCatalogLoader(cfg config.Catalog, log logrus.FieldLogger) *catalogLoader {
	if cfg.Path != "" {
		return &catalogLoader{fsys: os.DirFS(filepath.Dir(cfg.Path)), name: filepath.Base(cfg.Path), log: log}
	}
	return &catalogLoader{
		fsys: storefront.OverlayFS(cfg.LocalDir, storefront.Fixtures),
		name: storefront.DefaultCatalog,
		log:  log,
	}
}

// setup loads config, applies the catalog flag and validates.
func setup(catalogPath string) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// --- Menu command ---

// MenuCmd renders every level of the tree at once.
type MenuCmd struct {
	Catalog string `help:"Category tree file (JSON or YAML)." type:"path"`
	Format  string `help:"Output format." enum:"tree,html" default:"tree"`
	Level   int    `help:"Starting sub-list level; 0 uses menu.start_level." default:"0"`
}

// Run executes the menu command.
func (c *MenuCmd) Run() error {
	cfg, err := setup(c.Catalog)
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	log, closeLog, err := logging.Open(cfg.Log.Level, cfg.Log.File, os.Stderr)
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	defer closeLog() //nolint:errcheck // best-effort on exit

	tree, err := newCatalogLoader(cfg.Catalog, log).Load()
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	level := c.Level
	if level == 0 {
		level = cfg.Menu.StartLevel
	}
	return c.run(os.Stdout, tree, level)
}

// run writes the menu for tree, enabling testable wiring.
func (c *MenuCmd) run(w io.Writer, tree []catalog.Node, level int) error {
	if c.Format == "html" {
		if err := menu.WriteHTML(w, tree, level); err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		if len(tree) > 0 {
			_, _ = fmt.Fprintln(w)
		}
		return nil
	}
	if len(tree) == 0 {
		_, _ = fmt.Fprintln(w, "No departments")
		return nil
	}
	_, _ = fmt.Fprintln(w, menu.Tree(tree))
	return nil
}

// --- Drill command ---

// DrillCmd descends through the tree along an id path and prints the list
// the mobile navigator would show there.
type DrillCmd struct {
	Catalog string   `help:"Category tree file (JSON or YAML)." type:"path"`
	Path    []string `arg:"" optional:"" help:"Category ids to descend through, outermost first."`
	Back    int      `help:"Levels to go back after descending." default:"0"`
	HTML    bool     `help:"Print the navigator markup instead of text." name:"html"`
}

// Run executes the drill command.
func (c *DrillCmd) Run() error {
	cfg, err := setup(c.Catalog)
	if err != nil {
		return fmt.Errorf("drill: %w", err)
	}
	log, closeLog, err := logging.Open(cfg.Log.Level, cfg.Log.File, os.Stderr)
	if err != nil {
		return fmt.Errorf("drill: %w", err)
	}
	defer closeLog() //nolint:errcheck // best-effort on exit

	tree, err := newCatalogLoader(cfg.Catalog, log).Load()
	if err != nil {
		return fmt.Errorf("drill: %w", err)
	}
	return c.run(os.Stdout, tree, log)
}

// run walks the navigator and prints its state, enabling testable wiring.
func (c *DrillCmd) run(w io.Writer, tree []catalog.Node, log logrus.FieldLogger) error {
	path, err := catalog.FindPath(tree, c.Path...)
	if err != nil {
		return fmt.Errorf("drill: %w", err)
	}
	n := drilldown.NewNavigator(tree)
	for _, node := range path {
		if err := n.Descend(node); err != nil {
			return fmt.Errorf("drill: %w", err)
		}
	}
	for i := 0; i < c.Back; i++ {
		if _, err := n.Ascend(); err != nil {
			return fmt.Errorf("drill: back %d of %d: %w", i+1, c.Back, err)
		}
	}

	if catalog.MixedDiscriminators(n.CurrentList()) {
		parent, _ := n.ParentItem()
		log.WithField("id", parent.ID).Warn("siblings carry different discriminators; label follows the first item")
	}

	if c.HTML {
		if err := n.WriteHTML(w); err != nil {
			return fmt.Errorf("drill: %w", err)
		}
		_, _ = fmt.Fprintln(w)
		return nil
	}
	writeLevel(w, n)
	return nil
}

// writeLevel prints the parent header and the current list as plain text.
func writeLevel(w io.Writer, n drilldown.Navigator) {
	if parent, ok := n.ParentItem(); ok {
		_, _ = fmt.Fprintf(w, "‹ %s  [%s]\n", parent.Name, n.AggregateLabel())
	}
	list := n.CurrentList()
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "No departments")
		return
	}
	for _, item := range list {
		line := fmt.Sprintf("  %s (%s)", item.Name, item.ID)
		if item.HasChildren() {
			line += " ›"
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

// --- Browse command ---

// BrowseCmd opens the interactive header TUI.
type BrowseCmd struct {
	Catalog string `help:"Category tree file (JSON or YAML)." type:"path"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the header TUI.
func (b *BrowseCmd) Run() error {
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !isTTY {
		return b.run(false, nil)
	}

	cfg, err := setup(b.Catalog)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	// The TUI owns the terminal; without a log file, logs are dropped.
	log, closeLog, err := logging.Open(cfg.Log.Level, cfg.Log.File, io.Discard)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer closeLog() //nolint:errcheck // best-effort on exit

	m := header.NewModel(
		header.WithTreeLoader(newCatalogLoader(cfg.Catalog, log)),
		header.WithBreakpoint(cfg.Header.Breakpoint),
		header.WithLogger(log),
	)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	return b.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (b *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// Exit codes.
const (
	exitSuccess    = 0
	exitNavigation = 1
	exitSetup      = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, drilldown.ErrLeaf) || errors.Is(err, drilldown.ErrAtRoot) {
		return exitNavigation
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("storefront"),
		kong.Description("Browse the storefront department tree."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
