package drilldown

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/x/ansi"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/storefront/internal/catalog"
)

// loadFixture decodes a node list from the shared fixtures directory without
// tree validation, so stack fixtures may repeat ids.
func loadFixture(t *testing.T, name string) []catalog.Node {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "fixtures", name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	var nodes []catalog.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		t.Fatalf("decoding fixture %s: %v", name, err)
	}
	return nodes
}

func renderDoc(t *testing.T, n Navigator) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := n.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parsing rendered markup: %v", err)
	}
	return doc
}

// withParentItem returns a navigator over the departments fixture whose
// stack holds the first parent-item fixture.
func withParentItem(t *testing.T) Navigator {
	t.Helper()
	n := NewNavigator(loadFixture(t, "departments.json"))
	n.SetStack(loadFixture(t, "departments_parent_item.json")[:1])
	return n
}

// containsPlain checks if s contains sub after stripping ANSI escapes.
func containsPlain(s, sub string) bool {
	return strings.Contains(ansi.Strip(s), sub)
}
