package header

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// containsPlain checks if s contains sub after stripping ANSI escapes.
func containsPlain(s, sub string) bool {
	return strings.Contains(ansi.Strip(s), sub)
}
