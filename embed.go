// Package storefront provides the bundled category trees and an overlay
// filesystem that checks local disk first, falling back to embedded.
package storefront

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultCatalog is the name of the bundled category tree.
const DefaultCatalog = "departments.json"

//go:embed fixtures/*.json
var rawFixtures embed.FS

// Fixtures is the embedded fixtures filesystem with the "fixtures/" prefix stripped.
var Fixtures = mustSub(rawFixtures, "fixtures")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS returns a filesystem that checks localDir on disk first,
// falling back to the embedded filesystem for files not found locally.
func OverlayFS(localDir string, embedded fs.FS) fs.FS {
	return overlayFS{localDir: localDir, embedded: embedded}
}

type overlayFS struct {
	localDir string
	embedded fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if o.localDir != "" && fs.ValidPath(name) {
		f, err := os.Open(filepath.Join(o.localDir, filepath.FromSlash(name)))
		if err == nil {
			return f, nil
		}
	}
	return o.embedded.Open(name)
}
