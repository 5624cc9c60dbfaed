// Package bust rewrites references to local stylesheets and scripts in
// HTML files so that they carry a version query parameter. Browsers treat
// the changed URL as a new resource, so deploys don't serve stale assets
// out of long-lived caches.
package bust

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/thatguystone/cog/cfs"
)

// Bust rewrites asset references in every HTML file under a public
// directory
type Bust struct {
	Root    string // Project root; defaults to "."
	Public  string // Directory to rewrite; defaults to <Root>/public
	Version string // Fixed version token; defaults to per-asset mtimes
	Minify  bool   // Minify HTML after rewriting
	Logf    func(string, ...interface{})
}

// Stats describes what a pass did
type Stats struct {
	Scanned  int      // HTML files found
	Changed  []string // Files rewritten, relative to Root
	Duration time.Duration
}

const indent = "    "

// Do runs a rewrite pass, tagging every local .css and .js reference with
// a version parameter. Files are only written when their contents change.
func (b *Bust) Do() (Stats, error) {
	return b.run(b.busted)
}

// Strip runs the inverse pass, removing version parameters from local
// asset references
func (b *Bust) Strip() (Stats, error) {
	return b.run(b.stripped)
}

func (b *Bust) init() {
	if b.Root == "" {
		b.Root = "."
	}

	if b.Public == "" {
		b.Public = filepath.Join(b.Root, "public")
	}

	if b.Logf == nil {
		b.Logf = log.Printf
	}
}

func (b *Bust) run(emit emitFunc) (stats Stats, err error) {
	b.init()
	start := time.Now()

	exists, err := cfs.DirExists(b.Public)
	if err != nil {
		return
	}

	if !exists {
		err = NotFoundError{Path: b.relPath(b.Public)}
		return
	}

	files, err := htmlFiles(b.Public)
	if err != nil {
		return
	}

	stats.Scanned = len(files)

	for _, file := range files {
		changed, ferr := b.bustFile(file, emit)
		if ferr != nil {
			err = errors.Wrapf(ferr, "failed to rewrite %s", b.relPath(file))
			return
		}

		if changed {
			stats.Changed = append(stats.Changed, b.relPath(file))
		}
	}

	stats.Duration = time.Since(start)
	return
}

// bustFile rewrites a single HTML file, reporting whether its contents
// changed on disk
func (b *Bust) bustFile(path string, emit emitFunc) (bool, error) {
	orig, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	out := b.rewrite(filepath.Dir(path), orig, emit)

	if b.Minify {
		out, err = minifyHTML(out)
		if err != nil {
			return false, err
		}
	}

	if bytes.Equal(out, orig) {
		return false, nil
	}

	return true, writeFile(path, out)
}

func (b *Bust) relPath(path string) string {
	rel, err := filepath.Rel(b.Root, path)
	if err != nil {
		return path
	}

	return rel
}
