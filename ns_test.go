package bust

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/thatguystone/cog/cfs"
	"github.com/thatguystone/cog/check"
)

type testNS struct {
	c    *check.C
	root string
}

func newTestNS(c *check.C, files map[string]string) *testNS {
	root, err := os.MkdirTemp("", "bust-test-")
	c.Must.Nil(err)

	ns := testNS{
		c:    c,
		root: root,
	}

	for path, content := range files {
		ns.writeFile(path, content)
	}

	return &ns
}

func (ns *testNS) clean() {
	err := os.RemoveAll(ns.root)
	ns.c.Nil(err)
}

func (ns *testNS) path(p string) string {
	return filepath.Join(ns.root, filepath.Clean(p))
}

func (ns *testNS) writeFile(path, content string) {
	ns.c.Helper()

	path = ns.path(path)

	err := os.MkdirAll(filepath.Dir(path), 0750)
	ns.c.Must.Nil(err)

	err = os.WriteFile(path, []byte(content), 0600)
	ns.c.Must.Nil(err)
}

func (ns *testNS) readFile(path string) string {
	ns.c.Helper()

	b, err := os.ReadFile(ns.path(path))
	ns.c.Must.Nil(err)
	return string(b)
}

// chtimes pins a file's mtime so that version tokens come out predictable
func (ns *testNS) chtimes(path string, sec int64) {
	ns.c.Helper()

	at := time.Unix(sec, 0)
	err := os.Chtimes(ns.path(path), at, at)
	ns.c.Must.Nil(err)
}

func (ns *testNS) checkFileExists(path string) {
	ns.c.Helper()

	ok, err := cfs.FileExists(ns.path(path))
	ns.c.Must.Nil(err)
	ns.c.True(ok, "expected file %q to exist", path)
}

func (ns *testNS) dumpTree() {
	ns.c.Helper()
	ns.c.Logf("Tree rooted at: %q", ns.root)

	filepath.WalkDir(ns.root,
		func(path string, d fs.DirEntry, err error) error {
			ns.c.Must.Nil(err)

			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(ns.root, path)
			ns.c.Must.Nil(err)

			ns.c.Logf("\t%s", rel)
			return nil
		})
}
