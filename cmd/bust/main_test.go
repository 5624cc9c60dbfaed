package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/thatguystone/cog/check"
)

func writeTree(c *check.C, files map[string]string) string {
	root, err := os.MkdirTemp("", "bust-cmd-test-")
	c.Must.Nil(err)

	for path, content := range files {
		path = filepath.Join(root, filepath.Clean(path))

		err := os.MkdirAll(filepath.Dir(path), 0750)
		c.Must.Nil(err)

		err = os.WriteFile(path, []byte(content), 0600)
		c.Must.Nil(err)
	}

	return root
}

func run(args ...string) (string, error) {
	var buf bytes.Buffer

	app := newApp()
	app.Writer = &buf

	err := app.Run(append([]string{"bust"}, args...))
	return buf.String(), err
}

func readFile(c *check.C, path string) string {
	b, err := os.ReadFile(path)
	c.Must.Nil(err)
	return string(b)
}

func TestBust(t *testing.T) {
	c := check.New(t)

	root := writeTree(c, map[string]string{
		"public/index.html":   `<link rel="stylesheet" href="css/site.css">`,
		"public/css/site.css": `body {}`,
	})
	defer os.RemoveAll(root)

	out, err := run("--root", root, "--version", "abc123")
	c.Must.Nil(err)

	c.Equal("Updated: public/index.html\nDone.\n", out)
	c.Equal(
		`<link rel="stylesheet" href="css/site.css?v=abc123">`,
		readFile(c, filepath.Join(root, "public/index.html")))
}

func TestBustShortVersionFlag(t *testing.T) {
	c := check.New(t)

	root := writeTree(c, map[string]string{
		"public/index.html": `<script src="app.js"></script>`,
		"public/app.js":     `alert(1);`,
	})
	defer os.RemoveAll(root)

	_, err := run("--root", root, "-v", "zzz")
	c.Must.Nil(err)

	c.Equal(
		`<script src="app.js?v=zzz"></script>`,
		readFile(c, filepath.Join(root, "public/index.html")))
}

func TestBustNothingToDo(t *testing.T) {
	c := check.New(t)

	root := writeTree(c, map[string]string{
		"public/index.html": `<p>no assets</p>`,
	})
	defer os.RemoveAll(root)

	out, err := run("--root", root)
	c.Must.Nil(err)
	c.Equal("Done.\n", out)
}

func TestBustMissingPublic(t *testing.T) {
	c := check.New(t)

	root := writeTree(c, nil)
	defer os.RemoveAll(root)

	out, err := run("--root", root)
	c.Must.NotNil(err)
	c.Equal("public/ not found", err.Error())
	c.Equal("", out)
}

func TestBustManifest(t *testing.T) {
	c := check.New(t)

	root := writeTree(c, map[string]string{
		"public/index.html": `<link href="site.css">`,
		"public/site.css":   `body {}`,
	})
	defer os.RemoveAll(root)

	manifest := filepath.Join(root, "manifest.yml")

	_, err := run("--root", root, "--version", "abc123", "--manifest", manifest)
	c.Must.Nil(err)

	out := readFile(c, manifest)
	c.Contains(out, "version: abc123")
	c.Contains(out, "- public/index.html")
}

func TestBustManifestWriteFails(t *testing.T) {
	c := check.New(t)

	root := writeTree(c, map[string]string{
		"public/index.html": `<link href="site.css">`,
		"public/site.css":   `body {}`,
		"blocker":           `just a file`,
	})
	defer os.RemoveAll(root)

	manifest := filepath.Join(root, "blocker", "manifest.yml")

	out, err := run("--root", root, "--version", "abc123", "--manifest", manifest)
	c.NotNil(err)
	c.NotContains(out, "Done.")
}

func TestStripCmd(t *testing.T) {
	c := check.New(t)

	root := writeTree(c, map[string]string{
		"public/index.html": `<link href="site.css?v=123">`,
		"public/site.css":   `body {}`,
	})
	defer os.RemoveAll(root)

	out, err := run("strip", "--root", root)
	c.Must.Nil(err)

	c.Equal("Updated: public/index.html\nDone.\n", out)
	c.Equal(
		`<link href="site.css">`,
		readFile(c, filepath.Join(root, "public/index.html")))
}
