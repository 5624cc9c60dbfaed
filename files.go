package bust

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thatguystone/cog/cfs"
)

// htmlFiles lists every .html file under dir, in walk order. The
// extension has to match exactly: .htm and .HTML files don't count.
func htmlFiles(dir string) (files []string, err error) {
	err = filepath.WalkDir(dir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && filepath.Ext(path) == ".html" {
				files = append(files, path)
			}

			return nil
		})

	return
}

func fileExists(path string) bool {
	ok, err := cfs.FileExists(path)
	return err == nil && ok
}

func createParents(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0750)
}

// writeFile dumps c to path, creating parent directories as needed
func writeFile(path string, c []byte) error {
	err := createParents(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, c, 0640)
}
