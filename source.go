package pubgen

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Unit is one raw content unit: a named document with front matter and body.
type Unit struct {
	Source string
	Data   []byte
}

// LoadDir reads every Markdown file below the root of fsys. Files are returned
// in lexical path order, which is the ingestion order of a build. Directories
// whose name starts with a dot are skipped.
func LoadDir(fsys fs.FS) ([]Unit, error) {
	var units []Unit
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".md", ".markdown":
		default:
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		units = append(units, Unit{Source: p, Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}
