package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Source loads a set of named schemas.
type Source interface {
	Load(ctx context.Context) (map[string]*Schema, error)
}

// FSSource loads every .json, .yaml and .yml file of one directory of a file
// system. The schema name is the file name without extension. Subdirectories
// and other files are ignored.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource creates a source reading dir inside fsys (e.g. an embed.FS).
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

// NewLocalSource creates a source reading a directory of the local file system.
func NewLocalSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), ".")
}

func (s *FSSource) Load(ctx context.Context) (map[string]*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSource, err)
	}

	schemas := make(map[string]*Schema)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}
		if entry.IsDir() || NewParserForFile(entry.Name()) == nil {
			continue
		}

		filename := path.Join(s.dir, entry.Name())
		content, err := fs.ReadFile(s.fsys, filename)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadSource, err)
		}

		sch, err := ParseFile(ctx, entry.Name(), content)
		if err != nil {
			return nil, err
		}
		if err := addSchema(schemas, entry.Name(), sch); err != nil {
			return nil, err
		}
	}
	return schemas, nil
}

// Name derives a schema name from a file name: base name without extension.
func Name(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

func addSchema(schemas map[string]*Schema, filename string, sch *Schema) error {
	name := Name(filename)
	if _, exists := schemas[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSchema, name)
	}
	schemas[name] = sch
	return nil
}
