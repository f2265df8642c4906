package filesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source reads CSV documents from a local directory.
type Source struct {
	dir   string
	files fs.FS
}

// New roots the source at dir.
func New(dir string) *Source {
	if dir == "" {
		dir = "."
	}
	return &Source{dir: dir, files: os.DirFS(dir)}
}

// FetchDocument reads <dir>/<name>. Names that escape the directory are rejected.
func (s *Source) FetchDocument(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := filepath.ToSlash(filepath.Clean(name))
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("file: invalid document name %q: %w", name, fs.ErrInvalid)
	}
	data, err := fs.ReadFile(s.files, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("file: %s not found in %s: %w", name, s.dir, err)
		}
		return "", fmt.Errorf("file: read %s: %w", name, err)
	}
	return string(data), nil
}
