package loader

import (
	"context"
	"io/fs"
)

// FSLoader reads resources from a file system, typically os.DirFS.
type FSLoader struct {
	fsys fs.FS
}

// NewFS builds a loader over fsys.
func NewFS(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Load opens path and decodes it. A missing file fails with ErrLoad.
func (l *FSLoader) Load(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return loadError(path, err.Error())
	}
	f, err := l.fsys.Open(path)
	if err != nil {
		return loadError(path, err.Error())
	}
	defer func() { _ = f.Close() }()
	return decode(path, f, v)
}
