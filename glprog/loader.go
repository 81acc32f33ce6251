package glprog

import (
	"errors"
	"io/fs"
)

// Loader reads raw shader files by name, such as "mandelbrot.frag".
// A missing file is reported with an error satisfying errors.Is(err, fs.ErrNotExist).
type Loader interface {
	LoadSource(filename string) ([]byte, error)
}

// LoaderFunc adapts a function to the [Loader] interface.
type LoaderFunc func(filename string) ([]byte, error)

func (f LoaderFunc) LoadSource(filename string) ([]byte, error) { return f(filename) }

// FSLoader loads shader files from a file system, i.e: os.DirFS or embed.FS.
type FSLoader struct {
	FS fs.FS
}

func (l FSLoader) LoadSource(filename string) ([]byte, error) {
	if l.FS == nil {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(l.FS, filename)
}

// MultiLoader tries each loader in order and returns the first result that
// is not a not-found error. Earlier loaders override later ones.
type MultiLoader []Loader

func (ml MultiLoader) LoadSource(filename string) ([]byte, error) {
	for _, l := range ml {
		b, err := l.LoadSource(filename)
		if err == nil || !isNotFound(err) {
			return b, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: filename, Err: fs.ErrNotExist}
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
