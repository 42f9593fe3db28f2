package storage

import (
	"context"
	"errors"
	"path"
	"strings"

	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
)

// ErrNotFound is returned when a file doesn't exist.
var ErrNotFound = errors.New("storage: file not found")

// ErrInvalidPath is returned when a name escapes the storage root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Storage is the interface for game data backends.
type Storage interface {
	// Read returns the contents of the named file.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write creates or replaces the named file, creating parent
	// directories as needed.
	Write(ctx context.Context, name string, data []byte) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes the named file.
	Delete(ctx context.Context, name string) error

	// List returns the immediate children of dir ("" is the root),
	// sorted by name. A missing directory has no children.
	List(ctx context.Context, dir string) ([]Entry, error)

	// DeleteDirectory removes dir and everything below it.
	// An empty dir removes everything in the storage.
	DeleteDirectory(ctx context.Context, dir string) error

	// Sub returns a storage rooted at dir.
	Sub(dir string) (Storage, error)
}

// Entry is a child returned by List.
type Entry struct {
	Name  string
	IsDir bool
}

// Directories returns the names of the subdirectories of dir.
func Directories(ctx context.Context, s Storage, dir string) ([]string, error) {
	return filterNames(ctx, s, dir, true)
}

// Files returns the names of the files directly inside dir.
func Files(ctx context.Context, s Storage, dir string) ([]string, error) {
	return filterNames(ctx, s, dir, false)
}

func filterNames(ctx context.Context, s Storage, dir string, dirs bool) ([]string, error) {
	entries, err := s.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir == dirs {
			names = append(names, e.Name)
		}
	}
	return names, nil
}

// cleanDir normalizes a directory name. The root is "".
func cleanDir(dir string) (string, error) {
	if dir == "" || dir == "." {
		return "", nil
	}
	if strings.Contains(dir, `\`) || strings.HasPrefix(dir, "/") {
		return "", invalidPath(dir)
	}
	cleaned := path.Clean(dir)
	if cleaned == "." {
		return "", nil
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", invalidPath(dir)
	}
	return cleaned, nil
}

// cleanName normalizes a file name. Unlike directories, the root is not a
// valid file name.
func cleanName(name string) (string, error) {
	cleaned, err := cleanDir(name)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return "", invalidPath(name)
	}
	return cleaned, nil
}

func notFound(name string) error {
	return gkerrors.New("E030").
		WithDetailf("%s does not exist", name).
		Wrap(ErrNotFound)
}

func invalidPath(name string) error {
	return gkerrors.New("E031").
		WithDetailf("%q is not inside the storage root", name).
		Wrap(ErrInvalidPath)
}

func backendError(op, name string, err error) error {
	return gkerrors.New("E032").
		WithDetailf("%s %s", op, name).
		Wrap(err)
}
