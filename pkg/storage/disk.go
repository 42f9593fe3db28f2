package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk stores files in a local directory.
type Disk struct {
	root string
}

// NewDisk creates a Disk rooted at root, creating the directory if needed.
func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, backendError("create", root, err)
	}
	return &Disk{root: root}, nil
}

// Root returns the local directory backing the storage.
func (d *Disk) Root() string {
	return d.root
}

// Path returns the local path of the named file.
func (d *Disk) Path(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return d.path(cleaned), nil
}

func (d *Disk) path(cleaned string) string {
	if cleaned == "" {
		return d.root
	}
	return filepath.Join(d.root, filepath.FromSlash(cleaned))
}

// Read returns the contents of the named file.
func (d *Disk) Read(_ context.Context, name string) ([]byte, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.path(cleaned))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(cleaned)
		}
		return nil, backendError("read", cleaned, err)
	}
	return data, nil
}

// Write creates or replaces the named file.
func (d *Disk) Write(_ context.Context, name string, data []byte) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}
	p := d.path(cleaned)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return backendError("write", cleaned, err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return backendError("write", cleaned, err)
	}
	return nil
}

// Exists reports whether the named file exists.
func (d *Disk) Exists(_ context.Context, name string) (bool, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(d.path(cleaned))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, backendError("stat", cleaned, err)
	}
	return !info.IsDir(), nil
}

// Delete removes the named file.
func (d *Disk) Delete(_ context.Context, name string) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(d.path(cleaned)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFound(cleaned)
		}
		return backendError("delete", cleaned, err)
	}
	return nil
}

// List returns the immediate children of dir.
func (d *Disk) List(_ context.Context, dir string) ([]Entry, error) {
	cleaned, err := cleanDir(dir)
	if err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(d.path(cleaned))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, backendError("list", cleaned, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		entries = append(entries, Entry{Name: e.Name(), IsDir: e.IsDir()})
	}
	return entries, nil
}

// DeleteDirectory removes dir and everything below it. Deleting the root
// empties the storage but keeps the root directory.
func (d *Disk) DeleteDirectory(ctx context.Context, dir string) error {
	cleaned, err := cleanDir(dir)
	if err != nil {
		return err
	}
	if cleaned != "" {
		if err := os.RemoveAll(d.path(cleaned)); err != nil {
			return backendError("delete", cleaned, err)
		}
		return nil
	}

	entries, err := d.List(ctx, "")
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(d.root, e.Name)); err != nil {
			return backendError("delete", e.Name, err)
		}
	}
	return nil
}

// Sub returns a Disk rooted at dir. The directory is created on first write.
func (d *Disk) Sub(dir string) (Storage, error) {
	cleaned, err := cleanDir(dir)
	if err != nil {
		return nil, err
	}
	return &Disk{root: d.path(cleaned)}, nil
}
