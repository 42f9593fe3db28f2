package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestDisk(t *testing.T) *Disk {
	t.Helper()
	d, err := NewDisk(filepath.Join(t.TempDir(), "BadRPGGame"))
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	return d
}

func TestNewDiskCreatesRoot(t *testing.T) {
	d := newTestDisk(t)

	info, err := os.Stat(d.Root())
	if err != nil {
		t.Fatalf("root should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("root should be a directory")
	}
}

func TestDiskWriteRead(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)

	save := []byte("Health: 100\nPosition: 1234 6789\n")
	if err := d.Write(ctx, "PlayerSaveData.txt", save); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := d.Read(ctx, "PlayerSaveData.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(save) {
		t.Errorf("Read = %q, want %q", got, save)
	}

	onDisk, err := os.ReadFile(filepath.Join(d.Root(), "PlayerSaveData.txt"))
	if err != nil {
		t.Fatalf("file should be on disk: %v", err)
	}
	if string(onDisk) != string(save) {
		t.Errorf("disk content = %q, want %q", onDisk, save)
	}
}

func TestDiskReadMissing(t *testing.T) {
	d := newTestDisk(t)

	_, err := d.Read(context.Background(), "missing.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDiskExists(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)

	ok, err := d.Exists(ctx, "a.txt")
	if err != nil || ok {
		t.Errorf("Exists before write = %v, %v; want false, nil", ok, err)
	}

	_ = d.Write(ctx, "a.txt", []byte("x"))
	ok, err = d.Exists(ctx, "a.txt")
	if err != nil || !ok {
		t.Errorf("Exists after write = %v, %v; want true, nil", ok, err)
	}

	_ = d.Write(ctx, "dir/b.txt", []byte("x"))
	ok, _ = d.Exists(ctx, "dir")
	if ok {
		t.Error("directories should not count as files")
	}
}

func TestDiskDelete(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)
	_ = d.Write(ctx, "a.txt", []byte("x"))

	if err := d.Delete(ctx, "a.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := d.Exists(ctx, "a.txt"); ok {
		t.Error("file should be gone")
	}
	if err := d.Delete(ctx, "a.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestDiskSubAndDirectories(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)

	levels, err := d.Sub("levels")
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if err := levels.Write(ctx, "level0.txt", []byte("0 0 0\n0 1 0\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, err := os.Stat(filepath.Join(d.Root(), "levels", "level0.txt")); err != nil {
		t.Errorf("nested file should be under the parent root: %v", err)
	}

	dirs, err := Directories(ctx, d, "")
	if err != nil {
		t.Fatalf("Directories: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != "levels" {
		t.Errorf("Directories = %v, want [levels]", dirs)
	}

	files, err := Files(ctx, d, "levels")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 1 || files[0] != "level0.txt" {
		t.Errorf("Files = %v, want [level0.txt]", files)
	}

	if err := levels.Delete(ctx, "level0.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := d.DeleteDirectory(ctx, "levels"); err != nil {
		t.Fatalf("DeleteDirectory: %v", err)
	}

	dirs, _ = Directories(ctx, d, ".")
	if len(dirs) != 0 {
		t.Errorf("expected no directories after cleanup, got %v", dirs)
	}
}

func TestDiskDeleteRoot(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)
	_ = d.Write(ctx, "a.txt", []byte("x"))
	_ = d.Write(ctx, "levels/b.txt", []byte("y"))

	if err := d.DeleteDirectory(ctx, ""); err != nil {
		t.Fatalf("DeleteDirectory: %v", err)
	}

	entries, err := d.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty storage, got %v", entries)
	}
}

func TestDiskListMissingDir(t *testing.T) {
	d := newTestDisk(t)

	entries, err := d.List(context.Background(), "nope")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestDiskInvalidPaths(t *testing.T) {
	ctx := context.Background()
	d := newTestDisk(t)

	tests := []struct {
		name string
		path string
	}{
		{"parent", "../BadRPGGame"},
		{"nested parent", "levels/../../x"},
		{"absolute", "/etc/passwd"},
		{"backslash", `levels\x`},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.Read(ctx, tt.path); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Read(%q): expected ErrInvalidPath, got %v", tt.path, err)
			}
			if err := d.Write(ctx, tt.path, nil); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Write(%q): expected ErrInvalidPath, got %v", tt.path, err)
			}
		})
	}

	if _, err := d.Sub("../other"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Sub: expected ErrInvalidPath, got %v", err)
	}
	if err := d.DeleteDirectory(ctx, "../BadRPGGame"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("DeleteDirectory: expected ErrInvalidPath, got %v", err)
	}
}

func TestCleanDir(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".", ""},
		{"./", ""},
		{"levels", "levels"},
		{"levels/", "levels"},
		{"a/./b", "a/b"},
		{"a/../b", "b"},
	}

	for _, tt := range tests {
		got, err := cleanDir(tt.in)
		if err != nil {
			t.Errorf("cleanDir(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("cleanDir(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
