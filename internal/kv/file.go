package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"
)

// File stores each key as its own file under dir.
type File struct {
	fs  afero.Fs
	dir string
}

// NewFile returns a File backend rooted at dir on fsys, creating dir.
func NewFile(fsys afero.Fs, dir string) (*File, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dir %s: %w", dir, err)
	}
	return &File{fs: fsys, dir: dir}, nil
}

// path escapes key so that any string maps to a single file name.
func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

func (f *File) Get(key string) ([]byte, bool, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %q: %w", key, err)
	}
	return data, true, nil
}

// Set writes to a temp file and renames it over the target.
func (f *File) Set(key string, value []byte) error {
	target := f.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := f.fs.Rename(tmp, target); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("rename %q: %w", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
