package router

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFileNotFound = fmt.Errorf("file not found")
	ErrInvalidName  = fmt.Errorf("invalid file name")
)

// FileStore is the storage behind the /files/ route.
type FileStore interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

type dirStore struct {
	dir string
}

// NewDirStore serves files from dir. Names may not escape dir.
func NewDirStore(dir string) FileStore {
	return &dirStore{dir: filepath.Clean(dir)}
}

func (ds *dirStore) resolve(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	full := filepath.Join(ds.dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(ds.dir, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidName
	}
	return full, nil
}

func (ds *dirStore) Read(name string) ([]byte, error) {
	path, err := ds.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (ds *dirStore) Write(name string, data []byte) error {
	path, err := ds.resolve(name)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
