package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// IndexPage is the landing page rendered by provisioning and served at /.
const IndexPage = "index.html"

// LocalStorage keeps generated static pages on the local filesystem.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (ls *LocalStorage) getPath(name string) (string, error) {
	clean := filepath.Clean(name)
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(ls.basePath, clean), nil
}

// Save writes data to a temporary file and renames it into place so readers
// never observe a partially written page.
func (ls *LocalStorage) Save(name string, data io.Reader) error {
	filePath, err := ls.getPath(name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(filePath)

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filePath)
}

func (ls *LocalStorage) Get(name string) (*os.File, error) {
	filePath, err := ls.getPath(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s not found: %w", name, err)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(name string) error {
	filePath, err := ls.getPath(name)
	if err != nil {
		return err
	}

	err = os.Remove(filePath)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
