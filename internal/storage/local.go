// Package storage stores uploaded product images on local disk and hands
// back the relative path that gets persisted on the product record and
// served under /uploads.
package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"shop-backend/pkg/utils"
)

type LocalStore struct {
	Dir string
}

func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir}, nil
}

// Save writes the upload under a generated name; the original filename is
// untrusted and only its extension survives.
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := utils.NewID() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	return filepath.ToSlash(filepath.Join("uploads", name)), nil
}

// Remove deletes a previously saved image given the stored reference.
func (s *LocalStore) Remove(ref string) error {
	name := filepath.Base(ref)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.Dir, name))
}
