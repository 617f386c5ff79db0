// Package images provides product image decoding, normalization, and storage.
package images

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrInvalidID rejects ids that cannot become a safe filename. Product ids
// flow in from operator CSVs and URL parameters, so the storage layer is the
// last gate against path traversal.
var ErrInvalidID = errors.New("invalid image id")

// Storage keeps product images as {id}.jpg files under one directory.
// Safe for concurrent use.
type Storage struct {
	dir string
	mu  sync.RWMutex
}

// NewStorage creates product image storage under {basePath}/products/.
func NewStorage(basePath string) (*Storage, error) {
	return NewStorageWithSubdir(basePath, "products")
}

// NewStorageWithSubdir creates image storage under {basePath}/{subdir}/.
func NewStorageWithSubdir(basePath, subdir string) (*Storage, error) {
	if basePath == "" {
		return nil, errors.New("base path cannot be empty")
	}
	if subdir == "" {
		return nil, errors.New("subdirectory cannot be empty")
	}

	dir := filepath.Join(basePath, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s directory: %w", subdir, err)
	}

	return &Storage{dir: dir}, nil
}

// Save writes image data for a product, replacing any previous image.
func (s *Storage) Save(id string, data []byte) error {
	if !validID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if len(data) == 0 {
		return errors.New("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(id), data, 0644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// Get reads a product's image bytes.
func (s *Storage) Get(id string) ([]byte, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found for %s: %w", id, err)
		}
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// Exists reports whether a product has a stored image. Invalid ids simply
// do not exist.
func (s *Storage) Exists(id string) bool {
	if !validID(id) {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Delete removes a product's image. Deleting a missing image is a no-op.
func (s *Storage) Delete(id string) error {
	if !validID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// Hash returns the hex sha256 of a product's image, used as an ETag.
func (s *Storage) Hash(id string) (string, error) {
	data, err := s.Get(id)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Path returns the filesystem path where a product's image lives. Path does
// not validate; callers reach it through operations that do.
func (s *Storage) Path(id string) string {
	return filepath.Join(s.dir, id+".jpg")
}

// validID accepts ids that map to exactly one file inside the storage
// directory.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
