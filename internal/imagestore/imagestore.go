package imagestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps product images as files under a single managed directory.
// Files are named with a fresh UUID so uploads can never collide or
// overwrite each other.
type Store struct {
	Dir string
}

var ErrOutsideStore = errors.New("path_outside_image_store")

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save copies r into the store and returns the stored path. ext should
// include the leading dot (".png"); it is defaulted when empty.
func (s *Store) Save(r io.Reader, ext string) (string, error) {
	if ext == "" {
		ext = ".img"
	}
	path := filepath.Join(s.Dir, uuid.NewString()+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove deletes a previously stored image. Paths outside the managed
// directory are refused. A missing file is not an error; the caller only
// cares that the image is gone.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.Dir)+string(filepath.Separator)) {
		return ErrOutsideStore
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
