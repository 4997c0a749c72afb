package uploads

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store keeps uploaded files under a single directory using random names.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes data to a new file with the given extension and returns its
// name relative to the store directory.
func (s *Store) Save(ext string, data []byte) (string, error) {
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a file saved earlier. Missing files are ignored.
func (s *Store) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
