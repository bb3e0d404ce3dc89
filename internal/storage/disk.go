package storage

import (
	"os"
	"path/filepath"
)

// DiskStore keeps blobs as flat files under a single root directory.
// Derived thumbnails live next to their source as <name>_<size>.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if it does not exist yet.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Root() string { return s.root }

// Path returns the absolute location of a blob name inside the root.
func (s *DiskStore) Path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *DiskStore) Write(name string, data []byte) error {
	return os.WriteFile(s.Path(name), data, 0o644)
}

func (s *DiskStore) Read(name string) ([]byte, error) {
	return os.ReadFile(s.Path(name))
}

func (s *DiskStore) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}
