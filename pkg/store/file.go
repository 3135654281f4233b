package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FileStorage keeps the state slot in a single JSON file on a billy
// filesystem, so tests can run against memfs while real use hits disk.
type FileStorage struct {
	mu   sync.Mutex
	fs   billy.Filesystem
	path string
}

// NewFileStorage constructs a file-backed slot at path on fs.
func NewFileStorage(fs billy.Filesystem, path string) *FileStorage {
	return &FileStorage{fs: fs, path: path}
}

// NewLocalStorage places the slot in the platform data directory
// (XDG_DATA_HOME and friends) under campus/state.json.
func NewLocalStorage() *FileStorage {
	return NewFileStorage(osfs.New("/"), filepath.Join(xdg.DataHome, "campus", "state.json"))
}

// Load implements Storage. A missing file is an empty slot, not an error.
func (s *FileStorage) Load(context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := util.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Save implements Storage.
func (s *FileStorage) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(s.fs, s.path, data, 0o600)
}

// Clear implements Storage. Clearing an empty slot succeeds.
func (s *FileStorage) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
