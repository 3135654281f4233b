package notes

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FileStore persists the record collection as one JSON document keyed by id
// on a billy filesystem. Each write rewrites the whole file; per-operation
// atomicity comes from holding the store lock across load-modify-write.
type FileStore struct {
	mu     sync.Mutex
	fs     billy.Filesystem
	path   string
	loaded bool
	cache  map[string]Record
}

// NewFileStore constructs a file-backed store at path on fs.
func NewFileStore(fs billy.Filesystem, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// NewLocalStore places the collection in the platform data directory under
// campus/notes.json.
func NewLocalStore() *FileStore {
	return NewFileStore(osfs.New("/"), filepath.Join(xdg.DataHome, "campus", "notes.json"))
}

// All implements Store.
func (s *FileStore) All(context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	return sortedRecords(s.cache), nil
}

// Upsert implements Store.
func (s *FileStore) Upsert(_ context.Context, record Record) (Record, error) {
	if err := validate(record); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return Record{}, err
	}
	s.cache[record.ID] = record
	if err := s.flush(); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Delete implements Store.
func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if _, ok := s.cache[id]; !ok {
		return nil
	}
	delete(s.cache, id)
	return s.flush()
}

func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}
	s.cache = map[string]Record{}
	data, err := util.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.loaded = true
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, &s.cache); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *FileStore) flush() error {
	data, err := json.Marshal(s.cache)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(s.fs, s.path, data, 0o600)
}
