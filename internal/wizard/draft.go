package wizard

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// DraftKey is the fixed name the in-progress form is stored under. One
// draft exists at a time; every save overwrites the previous blob.
const DraftKey = "mokshamaa-inquiry-form"

// ErrDraftNotFound is returned by a Store when no draft exists for a key.
var ErrDraftNotFound = errors.New("draft not found")

// Store persists draft blobs. Implementations stand in for whatever local
// storage the embedding surface has; the wizard never touches storage
// directly so it can be tested against a fake.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Clear(key string) error
}

// MemoryStore is an in-memory Store, used in tests and ephemeral sessions.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrDraftNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryStore) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob := make([]byte, len(data))
	copy(blob, data)
	m.blobs[key] = blob
	return nil
}

func (m *MemoryStore) Clear(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// FileStore keeps drafts as JSON files under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrDraftNotFound
	}
	return data, err
}

func (f *FileStore) Save(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o644)
}

func (f *FileStore) Clear(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
