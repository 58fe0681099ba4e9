package storage

import (
	json "github.com/goccy/go-json"
	"medreminder/internal/storage/interfaces"
	"sync"
)

// MemoryStore keeps encoded documents in a map. It has the same
// copy-on-save semantics as the file store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

var _ interfaces.StoreInterface = (*MemoryStore)(nil)

func (m *MemoryStore) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *MemoryStore) Load(key string, dst any) bool {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Put stores raw bytes under key, bypassing encoding.
func (m *MemoryStore) Put(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
}
