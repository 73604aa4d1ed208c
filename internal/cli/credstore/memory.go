package credstore

// MemStore is an in-memory Store used by tests
type MemStore struct {
	values map[string]string
}

// NewMem creates an empty in-memory store
func NewMem() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (m *MemStore) Get(key string) (string, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemStore) Clear() error {
	m.values = make(map[string]string)
	return nil
}
