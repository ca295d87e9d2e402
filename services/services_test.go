package services

import (
	"errors"
	"sync"
)

// memoryStore is an in-process SessionStore for tests
type memoryStore struct {
	mu     sync.Mutex
	values map[interface{}]interface{}
	failOn string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[interface{}]interface{})}
}

func (m *memoryStore) Get(key interface{}) interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func (m *memoryStore) Set(key, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == key {
		return errors.New("store unavailable")
	}
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(key interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
