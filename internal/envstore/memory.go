package envstore

import (
	"sync"
)

// Memory is a Store backed by a map, it never touches the process environment
type Memory struct {
	mu   sync.Mutex
	vars map[string]string
}

var _ Store = &Memory{}

// NewMemory returns a Store holding a copy of the given variables
func NewMemory(seed Snapshot) *Memory {
	m := &Memory{vars: map[string]string{}}
	for k, v := range seed {
		m.vars[k] = v
	}
	return m
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

func (m *Memory) Unset(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vars, key)
	return nil
}

func (m *Memory) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := Snapshot{}
	for k, v := range m.vars {
		result[k] = v
	}
	return result
}

func (m *Memory) Restore(snapshot Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars = map[string]string{}
	for k, v := range snapshot {
		m.vars[k] = v
	}
	return nil
}
