package session

import (
	"errors"
	"sync"

	"github.com/zalando/go-keyring"
)

// Keystore is the secure key-value store holding the current-user credential
// reference. The system implementation sits on the OS keychain; the memory
// implementation serves tests and headless environments.
type Keystore interface {
	Set(key, value string) error
	Get(key string) (string, error) // ("", nil) when the key is absent
	Delete(key string) error
}

type SystemKeystore struct {
	Service string
}

func NewSystemKeystore(service string) *SystemKeystore {
	if service == "" {
		service = "stemlearn"
	}
	return &SystemKeystore{Service: service}
}

func (s *SystemKeystore) Set(key, value string) error {
	return keyring.Set(s.Service, key, value)
}

func (s *SystemKeystore) Get(key string) (string, error) {
	value, err := keyring.Get(s.Service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SystemKeystore) Delete(key string) error {
	err := keyring.Delete(s.Service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

type MemoryKeystore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryKeystore() *MemoryKeystore {
	return &MemoryKeystore{values: make(map[string]string)}
}

func (m *MemoryKeystore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKeystore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryKeystore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
