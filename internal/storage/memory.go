package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"balangay/pkg/platform/sentinel"
)

// Memory is the in-memory blob store used by tests.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory constructs an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, namespace string, data io.Reader) (string, error) {
	if !KnownNamespace(namespace) {
		return "", fmt.Errorf("unknown storage namespace %q", namespace)
	}
	blob, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	path := namespace + "/" + uuid.New().String()
	m.mu.Lock()
	m.blobs[path] = blob
	m.mu.Unlock()
	return path, nil
}

func (m *Memory) Get(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[path]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]byte{}, blob...), nil
}

func (m *Memory) Exists(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[path]
	return ok, nil
}

func (m *Memory) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, path)
	return nil
}
