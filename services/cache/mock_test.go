package cache

import (
	"bytes"
	"time"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Add(key string, value []byte, expiration time.Duration) error {
	if _, ok := m.cache[key]; ok {
		return ErrNotStored
	}
	m.cache[key] = value
	return nil
}

func (m *MockCacheService) DeleteIfValue(key string, value []byte) (bool, error) {
	current, ok := m.cache[key]
	if !ok || !bytes.Equal(current, value) {
		return false, nil
	}
	delete(m.cache, key)
	return true, nil
}
