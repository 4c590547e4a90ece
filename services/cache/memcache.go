package cache

import (
	"bytes"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// DefaultTimeout bounds every memcache round trip
const DefaultTimeout = 2 * time.Second

// MemcacheService implements CacheService on a memcached server
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService creates a memcache-backed cache. A non-positive timeout
// falls back to DefaultTimeout.
func NewMemcacheService(serverAddr string, timeout time.Duration) *MemcacheService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := memcache.New(serverAddr)
	client.Timeout = timeout

	return &MemcacheService{client: client}
}

// Add stores value under key unless the key is already present
func (m *MemcacheService) Add(key string, value []byte, expiration time.Duration) error {
	err := m.client.Add(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
	if errors.Is(err, memcache.ErrNotStored) {
		return ErrNotStored
	}
	return err
}

// DeleteIfValue expires key through a compare-and-swap, so a value written by
// someone else after the read is never removed.
func (m *MemcacheService) DeleteIfValue(key string, value []byte) (bool, error) {
	item, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !bytes.Equal(item.Value, value) {
		return false, nil
	}

	// memcached drops an item with a negative expiration immediately
	item.Expiration = -1
	err = m.client.CompareAndSwap(item)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, memcache.ErrCASConflict),
		errors.Is(err, memcache.ErrCacheMiss),
		errors.Is(err, memcache.ErrNotStored):
		return false, nil
	default:
		return false, err
	}
}
