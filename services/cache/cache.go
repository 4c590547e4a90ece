package cache

import (
	"errors"
	"time"
)

// ErrNotStored is returned by Add when the key already exists
var ErrNotStored = errors.New("cache: key already exists")

// CacheService is the subset of a key/value cache the run lock needs
type CacheService interface {
	// Add stores a value only if the key is absent, otherwise ErrNotStored
	Add(key string, value []byte, expiration time.Duration) error

	// DeleteIfValue removes key only while it still holds value. It reports
	// whether the key was removed; a missing or changed key is not an error.
	DeleteIfValue(key string, value []byte) (bool, error)
}
