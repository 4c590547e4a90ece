package cache

import (
	"errors"
	"time"
)

// RunLockKey is the cache key guarding against overlapping runs
const RunLockKey = "pricewatcher:run-lock"

// ErrRunInProgress means another run currently holds the lock
var ErrRunInProgress = errors.New("another run is in progress")

// RunLock is held for the duration of one run
type RunLock struct {
	cache CacheService
	key   string
	owner string
}

// AcquireRunLock takes key for owner. The lock expires after ttl so a crashed
// run cannot block later ones forever.
func AcquireRunLock(cache CacheService, key, owner string, ttl time.Duration) (*RunLock, error) {
	err := cache.Add(key, []byte(owner), ttl)
	if errors.Is(err, ErrNotStored) {
		return nil, ErrRunInProgress
	}
	if err != nil {
		return nil, err
	}
	return &RunLock{cache: cache, key: key, owner: owner}, nil
}

// Release deletes the lock if it still belongs to this run. Ownership is
// checked and the key removed in one compare-and-swap, so a lock that expired
// and was taken by another run is left alone.
func (l *RunLock) Release() error {
	_, err := l.cache.DeleteIfValue(l.key, []byte(l.owner))
	return err
}
