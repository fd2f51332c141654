package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Del(key string) bool
}

var _ Cache = (*FreeCache)(nil)

// FreeCache is an in-memory byte cache with zero GC overhead, safe for concurrent use.
type FreeCache struct {
	cache *freecache.Cache
}

// NewFreeCache creates a cache of the given size. freecache will not go
// below 512KB, so small sizes are rounded up by the library.
func NewFreeCache(sizeMegabytes int) *FreeCache {
	return &FreeCache{
		cache: freecache.NewCache(sizeMegabytes * megabyte),
	}
}

func (fc *FreeCache) Get(key string) ([]byte, bool) {
	val, err := fc.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores the value; ttl of zero means the entry does not expire.
func (fc *FreeCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := fc.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			return fmt.Errorf("cache set %s, entry too large: %w", key, err)
		}
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (fc *FreeCache) Del(key string) bool {
	return fc.cache.Del([]byte(key))
}
