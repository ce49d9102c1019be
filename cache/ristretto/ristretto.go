package ristretto

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/modworks/modserve/cache"
)

type Cache[K ristretto.Key, V any] struct {
	cache *ristretto.Cache[K, V]
}

func (rc *Cache[K, V]) Get(key K) (V, bool) {
	return rc.cache.Get(key)
}

func (rc *Cache[K, V]) Set(key K, value V, cost int64) bool {
	ok := rc.cache.Set(key, value, cost)
	// Sets are buffered; wait so a following Get observes the value.
	rc.cache.Wait()
	return ok
}

func (rc *Cache[K, V]) SetWithTTL(key K, value V, cost int64, ttl time.Duration) bool {
	ok := rc.cache.SetWithTTL(key, value, cost, ttl)
	rc.cache.Wait()
	return ok
}

func (rc *Cache[K, V]) Del(key K) {
	rc.cache.Del(key)
}

func New[K interface {
	ristretto.Key
	comparable
}, V any]() (cache.Cache[K, V], error) {
	c, err := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters: 1e4,     // number of keys to track frequency of
		MaxCost:     1 << 28, // maximum cost of cache (256MB)
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}

	return &Cache[K, V]{cache: c}, nil
}
