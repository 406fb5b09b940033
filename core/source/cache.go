package source

import (
	"context"
	"strings"
	"sync"
	"time"

	"dataset-reconciler/core/dataset"

	"golang.org/x/sync/singleflight"
)

// cachedDataset is one loaded dataset held by the cache.
type cachedDataset struct {
	// Dataset is the loaded dataset. Callers receive clones.
	Dataset *dataset.Dataset

	// Built is the timestamp when this entry was loaded.
	Built time.Time

	// TTL is the time-to-live for this entry.
	TTL time.Duration
}

// IsExpired returns true if this entry has expired based on its TTL.
func (c *cachedDataset) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds loaded datasets keyed by reference and read options.
type cacheStore struct {
	mu      sync.RWMutex
	entries map[string]*cachedDataset
	sf      singleflight.Group
}

func newCacheStore() *cacheStore {
	return &cacheStore{entries: make(map[string]*cachedDataset)}
}

// getOrLoad returns the cached dataset for key, or loads it with build.
// Concurrent loads of the same key share one call to build.
func (s *cacheStore) getOrLoad(ctx context.Context, key string, ttl time.Duration, build func(context.Context) (*dataset.Dataset, error)) (*dataset.Dataset, error) {
	// Fast path: check if entry exists and is fresh
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if exists && !entry.IsExpired() {
		return entry.Dataset.Clone(), nil
	}

	// Slow path: load using singleflight to prevent stampedes
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		s.mu.RLock()
		entry, exists := s.entries[key]
		s.mu.RUnlock()

		if exists && !entry.IsExpired() {
			return entry.Dataset, nil
		}

		d, err := build(ctx)
		if err != nil {
			return nil, err
		}

		if ttl > 0 {
			s.mu.Lock()
			s.entries[key] = &cachedDataset{Dataset: d, Built: time.Now(), TTL: ttl}
			s.mu.Unlock()
		}

		return d, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*dataset.Dataset).Clone(), nil
}

// invalidate removes one entry, or every entry when key is empty.
func (s *cacheStore) invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == "" {
		s.entries = make(map[string]*cachedDataset)
		return
	}
	delete(s.entries, key)
}

// invalidatePrefix removes every entry whose key starts with prefix.
func (s *cacheStore) invalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}
