// Package utils
package utils

import (
	"sync"
	"time"
)

// CachedValue caches the result of a refresh function for a fixed TTL.
// Reads take the read lock on the fast path; an expired value is refreshed
// under the write lock with a re-check to avoid duplicate refreshes.
type CachedValue[T any] struct {
	mu        sync.RWMutex
	value     *T
	fetchedAt time.Time
	ttl       time.Duration
	refresh   func() *T
}

func NewCachedValue[T any](ttl time.Duration, refresh func() *T) *CachedValue[T] {
	return &CachedValue[T]{ttl: ttl, refresh: refresh}
}

func (cached *CachedValue[T]) fresh() bool {
	return cached.value != nil && time.Since(cached.fetchedAt) <= cached.ttl
}

func (cached *CachedValue[T]) GetValue() *T {
	cached.mu.RLock()
	if cached.fresh() {
		defer cached.mu.RUnlock()
		return cached.value
	}
	cached.mu.RUnlock()

	cached.mu.Lock()
	defer cached.mu.Unlock()
	if !cached.fresh() {
		cached.value = cached.refresh()
		cached.fetchedAt = time.Now()
	}
	return cached.value
}
