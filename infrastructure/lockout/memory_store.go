package lockout

import (
	"context"
	"sync"
	"time"
)

// MemoryStore holds failure counters, locks and attempt windows in
// process. It backs tests and single-instance deployments without
// Redis. Counter increments happen under the store mutex so they are
// atomic per key, matching the Redis INCR contract.
type MemoryStore struct {
	mu sync.Mutex

	// Clock drives counter and lock expiry; tests swap it out.
	Clock Clock

	failures      map[string]int64
	failureExpiry map[string]time.Time
	locks         map[string]time.Time
	attempts      map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Clock:         systemClock{},
		failures:      map[string]int64{},
		failureExpiry: map[string]time.Time{},
		locks:         map[string]time.Time{},
		attempts:      map[string][]time.Time{},
	}
}

func (store *MemoryStore) IncrementFailures(_ context.Context, accountID string, ttl time.Duration) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	now := store.Clock.Now()
	if expiry, found := store.failureExpiry[accountID]; found && !now.Before(expiry) {
		delete(store.failures, accountID)
		delete(store.failureExpiry, accountID)
	}
	count := store.failures[accountID] + 1
	store.failures[accountID] = count
	if count == 1 {
		store.failureExpiry[accountID] = now.Add(ttl)
	}
	return count, nil
}

func (store *MemoryStore) ClearFailures(_ context.Context, accountID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.failures, accountID)
	delete(store.failureExpiry, accountID)
	return nil
}

func (store *MemoryStore) Lock(_ context.Context, accountID string, duration time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.locks[accountID] = store.Clock.Now().Add(duration)
	return nil
}

func (store *MemoryStore) LockedUntil(_ context.Context, accountID string) (*time.Time, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	until, found := store.locks[accountID]
	if !found {
		return nil, nil
	}
	if !store.Clock.Now().Before(until) {
		delete(store.locks, accountID)
		return nil, nil
	}
	expiry := until
	return &expiry, nil
}

func (store *MemoryStore) RecordAttempt(_ context.Context, ip string, at time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.attempts[ip] = append(store.attempts[ip], at)
	return nil
}

func (store *MemoryStore) CountAttempts(_ context.Context, ip string, since time.Time) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	kept := store.attempts[ip][:0]
	var count int64
	for _, at := range store.attempts[ip] {
		if at.Before(since) {
			continue
		}
		kept = append(kept, at)
		count++
	}
	store.attempts[ip] = kept
	return count, nil
}
