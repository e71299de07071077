package lockout

import (
	"context"
	"fmt"
	"time"

	"attendly.io/application/utils"
	"attendly.io/infrastructure/database/repository/cache"
)

// RedisAccountStore keeps failure counters and locks in Redis so they
// survive a restart and are shared across instances. The counter is a
// plain INCR so concurrent failures from different instances all land.
type RedisAccountStore struct{}

func failureKey(accountID string) string {
	return fmt.Sprintf("login_failures:%s", accountID)
}

func lockKey(accountID string) string {
	return fmt.Sprintf("login_lock:%s", accountID)
}

func (RedisAccountStore) IncrementFailures(_ context.Context, accountID string, ttl time.Duration) (int64, error) {
	key := failureKey(accountID)
	count := cache.Cache.IncrementField(key, 1)
	if count == 0 {
		return 0, fmt.Errorf("could not increment failure count for %s", accountID)
	}
	if count == 1 {
		cache.Cache.ExpireKey(key, ttl)
	}
	return count, nil
}

func (RedisAccountStore) ClearFailures(_ context.Context, accountID string) error {
	cache.Cache.DeleteOne(failureKey(accountID))
	return nil
}

func (RedisAccountStore) Lock(_ context.Context, accountID string, duration time.Duration) error {
	if !cache.Cache.CreateEntry(lockKey(accountID), "1", duration) {
		return fmt.Errorf("could not lock account %s", accountID)
	}
	return nil
}

// LockedUntil derives the expiry from the lock key's remaining TTL,
// so an expired lock simply reads as a missing key.
func (RedisAccountStore) LockedUntil(_ context.Context, accountID string) (*time.Time, error) {
	remaining := cache.Cache.KeyTTL(lockKey(accountID))
	if remaining == nil || *remaining <= 0 {
		return nil, nil
	}
	until := time.Now().Add(*remaining)
	return &until, nil
}

// RedisAttemptWindow keeps per-address attempts in a sorted set scored
// by unix milliseconds so the sliding window is a range count.
type RedisAttemptWindow struct{}

func attemptKey(ip string) string {
	return fmt.Sprintf("login_attempts:%s", ip)
}

func (RedisAttemptWindow) RecordAttempt(_ context.Context, ip string, at time.Time) error {
	key := attemptKey(ip)
	cache.Cache.CreateInSortedSet(key, float64(at.UnixMilli()), utils.GenerateULIDString())
	cache.Cache.ExpireKey(key, time.Hour)
	return nil
}

func (RedisAttemptWindow) CountAttempts(_ context.Context, ip string, since time.Time) (int64, error) {
	key := attemptKey(ip)
	cache.Cache.TrimSortedSetByScore(key, fmt.Sprintf("(%d", since.UnixMilli()))
	count := cache.Cache.CountSortedSetByScore(key, fmt.Sprintf("%d", since.UnixMilli()), "+inf")
	return count, nil
}
