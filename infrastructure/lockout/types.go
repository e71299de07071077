package lockout

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAccountLocked   = errors.New("account is temporarily locked")
	ErrTooManyAttempts = errors.New("too many attempts from this address")
)

// LockedError reports an active account lock and when it lifts. It
// matches ErrAccountLocked under errors.Is so callers that only care
// about the category keep working.
type LockedError struct {
	Until time.Time
}

func (e LockedError) Error() string { return ErrAccountLocked.Error() }

func (e LockedError) Is(target error) bool { return target == ErrAccountLocked }

// RateLimitedError reports a throttled address and how long it should
// back off. RetryAfter is the full window, the worst case.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string { return ErrTooManyAttempts.Error() }

func (e RateLimitedError) Is(target error) bool { return target == ErrTooManyAttempts }

// FailureState is what a recorded failure left behind, handed back so
// the caller can mirror it onto the account record.
type FailureState struct {
	Count       int64
	LockedUntil *time.Time
}

// AccountStore persists per-account failure counts and locks. The
// counter update must be atomic per key; the guard never reads a count
// to write it back, so concurrent failures cannot overwrite each other.
type AccountStore interface {
	// IncrementFailures adds one to the account's failure counter and
	// returns the new total. A fresh counter expires after ttl.
	IncrementFailures(ctx context.Context, accountID string, ttl time.Duration) (int64, error)
	ClearFailures(ctx context.Context, accountID string) error
	// Lock starts a lock lasting the given duration.
	Lock(ctx context.Context, accountID string, duration time.Duration) error
	// LockedUntil reports when the active lock expires, nil when the
	// account is not locked. An expired lock reads as unlocked.
	LockedUntil(ctx context.Context, accountID string) (*time.Time, error)
}

// AttemptWindow records attempts per source address and counts how
// many fall inside a sliding window.
type AttemptWindow interface {
	RecordAttempt(ctx context.Context, ip string, at time.Time) error
	CountAttempts(ctx context.Context, ip string, since time.Time) (int64, error)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
