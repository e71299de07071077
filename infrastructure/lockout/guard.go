package lockout

import (
	"context"
	"time"

	"attendly.io/application/constants"
	"attendly.io/infrastructure/logger"
)

// Guard throttles password authentication two ways at once. Accounts
// accumulate failure counts and lock after too many in a row, and
// source addresses are capped inside a sliding window. The two
// mechanisms track separate state and neither resets the other.
//
// Attendance marking is never routed through the guard. A user whose
// password is locked out can still clock in with their face.
type Guard struct {
	Accounts     AccountStore
	Attempts     AttemptWindow
	Clock        Clock
	MaxFailures  int64
	LockDuration time.Duration
	WindowSize   time.Duration
	WindowMax    int64

	// OnLock fires once when a failure streak starts a lock. It runs on
	// its own goroutine so alerting never sits on the request path.
	OnLock func(accountID string, until time.Time)
}

func NewGuard(accounts AccountStore, attempts AttemptWindow) *Guard {
	return &Guard{
		Accounts:     accounts,
		Attempts:     attempts,
		Clock:        systemClock{},
		MaxFailures:  constants.MAX_LOGIN_FAILURES,
		LockDuration: constants.ACCOUNT_LOCK_DURATION,
		WindowSize:   constants.LOGIN_IP_WINDOW,
		WindowMax:    constants.LOGIN_IP_MAX_ATTEMPTS,
	}
}

// Locked reports whether the account currently has an active lock and
// when it expires.
func (guard *Guard) Locked(ctx context.Context, accountID string) (*time.Time, error) {
	return guard.Accounts.LockedUntil(ctx, accountID)
}

// RecordFailure counts a failed password attempt through the store's
// atomic increment. Reaching the limit starts a lock; the counter is
// cleared with it, so a failure after the lock has expired begins a
// fresh count at one rather than resuming the old streak.
func (guard *Guard) RecordFailure(ctx context.Context, accountID string) (FailureState, error) {
	if until, err := guard.Accounts.LockedUntil(ctx, accountID); err != nil {
		return FailureState{}, err
	} else if until != nil {
		// already locked; the counter stays where it is
		return FailureState{LockedUntil: until}, LockedError{Until: *until}
	}

	count, err := guard.Accounts.IncrementFailures(ctx, accountID, guard.LockDuration)
	if err != nil {
		return FailureState{}, err
	}
	state := FailureState{Count: count}
	if count < guard.MaxFailures {
		return state, nil
	}

	until := guard.Clock.Now().Add(guard.LockDuration)
	if err := guard.Accounts.Lock(ctx, accountID, guard.LockDuration); err != nil {
		return state, err
	}
	guard.Accounts.ClearFailures(ctx, accountID)
	state.LockedUntil = &until
	logger.Warning("account locked after repeated login failures", logger.LoggerOptions{
		Key:  "accountID",
		Data: accountID,
	}, logger.LoggerOptions{
		Key:  "until",
		Data: until,
	})
	// concurrent racers past the limit re-arm the same lock but only
	// the one that crossed it alerts
	if guard.OnLock != nil && count == guard.MaxFailures {
		go guard.OnLock(accountID, until)
	}
	return state, LockedError{Until: until}
}

// RecordSuccess clears the failure streak after a correct password.
func (guard *Guard) RecordSuccess(ctx context.Context, accountID string) error {
	return guard.Accounts.ClearFailures(ctx, accountID)
}

// AllowAttempt admits or rejects a login attempt from an address. The
// attempt is recorded before it is counted so two concurrent bursts
// cannot both read a pre-flood count and slip past the cap.
func (guard *Guard) AllowAttempt(ctx context.Context, ip string) error {
	now := guard.Clock.Now()
	if err := guard.Attempts.RecordAttempt(ctx, ip, now); err != nil {
		return err
	}
	count, err := guard.Attempts.CountAttempts(ctx, ip, now.Add(-guard.WindowSize))
	if err != nil {
		return err
	}
	if count > guard.WindowMax {
		logger.Warning("login attempts throttled for address", logger.LoggerOptions{
			Key:  "ip",
			Data: ip,
		})
		return RateLimitedError{RetryAfter: guard.WindowSize}
	}
	return nil
}
