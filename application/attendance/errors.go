package attendance

import "errors"

var (
	// the user has no embeddings on file. directs the caller to enrollment.
	ErrNotEnrolled = errors.New("face not enrolled")

	// a face was presented but did not clear the confidence threshold. the
	// caller may retry with a new sample.
	ErrNotVerified = errors.New("face verification failed")

	// the liveness gate rejected the sample.
	ErrNotLive = errors.New("liveness check failed")

	// invariant: one check-in and one check-out per user per day. raced
	// writes detected by the store surface as this same conflict.
	ErrAlreadyMarked = errors.New("attendance already marked for today")

	// a check-out needs the day's check-in on record first.
	ErrNotCheckedIn = errors.New("no check-in recorded for today")

	ErrNotFound     = errors.New("attendance record not found")
	ErrForbidden    = errors.New("administrator privileges required")
	ErrUserNotFound = errors.New("user not found")
)
