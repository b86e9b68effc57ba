package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSwipeNotFound   = errors.New("swipe not found")
	ErrMatchNotFound   = errors.New("match not found")

	// ErrInvalidTarget covers self-swipes and targets that do not exist or
	// are not on the opposite side of the marketplace.
	ErrInvalidTarget = errors.New("invalid swipe target")

	// ErrInvalidAction is returned for actions outside LIKE/DISLIKE/SKIP.
	ErrInvalidAction = errors.New("invalid swipe action")

	// ErrQuotaExceeded means the daily hard limit was reached; no points
	// path remains for today.
	ErrQuotaExceeded = errors.New("daily swipe quota exceeded")

	// ErrInsufficientPoints means the wallet rejected the debit. Nothing
	// was recorded and no quota was consumed.
	ErrInsufficientPoints = errors.New("insufficient points")

	ErrNothingToUndo    = errors.New("no skip to undo")
	ErrUndoWindowExpired = errors.New("undo window expired")

	// ErrWalletUnavailable means the wallet call failed or timed out. It is
	// never treated as success; the current request fails.
	ErrWalletUnavailable = errors.New("wallet unavailable")

	// ErrConcurrencyConflict is surfaced when the uniqueness machinery
	// detects a race it cannot resolve; callers should re-read match state
	// rather than resubmit the swipe.
	ErrConcurrencyConflict = errors.New("concurrent update conflict")
)
