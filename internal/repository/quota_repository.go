package repository

import (
	"context"
	"time"

	"github.com/investmatch/backend/internal/domain"
)

// QuotaRepository stores per-user daily quota state. Implementations keep
// whatever day was last written; callers pass the state through
// domain.QuotaState.Effective to apply the lazy UTC-day reset.
type QuotaRepository interface {
	// Get returns the stored state, or a zero state when none exists.
	Get(ctx context.Context, userID int) (domain.QuotaState, error)
	// ConfirmAction counts one confirmed action for the given day,
	// atomically resetting the stored state first when it belongs to an
	// earlier day. Returns the new count.
	ConfirmAction(ctx context.Context, userID int, day string) (int, error)
	// SetLastSkip records the most recent skip and arms the undo flag.
	SetLastSkip(ctx context.Context, userID int, day string, targetID int, at time.Time) error
	// ClearUndo disarms the undo flag, leaving counters untouched.
	ClearUndo(ctx context.Context, userID int) error
}
