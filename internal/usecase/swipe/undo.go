package swipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/investmatch/backend/internal/domain"
)

// UndoResponse represents the result of undoing the last skip
type UndoResponse struct {
	Success          bool `json:"success"`
	RefundedTargetID int  `json:"refunded_target_id"`
	PointsCharged    int  `json:"points_charged"`
}

// UndoLastSkip reverses the user's most recent SKIP for a fee. Only the
// latest skip is undoable, once, inside the configured window, and only
// while the SKIP is still the active decision for that pair.
func (uc *SwipeUseCase) UndoLastSkip(ctx context.Context, userID int) (*UndoResponse, error) {
	state, err := uc.quota.State(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quota state: %w", err)
	}

	if !state.CanUndo || state.LastSkipTargetID == nil || state.LastSkipAt == nil {
		return nil, domain.ErrNothingToUndo
	}
	if !state.UndoEligible(uc.now(), uc.quota.UndoWindow()) {
		return nil, domain.ErrUndoWindowExpired
	}
	targetID := *state.LastSkipTargetID

	// A newer decision on the same pair supersedes the skip and kills the
	// undo.
	last, err := uc.swipeRepo.GetByUsers(ctx, userID, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrSwipeNotFound) {
			return nil, domain.ErrNothingToUndo
		}
		return nil, fmt.Errorf("failed to load last skip: %w", err)
	}
	if last.Action != domain.ActionSkip || !last.Active() {
		return nil, domain.ErrNothingToUndo
	}

	cost := uc.quota.PointsPerUndo()
	debitRef := ""
	if cost > 0 {
		debitRef = uuid.NewString()
		if err := uc.wallet.Debit(ctx, userID, cost, debitReasonUndo, debitRef); err != nil {
			return nil, err
		}
	}

	undone, err := uc.swipeRepo.MarkSkipUndone(ctx, userID, targetID)
	if err != nil {
		uc.refund(ctx, userID, cost, debitRef)
		return nil, fmt.Errorf("failed to undo skip: %w", err)
	}
	if !undone {
		// Raced with a newer decision between the check and the update.
		uc.refund(ctx, userID, cost, debitRef)
		return nil, domain.ErrNothingToUndo
	}

	if err := uc.quota.ClearUndo(ctx, userID); err != nil {
		uc.logger.Warn().Err(err).Int("user_id", userID).Msg("failed to clear undo flag")
	}

	uc.logger.Info().
		Int("user_id", userID).
		Int("target_id", targetID).
		Int("points_charged", cost).
		Msg("skip undone")

	return &UndoResponse{
		Success:          true,
		RefundedTargetID: targetID,
		PointsCharged:    cost,
	}, nil
}
