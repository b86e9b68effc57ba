package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/investmatch/backend/internal/config"
	"github.com/investmatch/backend/internal/domain"
	"github.com/investmatch/backend/internal/repository"
	"github.com/rs/zerolog"
)

// UseCase tracks per-user daily swipe quotas. Counters reset lazily on the
// UTC date boundary; nothing runs on a schedule.
type UseCase struct {
	quotaRepo repository.QuotaRepository
	policy    *config.MatchingConfig
	logger    zerolog.Logger
	now       func() time.Time
}

func NewUseCase(quotaRepo repository.QuotaRepository, policy *config.MatchingConfig, logger zerolog.Logger) *UseCase {
	return &UseCase{
		quotaRepo: quotaRepo,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckResult tells the caller how the next action will be paid for.
type CheckResult struct {
	RequiresPoints bool `json:"requires_points"`
	PointsCost     int  `json:"points_cost"`
}

// StatusResponse is the read-only quota projection exposed to clients.
type StatusResponse struct {
	ActionsToday   int        `json:"actions_today"`
	RemainingFree  int        `json:"remaining_free"`
	DailyFreeLimit int        `json:"daily_free_limit"`
	RequiresPoints bool       `json:"requires_points"`
	PointsPerSwipe int        `json:"points_per_swipe"`
	PointsPerUndo  int        `json:"points_per_undo"`
	CanUndo        bool       `json:"can_undo"`
	LastSkipAt     *time.Time `json:"last_skip_at"`
}

// Check decides whether the user's next action is free or points-backed.
// It does not consume anything: the caller confirms the action only after
// any wallet debit and the swipe itself have gone through.
func (uc *UseCase) Check(ctx context.Context, userID int) (*CheckResult, error) {
	state, err := uc.State(ctx, userID)
	if err != nil {
		return nil, err
	}

	if uc.policy.DailyHardLimit > 0 && state.Actions >= uc.policy.DailyHardLimit {
		return nil, domain.ErrQuotaExceeded
	}

	if state.Actions < uc.policy.DailyFreeLimit {
		return &CheckResult{}, nil
	}
	return &CheckResult{
		RequiresPoints: true,
		PointsCost:     uc.policy.PointsPerSwipe,
	}, nil
}

// Confirm counts one action against today's quota. Called once the action
// is persisted; the counter only ever grows within a day.
func (uc *UseCase) Confirm(ctx context.Context, userID int) error {
	_, err := uc.quotaRepo.ConfirmAction(ctx, userID, domain.DayKey(uc.now()))
	if err != nil {
		return fmt.Errorf("failed to confirm quota action: %w", err)
	}
	return nil
}

// RecordSkip remembers the most recent skip so it can be undone.
func (uc *UseCase) RecordSkip(ctx context.Context, userID, targetID int, at time.Time) error {
	return uc.quotaRepo.SetLastSkip(ctx, userID, domain.DayKey(at), targetID, at)
}

// ClearUndo disarms the undo flag after a successful undo.
func (uc *UseCase) ClearUndo(ctx context.Context, userID int) error {
	return uc.quotaRepo.ClearUndo(ctx, userID)
}

// State returns the user's quota state as of now, with the stale-day reset
// already applied.
func (uc *UseCase) State(ctx context.Context, userID int) (domain.QuotaState, error) {
	stored, err := uc.quotaRepo.Get(ctx, userID)
	if err != nil {
		return domain.QuotaState{}, err
	}
	return stored.Effective(uc.now()), nil
}

// Status builds the quota projection for the current user.
func (uc *UseCase) Status(ctx context.Context, userID int) (*StatusResponse, error) {
	state, err := uc.State(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining := uc.policy.DailyFreeLimit - state.Actions
	if remaining < 0 {
		remaining = 0
	}

	return &StatusResponse{
		ActionsToday:   state.Actions,
		RemainingFree:  remaining,
		DailyFreeLimit: uc.policy.DailyFreeLimit,
		RequiresPoints: state.Actions >= uc.policy.DailyFreeLimit,
		PointsPerSwipe: uc.policy.PointsPerSwipe,
		PointsPerUndo:  uc.policy.PointsPerUndo,
		CanUndo:        state.UndoEligible(uc.now(), uc.policy.UndoWindow),
		LastSkipAt:     state.LastSkipAt,
	}, nil
}

// UndoWindow exposes the configured undo window.
func (uc *UseCase) UndoWindow() time.Duration {
	return uc.policy.UndoWindow
}

// PointsPerUndo exposes the configured undo price.
func (uc *UseCase) PointsPerUndo() int {
	return uc.policy.PointsPerUndo
}
