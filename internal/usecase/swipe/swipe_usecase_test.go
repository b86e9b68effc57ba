package swipe

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/investmatch/backend/internal/config"
	"github.com/investmatch/backend/internal/domain"
	"github.com/investmatch/backend/internal/usecase/quota"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	uc        *SwipeUseCase
	swipeRepo *fakeSwipeRepo
	matchRepo *fakeMatchRepo
	quotaRepo *fakeQuotaRepo
	wallet    *fakeWallet
}

func newTestEnv(t *testing.T, policy *config.MatchingConfig, profiles ...*domain.Profile) *testEnv {
	t.Helper()
	if policy == nil {
		policy = &config.MatchingConfig{
			DailyFreeLimit:        10,
			DailyHardLimit:        100,
			PointsPerSwipe:        5,
			PointsPerUndo:         10,
			UndoWindow:            5 * time.Minute,
			CategoryOverlapWeight: 10,
			VerifiedBonusWeight:   15,
			ActivityWeight:        25,
		}
	}

	swipeRepo := newFakeSwipeRepo()
	matchRepo := newFakeMatchRepo()
	quotaRepo := newFakeQuotaRepo()
	wallet := newFakeWallet()
	quotaUseCase := quota.NewUseCase(quotaRepo, policy, zerolog.Nop())

	uc := NewSwipeUseCase(
		swipeRepo, matchRepo, newFakeProfileRepo(profiles...),
		quotaUseCase, wallet, nil,
		policy.ScoreWeights(), zerolog.Nop(),
	)

	return &testEnv{
		uc:        uc,
		swipeRepo: swipeRepo,
		matchRepo: matchRepo,
		quotaRepo: quotaRepo,
		wallet:    wallet,
	}
}

func investor(userID int, categories ...string) *domain.Profile {
	return &domain.Profile{
		UserID:      userID,
		Role:        domain.RoleInvestor,
		DisplayName: fmt.Sprintf("Investor %d", userID),
		Categories:  categories,
	}
}

func startup(userID int, categories ...string) *domain.Profile {
	return &domain.Profile{
		UserID:      userID,
		Role:        domain.RoleStartup,
		DisplayName: fmt.Sprintf("Startup %d", userID),
		Categories:  categories,
	}
}

func like(targetID int) *SwipeRequest {
	return &SwipeRequest{TargetUserID: targetID, Action: domain.ActionLike}
}

func TestRecordSwipeValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil,
		investor(1), investor(2), startup(3),
		&domain.Profile{UserID: 9, Role: domain.RoleAdmin, DisplayName: "Admin"},
	)

	t.Run("self swipe", func(t *testing.T) {
		_, err := env.uc.RecordSwipe(ctx, 1, like(1))
		assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	})

	t.Run("same role target", func(t *testing.T) {
		_, err := env.uc.RecordSwipe(ctx, 1, like(2))
		assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	})

	t.Run("admin target", func(t *testing.T) {
		_, err := env.uc.RecordSwipe(ctx, 1, like(9))
		assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	})

	t.Run("nonexistent target", func(t *testing.T) {
		_, err := env.uc.RecordSwipe(ctx, 1, like(404))
		assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	})

	t.Run("invalid action", func(t *testing.T) {
		_, err := env.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetUserID: 3, Action: "POKE"})
		assert.ErrorIs(t, err, domain.ErrInvalidAction)
	})

	t.Run("nothing was recorded", func(t *testing.T) {
		ids, err := env.swipeRepo.ActiveTargetIDs(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestMutualLikeCreatesSingleMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("second like completes the match", func(t *testing.T) {
		env := newTestEnv(t, nil,
			investor(1, "fintech", "ai"), startup(2, "fintech", "saas"))

		first, err := env.uc.RecordSwipe(ctx, 1, like(2))
		require.NoError(t, err)
		assert.False(t, first.MatchCreated)
		assert.Nil(t, first.Match)

		second, err := env.uc.RecordSwipe(ctx, 2, like(1))
		require.NoError(t, err)
		assert.True(t, second.MatchCreated)
		require.NotNil(t, second.Match)
		assert.Equal(t, 1, env.matchRepo.count())

		// Canonical pair order.
		assert.Equal(t, 1, second.Match.User1ID)
		assert.Equal(t, 2, second.Match.User2ID)
		assert.Equal(t, []string{"fintech"}, second.Match.Categories)

		// Symmetric score, independent of like order.
		a := investor(1, "fintech", "ai")
		b := startup(2, "fintech", "saas")
		weights := domain.ScoreWeights{CategoryOverlap: 10, VerifiedBonus: 15, Activity: 25}
		assert.Equal(t, domain.MatchScore(a, b, weights), second.Match.Score)
	})

	t.Run("reversed order gives the same result", func(t *testing.T) {
		env := newTestEnv(t, nil, investor(1), startup(2))

		_, err := env.uc.RecordSwipe(ctx, 2, like(1))
		require.NoError(t, err)
		result, err := env.uc.RecordSwipe(ctx, 1, like(2))
		require.NoError(t, err)

		assert.True(t, result.MatchCreated)
		assert.Equal(t, 1, env.matchRepo.count())
	})

	t.Run("re-like is idempotent", func(t *testing.T) {
		env := newTestEnv(t, nil, investor(1), startup(2))

		_, err := env.uc.RecordSwipe(ctx, 2, like(1))
		require.NoError(t, err)
		first, err := env.uc.RecordSwipe(ctx, 1, like(2))
		require.NoError(t, err)
		require.True(t, first.MatchCreated)

		again, err := env.uc.RecordSwipe(ctx, 1, like(2))
		require.NoError(t, err)
		assert.False(t, again.MatchCreated)
		require.NotNil(t, again.Match)
		assert.Equal(t, first.Match.ID, again.Match.ID)
		assert.Equal(t, 1, env.matchRepo.count())
	})

	t.Run("dislike never matches", func(t *testing.T) {
		env := newTestEnv(t, nil, investor(1), startup(2))

		_, err := env.uc.RecordSwipe(ctx, 2, like(1))
		require.NoError(t, err)
		result, err := env.uc.RecordSwipe(ctx, 1,
			&SwipeRequest{TargetUserID: 2, Action: domain.ActionDislike})
		require.NoError(t, err)

		assert.False(t, result.MatchCreated)
		assert.Equal(t, 0, env.matchRepo.count())
	})
}

func TestQuotaOverflowChargesPoints(t *testing.T) {
	ctx := context.Background()
	profiles := []*domain.Profile{investor(1)}
	for i := 0; i < 12; i++ {
		profiles = append(profiles, startup(100+i))
	}
	env := newTestEnv(t, nil, profiles...)
	env.wallet.balances[1] = 5

	// Burn the 10 free actions.
	for i := 0; i < 10; i++ {
		result, err := env.uc.RecordSwipe(ctx, 1, like(100+i))
		require.NoError(t, err)
		assert.Equal(t, 0, result.PointsCharged)
	}
	assert.Empty(t, env.wallet.debits)

	// The 11th swipe rides on points.
	result, err := env.uc.RecordSwipe(ctx, 1, like(110))
	require.NoError(t, err)
	assert.Equal(t, 5, result.PointsCharged)
	require.Len(t, env.wallet.debits, 1)
	assert.Equal(t, 5, env.wallet.debits[0].amount)
	assert.NotEmpty(t, env.wallet.debits[0].reference)
	assert.Equal(t, 0, env.wallet.balances[1])

	// The 12th has no points behind it: nothing is recorded, nothing is
	// counted.
	_, err = env.uc.RecordSwipe(ctx, 1, like(111))
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)

	state, err := env.quotaRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 11, state.Actions)

	_, err = env.swipeRepo.GetByUsers(ctx, 1, 111)
	assert.ErrorIs(t, err, domain.ErrSwipeNotFound)
}

func TestInsufficientPointsLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	policy := &config.MatchingConfig{
		DailyFreeLimit: 1,
		PointsPerSwipe: 5,
		PointsPerUndo:  10,
		UndoWindow:     5 * time.Minute,
	}
	env := newTestEnv(t, policy, investor(1), startup(2), startup(3))

	_, err := env.uc.RecordSwipe(ctx, 1, like(2))
	require.NoError(t, err)

	_, err = env.uc.RecordSwipe(ctx, 1, like(3))
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)

	state, err := env.quotaRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Actions)

	ids, err := env.swipeRepo.ActiveTargetIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)
}

func TestDebitRefundedWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	policy := &config.MatchingConfig{
		DailyFreeLimit: 1,
		PointsPerSwipe: 5,
		PointsPerUndo:  10,
		UndoWindow:     5 * time.Minute,
	}
	env := newTestEnv(t, policy, investor(1), startup(2), startup(3))
	env.wallet.balances[1] = 5

	_, err := env.uc.RecordSwipe(ctx, 1, like(2))
	require.NoError(t, err)

	env.swipeRepo.upsertErr = errors.New("storage down")
	_, err = env.uc.RecordSwipe(ctx, 1, like(3))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInsufficientPoints)

	// The debit was compensated, no silent point loss.
	require.Len(t, env.wallet.credits, 1)
	assert.Equal(t, 5, env.wallet.credits[0].amount)
	assert.Equal(t, env.wallet.debits[0].reference, env.wallet.credits[0].reference)
	assert.Equal(t, 5, env.wallet.balances[1])

	state, err := env.quotaRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Actions)
}

func TestWalletUnavailableFailsTheSwipe(t *testing.T) {
	ctx := context.Background()
	policy := &config.MatchingConfig{
		DailyFreeLimit: 1,
		PointsPerSwipe: 5,
		PointsPerUndo:  10,
		UndoWindow:     5 * time.Minute,
	}
	env := newTestEnv(t, policy, investor(1), startup(2), startup(3))

	_, err := env.uc.RecordSwipe(ctx, 1, like(2))
	require.NoError(t, err)

	env.wallet.failWith = domain.ErrWalletUnavailable
	_, err = env.uc.RecordSwipe(ctx, 1, like(3))
	assert.ErrorIs(t, err, domain.ErrWalletUnavailable)

	_, err = env.swipeRepo.GetByUsers(ctx, 1, 3)
	assert.ErrorIs(t, err, domain.ErrSwipeNotFound)
}

func TestHardLimitStopsPaidSwipes(t *testing.T) {
	ctx := context.Background()
	policy := &config.MatchingConfig{
		DailyFreeLimit: 1,
		DailyHardLimit: 2,
		PointsPerSwipe: 5,
		PointsPerUndo:  10,
		UndoWindow:     5 * time.Minute,
	}
	env := newTestEnv(t, policy, investor(1), startup(2), startup(3), startup(4))
	env.wallet.balances[1] = 100

	_, err := env.uc.RecordSwipe(ctx, 1, like(2))
	require.NoError(t, err)
	_, err = env.uc.RecordSwipe(ctx, 1, like(3))
	require.NoError(t, err)

	_, err = env.uc.RecordSwipe(ctx, 1, like(4))
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	// Points were never touched for the rejected swipe.
	assert.Equal(t, 95, env.wallet.balances[1])
}

func TestSkipArmsUndoState(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil, investor(1), startup(2))

	result, err := env.uc.RecordSwipe(ctx, 1,
		&SwipeRequest{TargetUserID: 2, Action: domain.ActionSkip})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.MatchCreated)

	state, err := env.quotaRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, state.CanUndo)
	require.NotNil(t, state.LastSkipTargetID)
	assert.Equal(t, 2, *state.LastSkipTargetID)
	require.NotNil(t, state.LastSkipAt)
}

func TestGetMatches(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil,
		investor(1, "fintech"), startup(2, "fintech"), startup(3, "fintech"))

	_, err := env.uc.RecordSwipe(ctx, 2, like(1))
	require.NoError(t, err)
	_, err = env.uc.RecordSwipe(ctx, 1, like(2))
	require.NoError(t, err)

	_, err = env.uc.RecordSwipe(ctx, 3, like(1))
	require.NoError(t, err)
	_, err = env.uc.RecordSwipe(ctx, 1, like(3))
	require.NoError(t, err)

	matches, err := env.uc.GetMatches(ctx, 1, 50, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, match := range matches {
		assert.NotEqual(t, 1, match.OtherUserID)
		assert.NotEmpty(t, match.OtherDisplayName)
		assert.Equal(t, []string{"fintech"}, match.MatchingCategories)
	}

	// Each side sees the same match.
	theirMatches, err := env.uc.GetMatches(ctx, 2, 50, 0)
	require.NoError(t, err)
	require.Len(t, theirMatches, 1)
	assert.Equal(t, 1, theirMatches[0].OtherUserID)
}
