package swipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/investmatch/backend/internal/domain"
	"github.com/investmatch/backend/internal/infrastructure/gemini"
	"github.com/investmatch/backend/internal/repository"
	"github.com/investmatch/backend/internal/usecase/quota"
	"github.com/rs/zerolog"
)

const (
	debitReasonSwipe = "swipe_over_quota"
	debitReasonUndo  = "undo_last_skip"
)

type SwipeUseCase struct {
	swipeRepo    repository.SwipeRepository
	matchRepo    repository.MatchRepository
	profileRepo  repository.ProfileRepository
	quota        *quota.UseCase
	wallet       repository.WalletGateway
	geminiClient *gemini.GeminiClient
	weights      domain.ScoreWeights
	logger       zerolog.Logger
	now          func() time.Time
}

func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	quotaUseCase *quota.UseCase,
	wallet repository.WalletGateway,
	geminiClient *gemini.GeminiClient,
	weights domain.ScoreWeights,
	logger zerolog.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		swipeRepo:    swipeRepo,
		matchRepo:    matchRepo,
		profileRepo:  profileRepo,
		quota:        quotaUseCase,
		wallet:       wallet,
		geminiClient: geminiClient,
		weights:      weights,
		logger:       logger,
		now:          time.Now,
	}
}

// SwipeRequest represents a swipe action
type SwipeRequest struct {
	TargetUserID int                `json:"target_user_id" binding:"required"`
	Action       domain.SwipeAction `json:"action" binding:"required,oneof=LIKE DISLIKE SKIP"`
}

// SwipeResponse represents swipe result
type SwipeResponse struct {
	Success       bool          `json:"success"`
	MatchCreated  bool          `json:"match_created"`
	Match         *domain.Match `json:"match,omitempty"`
	PointsCharged int           `json:"points_charged"`
}

// RecordSwipe persists the decision for (swiper, target), paying with the
// daily quota or with points once the free allowance is spent. A LIKE
// triggers match detection; a SKIP arms the undo window.
func (uc *SwipeUseCase) RecordSwipe(ctx context.Context, swiperID int, req *SwipeRequest) (*SwipeResponse, error) {
	if !req.Action.Valid() {
		return nil, domain.ErrInvalidAction
	}
	if swiperID == req.TargetUserID {
		return nil, domain.ErrInvalidTarget
	}

	swiper, err := uc.profileRepo.GetByUserID(ctx, swiperID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swiper profile: %w", err)
	}
	target, err := uc.profileRepo.GetByUserID(ctx, req.TargetUserID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrInvalidTarget
		}
		return nil, fmt.Errorf("failed to get target profile: %w", err)
	}

	// Only cross-role pairs can swipe on each other.
	if !target.Role.Swipeable() || target.Role != swiper.Role.Opposite() {
		return nil, domain.ErrInvalidTarget
	}

	check, err := uc.quota.Check(ctx, swiperID)
	if err != nil {
		return nil, err
	}

	pointsCharged := 0
	debitRef := ""
	if check.RequiresPoints && check.PointsCost > 0 {
		debitRef = uuid.NewString()
		if err := uc.wallet.Debit(ctx, swiperID, check.PointsCost, debitReasonSwipe, debitRef); err != nil {
			return nil, err
		}
		pointsCharged = check.PointsCost
	}

	swipe := &domain.Swipe{
		SwiperID:      swiperID,
		TargetID:      req.TargetUserID,
		Action:        req.Action,
		PointsCharged: pointsCharged,
	}

	if err := uc.swipeRepo.Upsert(ctx, swipe); err != nil {
		// The debit already happened; hand the points back rather than
		// losing them silently.
		uc.refund(ctx, swiperID, pointsCharged, debitRef)
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	if err := uc.quota.Confirm(ctx, swiperID); err != nil {
		// The swipe is persisted; a missed counter tick must not fail the
		// request.
		uc.logger.Warn().Err(err).Int("user_id", swiperID).Msg("quota confirm failed")
	}

	response := &SwipeResponse{
		Success:       true,
		PointsCharged: pointsCharged,
	}

	switch req.Action {
	case domain.ActionSkip:
		if err := uc.quota.RecordSkip(ctx, swiperID, req.TargetUserID, uc.now()); err != nil {
			uc.logger.Warn().Err(err).Int("user_id", swiperID).Msg("failed to arm undo window")
		}
	case domain.ActionLike:
		match, created, err := uc.detectMatch(ctx, swiper, target)
		if err != nil {
			if errors.Is(err, domain.ErrConcurrencyConflict) {
				return nil, err
			}
			// The like itself is recorded; the reciprocal check can be
			// retried by the other side's like.
			uc.logger.Error().Err(err).
				Int("swiper_id", swiperID).
				Int("target_id", req.TargetUserID).
				Msg("match detection failed")
			return response, nil
		}
		if match != nil {
			response.MatchCreated = created
			response.Match = match
		}
	}

	return response, nil
}

// detectMatch checks for a reciprocal active LIKE and creates the match for
// the canonical pair at most once. Under concurrent mutual likes the unique
// pair index arbitrates; both sides end up holding the same match.
func (uc *SwipeUseCase) detectMatch(ctx context.Context, swiper, target *domain.Profile) (*domain.Match, bool, error) {
	reciprocal, err := uc.swipeRepo.HasActiveLike(ctx, target.UserID, swiper.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check reciprocal like: %w", err)
	}
	if !reciprocal {
		return nil, false, nil
	}

	match := &domain.Match{
		User1ID:    swiper.UserID,
		User2ID:    target.UserID,
		Score:      domain.MatchScore(swiper, target, uc.weights),
		Categories: domain.SharedCategories(swiper.Categories, target.Categories),
	}

	created, err := uc.matchRepo.CreateIfAbsent(ctx, match)
	if err != nil {
		return nil, false, err
	}

	if created {
		uc.logger.Info().
			Int("match_id", match.ID).
			Int("user1_id", match.User1ID).
			Int("user2_id", match.User2ID).
			Float64("score", match.Score).
			Msg("match created")

		if uc.geminiClient != nil {
			go uc.enrichMatchInsight(match.ID, swiper, target, match.Categories)
		}
	}

	return match, created, nil
}

// refund issues the compensating credit for a debit whose swipe never made
// it to storage.
func (uc *SwipeUseCase) refund(ctx context.Context, userID, amount int, reference string) {
	if amount <= 0 {
		return
	}
	if err := uc.wallet.Credit(ctx, userID, amount, debitReasonSwipe, reference); err != nil {
		uc.logger.Error().Err(err).
			Int("user_id", userID).
			Int("amount", amount).
			Str("reference", reference).
			Msg("compensating credit failed")
	} else {
		uc.logger.Warn().
			Int("user_id", userID).
			Int("amount", amount).
			Msg("swipe failed after debit, points refunded")
	}
}

func (uc *SwipeUseCase) enrichMatchInsight(matchID int, a, b *domain.Profile, shared []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	investorName, startupName := a.DisplayName, b.DisplayName
	if a.Role == domain.RoleStartup {
		investorName, startupName = b.DisplayName, a.DisplayName
	}

	insight, err := uc.geminiClient.GenerateMatchInsight(ctx, investorName, startupName, shared)
	if err != nil || insight == "" {
		return
	}
	if err := uc.matchRepo.UpdateInsight(ctx, matchID, insight); err != nil {
		uc.logger.Warn().Err(err).Int("match_id", matchID).Msg("failed to store match insight")
	}
}
