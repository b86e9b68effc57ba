package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/investmatch/backend/internal/domain"
	"github.com/investmatch/backend/internal/repository"
	"github.com/rs/zerolog"
)

// candidatePoolSize caps how many profiles are pulled for scoring per
// request. Exclusions happen in the query; scoring and ordering happen here.
const candidatePoolSize = 200

type FeedUseCase struct {
	profileRepo repository.ProfileRepository
	swipeRepo   repository.SwipeRepository
	weights     domain.ScoreWeights
	logger      zerolog.Logger
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	swipeRepo repository.SwipeRepository,
	weights domain.ScoreWeights,
	logger zerolog.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
		weights:     weights,
		logger:      logger,
	}
}

// CandidateResponse represents one swipeable profile in the feed
type CandidateResponse struct {
	UserID             int         `json:"user_id"`
	DisplayName        string      `json:"display_name"`
	Role               domain.Role `json:"role"`
	Bio                *string     `json:"bio"`
	Categories         []string    `json:"categories"`
	IsVerified         bool        `json:"is_verified"`
	MatchScore         float64     `json:"match_score"`
	MatchingCategories []string    `json:"matching_categories"`
}

// GetCandidates returns up to limit profiles the user can swipe on, best
// score first. Excluded: the user, same-role and admin profiles, and any
// target the user already holds an active decision on. An undone skip puts
// the target back in the pool.
func (uc *FeedUseCase) GetCandidates(ctx context.Context, userID, limit int) ([]*CandidateResponse, error) {
	viewer, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	// Admins have no candidate pool.
	if !viewer.Role.Swipeable() {
		return []*CandidateResponse{}, nil
	}

	decided, err := uc.swipeRepo.ActiveTargetIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get decided targets: %w", err)
	}
	excluding := append(decided, userID)

	candidates, err := uc.profileRepo.ListEligible(ctx, viewer.Role.Opposite(), excluding, candidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible profiles: %w", err)
	}

	responses := make([]*CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		responses = append(responses, &CandidateResponse{
			UserID:             candidate.UserID,
			DisplayName:        candidate.DisplayName,
			Role:               candidate.Role,
			Bio:                candidate.Bio,
			Categories:         candidate.Categories,
			IsVerified:         candidate.IsVerified,
			MatchScore:         domain.CompatibilityScore(viewer, candidate, uc.weights),
			MatchingCategories: domain.SharedCategories(viewer.Categories, candidate.Categories),
		})
	}

	// Score descending, user id ascending on ties, so the order is
	// deterministic.
	sort.Slice(responses, func(i, j int) bool {
		if responses[i].MatchScore != responses[j].MatchScore {
			return responses[i].MatchScore > responses[j].MatchScore
		}
		return responses[i].UserID < responses[j].UserID
	})

	if limit > 0 && len(responses) > limit {
		responses = responses[:limit]
	}

	uc.logger.Debug().
		Int("user_id", userID).
		Int("candidates", len(responses)).
		Msg("built candidate feed")

	return responses, nil
}
