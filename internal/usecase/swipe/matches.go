package swipe

import (
	"context"
	"fmt"
	"time"
)

// MatchResponse represents one match from the requesting user's side
type MatchResponse struct {
	MatchID            int       `json:"match_id"`
	OtherUserID        int       `json:"other_user_id"`
	OtherDisplayName   string    `json:"other_display_name"`
	MatchScore         float64   `json:"match_score"`
	MatchingCategories []string  `json:"matching_categories"`
	Insight            *string   `json:"insight,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// GetMatches returns the user's matches, newest first.
func (uc *SwipeUseCase) GetMatches(ctx context.Context, userID int, limit, offset int) ([]*MatchResponse, error) {
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}

	responses := make([]*MatchResponse, 0, len(matches))
	for _, match := range matches {
		otherID, ok := match.OtherUserID(userID)
		if !ok {
			continue
		}

		displayName := ""
		if other, err := uc.profileRepo.GetByUserID(ctx, otherID); err == nil {
			displayName = other.DisplayName
		}

		responses = append(responses, &MatchResponse{
			MatchID:            match.ID,
			OtherUserID:        otherID,
			OtherDisplayName:   displayName,
			MatchScore:         match.Score,
			MatchingCategories: match.Categories,
			Insight:            match.Insight,
			CreatedAt:          match.CreatedAt,
		})
	}
	return responses, nil
}
