package repository

import (
	"context"

	"github.com/investmatch/backend/internal/domain"
)

// ProfileRepository is the read-only view of the profile directory the
// matching engine needs. Profile writes live elsewhere.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	// ListEligible returns swipeable profiles of the given role, excluding
	// the listed user ids.
	ListEligible(ctx context.Context, role domain.Role, excluding []int, limit int) ([]*domain.Profile, error)
}
