package repository

import (
	"context"

	"github.com/investmatch/backend/internal/domain"
)

type SwipeRepository interface {
	// Upsert stores the swipe as the active decision for its ordered
	// (swiper, target) pair, replacing any previous decision.
	Upsert(ctx context.Context, swipe *domain.Swipe) error
	GetByUsers(ctx context.Context, swiperID, targetID int) (*domain.Swipe, error)
	// HasActiveLike reports whether swiper currently holds an active LIKE
	// toward target.
	HasActiveLike(ctx context.Context, swiperID, targetID int) (bool, error)
	// ActiveTargetIDs lists every target the swiper has an active decision
	// on; undone skips are not included.
	ActiveTargetIDs(ctx context.Context, swiperID int) ([]int, error)
	// MarkSkipUndone flips the active SKIP on the pair to undone. It
	// reports false when no active SKIP exists, e.g. because a newer
	// decision replaced it.
	MarkSkipUndone(ctx context.Context, swiperID, targetID int) (bool, error)
}
