package repository

import (
	"context"

	"github.com/investmatch/backend/internal/domain"
)

type MatchRepository interface {
	// CreateIfAbsent inserts the match unless one already exists for the
	// canonical pair. Exactly one caller wins under concurrent reciprocal
	// likes; the loser gets the pre-existing row back. Reports whether
	// this call created the match.
	CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error)
	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error)
	UpdateInsight(ctx context.Context, matchID int, insight string) error
}
