package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/investmatch/backend/internal/domain"
	"github.com/investmatch/backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error) {
	user1ID, user2ID := domain.CanonicalPair(match.User1ID, match.User2ID)
	match.User1ID = user1ID
	match.User2ID = user2ID

	// The unique index on (user1_id, user2_id) arbitrates concurrent
	// reciprocal likes: exactly one insert wins, the other sees no row and
	// reads the winner's match back.
	query := `
		INSERT INTO matches (user1_id, user2_id, score, categories, insight)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user1ID, user2ID, match.Score, pq.Array(match.Categories), match.Insight,
	).Scan(&match.ID, &match.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	existing, err := r.GetByUsers(ctx, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			// Lost the insert race yet the row is gone again; let the
			// caller re-read instead of resubmitting.
			return false, domain.ErrConcurrencyConflict
		}
		return false, err
	}
	*match = *existing
	return false, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	user1ID, user2ID = domain.CanonicalPair(user1ID, user2ID)

	match := domain.Match{}
	query := `
		SELECT id, user1_id, user2_id, score, categories, insight, created_at
		FROM matches WHERE user1_id = $1 AND user2_id = $2
	`
	err := r.db.QueryRowContext(ctx, query, user1ID, user2ID).Scan(
		&match.ID, &match.User1ID, &match.User2ID, &match.Score,
		pq.Array(&match.Categories), &match.Insight, &match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error) {
	query := `
		SELECT id, user1_id, user2_id, score, categories, insight, created_at
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		match := domain.Match{}
		if err := rows.Scan(
			&match.ID, &match.User1ID, &match.User2ID, &match.Score,
			pq.Array(&match.Categories), &match.Insight, &match.CreatedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, &match)
	}
	return matches, rows.Err()
}

func (r *matchRepository) UpdateInsight(ctx context.Context, matchID int, insight string) error {
	query := `UPDATE matches SET insight = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, insight, matchID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
