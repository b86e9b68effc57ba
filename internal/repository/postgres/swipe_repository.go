package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/investmatch/backend/internal/domain"
	"github.com/investmatch/backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Upsert(ctx context.Context, swipe *domain.Swipe) error {
	// One row per ordered pair; a re-swipe replaces the previous decision
	// and resets the undone flag.
	query := `
		INSERT INTO swipes (swiper_id, target_id, action, points_charged, undone)
		VALUES ($1, $2, $3, $4, false)
		ON CONFLICT (swiper_id, target_id)
		DO UPDATE SET
			action = EXCLUDED.action,
			points_charged = EXCLUDED.points_charged,
			undone = false,
			created_at = now()
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		swipe.SwiperID, swipe.TargetID, swipe.Action, swipe.PointsCharged,
	).Scan(&swipe.ID, &swipe.CreatedAt)
}

func (r *swipeRepository) GetByUsers(ctx context.Context, swiperID, targetID int) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `SELECT * FROM swipes WHERE swiper_id = $1 AND target_id = $2`
	err := r.db.GetContext(ctx, &swipe, query, swiperID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSwipeNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) HasActiveLike(ctx context.Context, swiperID, targetID int) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipes
			WHERE swiper_id = $1 AND target_id = $2
			  AND action = 'LIKE' AND undone = false
		)
	`
	err := r.db.GetContext(ctx, &exists, query, swiperID, targetID)
	return exists, err
}

func (r *swipeRepository) ActiveTargetIDs(ctx context.Context, swiperID int) ([]int, error) {
	var ids []int
	query := `SELECT target_id FROM swipes WHERE swiper_id = $1 AND undone = false`
	err := r.db.SelectContext(ctx, &ids, query, swiperID)
	return ids, err
}

func (r *swipeRepository) MarkSkipUndone(ctx context.Context, swiperID, targetID int) (bool, error) {
	query := `
		UPDATE swipes SET undone = true
		WHERE swiper_id = $1 AND target_id = $2
		  AND action = 'SKIP' AND undone = false
	`
	result, err := r.db.ExecContext(ctx, query, swiperID, targetID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
