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

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, role, display_name, bio, categories,
	is_verified, activity_score, created_at, updated_at
`

func scanProfile(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Profile, error) {
	profile := domain.Profile{}
	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.Role, &profile.DisplayName,
		&profile.Bio, pq.Array(&profile.Categories),
		&profile.IsVerified, &profile.ActivityScore,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) ListEligible(ctx context.Context, role domain.Role, excluding []int, limit int) ([]*domain.Profile, error) {
	excluded := make(pq.Int64Array, 0, len(excluding))
	for _, id := range excluding {
		excluded = append(excluded, int64(id))
	}

	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE role = $1 AND NOT (user_id = ANY($2))
		ORDER BY user_id
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, role, excluded, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
