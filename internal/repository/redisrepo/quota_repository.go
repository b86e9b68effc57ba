package redisrepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/investmatch/backend/internal/domain"
	"github.com/investmatch/backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

// Quota state lives in one hash per user. The stored date is part of the
// state, not the key: the lazy UTC-day reset stays a date comparison, and
// the scripts below make rollover-and-write atomic for the rare case of
// overlapping requests from the same user.
const quotaTTL = 48 * time.Hour

var confirmScript = redis.NewScript(`
	if redis.call('HGET', KEYS[1], 'date') ~= ARGV[1] then
		redis.call('DEL', KEYS[1])
		redis.call('HSET', KEYS[1], 'date', ARGV[1])
	end
	local n = redis.call('HINCRBY', KEYS[1], 'actions', 1)
	redis.call('EXPIRE', KEYS[1], ARGV[2])
	return n
`)

var lastSkipScript = redis.NewScript(`
	if redis.call('HGET', KEYS[1], 'date') ~= ARGV[1] then
		redis.call('DEL', KEYS[1])
		redis.call('HSET', KEYS[1], 'date', ARGV[1])
	end
	redis.call('HSET', KEYS[1],
		'last_skip_at', ARGV[2],
		'last_skip_target', ARGV[3],
		'can_undo', '1')
	redis.call('EXPIRE', KEYS[1], ARGV[4])
	return 1
`)

type quotaRepository struct {
	client *redis.Client
}

func NewQuotaRepository(client *redis.Client) repository.QuotaRepository {
	return &quotaRepository{client: client}
}

func quotaKey(userID int) string {
	return fmt.Sprintf("quota:%d", userID)
}

func (r *quotaRepository) Get(ctx context.Context, userID int) (domain.QuotaState, error) {
	state := domain.QuotaState{UserID: userID}

	fields, err := r.client.HGetAll(ctx, quotaKey(userID)).Result()
	if err != nil {
		return state, fmt.Errorf("failed to load quota state: %w", err)
	}
	if len(fields) == 0 {
		return state, nil
	}

	state.Date = fields["date"]
	if v, ok := fields["actions"]; ok {
		state.Actions, _ = strconv.Atoi(v)
	}
	if v, ok := fields["last_skip_at"]; ok && v != "" {
		if at, err := time.Parse(time.RFC3339Nano, v); err == nil {
			state.LastSkipAt = &at
		}
	}
	if v, ok := fields["last_skip_target"]; ok && v != "" {
		if target, err := strconv.Atoi(v); err == nil {
			state.LastSkipTargetID = &target
		}
	}
	state.CanUndo = fields["can_undo"] == "1"

	return state, nil
}

func (r *quotaRepository) ConfirmAction(ctx context.Context, userID int, day string) (int, error) {
	count, err := confirmScript.Run(ctx, r.client,
		[]string{quotaKey(userID)}, day, int(quotaTTL.Seconds()),
	).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to confirm quota action: %w", err)
	}
	return count, nil
}

func (r *quotaRepository) SetLastSkip(ctx context.Context, userID int, day string, targetID int, at time.Time) error {
	err := lastSkipScript.Run(ctx, r.client,
		[]string{quotaKey(userID)}, day,
		at.UTC().Format(time.RFC3339Nano), targetID, int(quotaTTL.Seconds()),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to record last skip: %w", err)
	}
	return nil
}

func (r *quotaRepository) ClearUndo(ctx context.Context, userID int) error {
	if err := r.client.HSet(ctx, quotaKey(userID), "can_undo", "0").Err(); err != nil {
		return fmt.Errorf("failed to clear undo flag: %w", err)
	}
	return nil
}
