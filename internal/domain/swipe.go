package domain

import "time"

// SwipeAction is the decision a user makes on a candidate.
type SwipeAction string

const (
	ActionLike    SwipeAction = "LIKE"
	ActionDislike SwipeAction = "DISLIKE"
	ActionSkip    SwipeAction = "SKIP"
)

// Valid reports whether the action is one of LIKE, DISLIKE, SKIP.
func (a SwipeAction) Valid() bool {
	return a == ActionLike || a == ActionDislike || a == ActionSkip
}

// Swipe is the active decision for an ordered (swiper, target) pair.
// Re-swiping the same pair replaces the previous decision in place, so at
// most one row exists per ordered pair.
type Swipe struct {
	ID            int         `json:"id" db:"id"`
	SwiperID      int         `json:"swiper_id" db:"swiper_id"`
	TargetID      int         `json:"target_id" db:"target_id"`
	Action        SwipeAction `json:"action" db:"action"`
	PointsCharged int         `json:"points_charged" db:"points_charged"`
	Undone        bool        `json:"undone" db:"undone"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// Active reports whether this swipe still counts as a decision. An undone
// skip no longer excludes the target from candidate feeds.
func (s *Swipe) Active() bool {
	return !s.Undone
}
