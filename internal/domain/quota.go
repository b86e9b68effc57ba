package domain

import "time"

// DayKey formats a timestamp as the UTC calendar day used to key quota state.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// QuotaState tracks a user's swipe activity for one UTC calendar day.
// There is no scheduled reset: state carries its own date and Effective
// discards it lazily when the date no longer matches.
type QuotaState struct {
	UserID           int        `json:"user_id"`
	Date             string     `json:"date"`
	Actions          int        `json:"actions"`
	LastSkipAt       *time.Time `json:"last_skip_at"`
	LastSkipTargetID *int       `json:"last_skip_target_id"`
	CanUndo          bool       `json:"can_undo"`
}

// Effective returns the state as of now. If the stored date differs from
// today's UTC date the counters are gone along with the undo marker; the
// stored state itself is left untouched.
func (s QuotaState) Effective(now time.Time) QuotaState {
	day := DayKey(now)
	if s.Date == day {
		return s
	}
	return QuotaState{UserID: s.UserID, Date: day}
}

// UndoEligible reports whether the last skip can still be undone at now,
// given the configured window.
func (s QuotaState) UndoEligible(now time.Time, window time.Duration) bool {
	if !s.CanUndo || s.LastSkipAt == nil || s.LastSkipTargetID == nil {
		return false
	}
	return now.Sub(*s.LastSkipAt) <= window
}
