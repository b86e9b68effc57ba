package domain

import "time"

// Match records a mutual LIKE between two users. The pair is canonicalized
// so that User1ID < User2ID; a unique index on that pair guarantees at most
// one match per unordered pair. Matches are write-once.
type Match struct {
	ID         int       `json:"id" db:"id"`
	User1ID    int       `json:"user1_id" db:"user1_id"`
	User2ID    int       `json:"user2_id" db:"user2_id"`
	Score      float64   `json:"score" db:"score"`
	Categories []string  `json:"categories" db:"categories"`
	Insight    *string   `json:"insight" db:"insight"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CanonicalPair orders two user ids so the smaller one comes first.
func CanonicalPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}
