package domain

import "time"

// Role determines which side of the marketplace a user is on.
// Only cross-role pairs (INVESTOR <-> STARTUP) can appear in feeds or matches.
type Role string

const (
	RoleInvestor Role = "INVESTOR"
	RoleStartup  Role = "STARTUP"
	RoleAdmin    Role = "ADMIN"
)

// Swipeable reports whether users of this role may appear in candidate pools.
func (r Role) Swipeable() bool {
	return r == RoleInvestor || r == RoleStartup
}

// Opposite returns the role this role is matched against.
func (r Role) Opposite() Role {
	switch r {
	case RoleInvestor:
		return RoleStartup
	case RoleStartup:
		return RoleInvestor
	default:
		return r
	}
}

type Profile struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Role          Role      `json:"role" db:"role"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	Bio           *string   `json:"bio" db:"bio"`
	Categories    []string  `json:"categories" db:"categories"`
	IsVerified    bool      `json:"is_verified" db:"is_verified"`
	ActivityScore float64   `json:"activity_score" db:"activity_score"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
