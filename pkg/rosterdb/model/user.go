package model

import "time"

// Team facing roles. A user carries other roles out of scope for this
// server; those pass through untouched.
const (
	RoleExternalSuperAdmin = "EXTERNAL_SUPER_ADMIN"
	RoleExternalMember     = "EXTERNAL_MEMBER"
)

// User belongs to at most one team. TeamID is a weak reference, a user can
// exist without a team, and removing a team only clears this reference.
type User struct {
	ID        int    `json:"id"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TeamID    *int   `json:"team_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) OnTeam(teamID int) bool {
	return u.TeamID != nil && *u.TeamID == teamID
}
