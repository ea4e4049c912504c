package model

import "time"

// Role levels, ordered by privilege.
const (
	RoleDefault   = 0
	RoleSpecial   = 1
	RoleModerator = 2
	RoleManager   = 3
	RoleAdmin     = 4
)

// User is a registered listener.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Slug         string     `json:"slug"`
	Email        string     `json:"-"`
	PasswordHash string     `json:"-"`
	Role         int        `json:"role"`
	Avatar       string     `json:"avatar,omitempty"`
	BannedUntil  *time.Time `json:"bannedUntil,omitempty"`
	Exiled       bool       `json:"exiled"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsBanned reports whether the ban is still running at now.
func (u *User) IsBanned(now time.Time) bool {
	return u.BannedUntil != nil && u.BannedUntil.After(now)
}

// ClampRole bounds r to the known role range.
func ClampRole(r int) int {
	if r < RoleDefault {
		return RoleDefault
	}
	if r > RoleAdmin {
		return RoleAdmin
	}
	return r
}
