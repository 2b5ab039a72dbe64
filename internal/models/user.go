package models

import "time"

// User represents an account on the platform. GoogleID is set for accounts
// created through the Google identity flow; such accounts have no password.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	GoogleID     string    `json:"google_id,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// User role constants.
const (
	UserRoleAdmin    = "admin"
	UserRoleInvestor = "investor"
)

// ValidUserRoles is the set of allowed role values.
var ValidUserRoles = map[string]bool{
	UserRoleAdmin:    true,
	UserRoleInvestor: true,
}
