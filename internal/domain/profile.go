package domain

import "time"

// Profile holds the public-facing details and role set for an account.
// At most one profile exists per username.
type Profile struct {
	ID          int64
	Username    string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     string
	Roles       []Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdmin reports whether the profile carries the admin tag.
func (p *Profile) IsAdmin() bool {
	return p != nil && HasRole(p.Roles, RoleAdmin)
}
