package domain

import "time"

// Account is the login credential record. The password digest never leaves
// the auth service.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
