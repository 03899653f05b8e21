// Package models holds the vault's persisted and returned data types.
package models

import "time"

// Principal is a registered user account. PasswordHash is a bcrypt string
// and must never be logged.
type Principal struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Snapshot returns a copy without the password hash, suitable for holding
// in a session.
func (p *Principal) Snapshot() PrincipalSnapshot {
	return PrincipalSnapshot{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

// PrincipalSnapshot is the principal data captured at login time.
type PrincipalSnapshot struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}
