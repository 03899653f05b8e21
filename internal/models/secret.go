package models

import "time"

// SecretRecord is one stored site credential. CipherText is the only form in
// which the secret value is ever persisted.
type SecretRecord struct {
	ID         int64
	OwnerID    int64
	Site       string
	Username   string
	CipherText string
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary drops the ciphertext, for listings.
func (r *SecretRecord) Summary() SecretSummary {
	s := SecretSummary{
		ID:        r.ID,
		Site:      r.Site,
		Username:  r.Username,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Notes != nil {
		s.Notes = *r.Notes
	}
	return s
}

// SecretSummary is a listing row: metadata only, no secret value.
type SecretSummary struct {
	ID        int64
	Site      string
	Username  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RevealedSecret is a decrypted record returned to its owner.
type RevealedSecret struct {
	ID        int64     `json:"id"`
	Site      string    `json:"site"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
