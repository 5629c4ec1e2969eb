package model

import "time"

// User represents a registered account. The credential hash never leaves
// the server: it is excluded from JSON and from log output.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Hash      *string   `json:"-"` // Never expose password hash
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// UserSummary is the minimal user shape returned by login. It is the only
// user representation the event directory ever hands to clients.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary strips a user down to its public fields.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// TokenClaims represents the identity extracted from a verified session token.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}
